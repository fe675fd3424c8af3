package service

import (
	"context"
	"errors"
	"time"

	"tienda/internal/config"
	"tienda/internal/dto"
	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// SeedAdmin creates the configured administrator on first start.
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	kv   store.KV
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(kv store.KV, repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{kv: kv, repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrCredenciales
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}

	return s.tokensPara(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.tokensPara(user)
}

func (s *authService) SeedAdmin(ctx context.Context) error {
	usuarios, err := s.repo.Cargar(ctx)
	if err != nil {
		return err
	}
	if len(usuarios) > 0 {
		return nil
	}
	if s.cfg.AdminPassword == "" {
		log.Warn().Msg("sin usuarios y ADMIN_PASSWORD vacio: endpoints de administracion inaccesibles")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), 12)
	if err != nil {
		return err
	}
	admin := model.Usuario{
		Username:     s.cfg.AdminUsername,
		Nombre:       "Administrador",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}
	err = s.kv.Update(ctx, func(tx store.Tx) error {
		return s.repo.GuardarTx(tx, []model.Usuario{admin})
	})
	if err != nil {
		return err
	}
	log.Info().Str("username", admin.Username).Msg("administrador inicial creado")
	return nil
}

func (s *authService) tokensPara(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User: dto.UsuarioResponse{
			Username: user.Username,
			Nombre:   user.Nombre,
			Rol:      user.Rol,
		},
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"rol":      user.Rol,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
