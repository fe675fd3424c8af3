package repository

import (
	"context"
	"errors"

	"tienda/internal/model"
	"tienda/internal/store"
)

var ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")

// UsuarioRepository persists operator accounts under a single key.
type UsuarioRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	Cargar(ctx context.Context) ([]model.Usuario, error)
	GuardarTx(tx store.Tx, usuarios []model.Usuario) error
}

type usuarioRepo struct{ kv store.KV }

func NewUsuarioRepository(kv store.KV) UsuarioRepository { return &usuarioRepo{kv: kv} }

func (r *usuarioRepo) Cargar(ctx context.Context) ([]model.Usuario, error) {
	datos, err := r.kv.Get(ctx, store.ClaveUsuarios)
	if errors.Is(err, store.ErrClaveNoEncontrada) {
		return []model.Usuario{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodificarLista[model.Usuario](store.ClaveUsuarios, datos)
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	usuarios, err := r.Cargar(ctx)
	if err != nil {
		return nil, err
	}
	for i := range usuarios {
		if usuarios[i].Username == username && usuarios[i].Activo {
			return &usuarios[i], nil
		}
	}
	return nil, ErrUsuarioNoEncontrado
}

func (r *usuarioRepo) GuardarTx(tx store.Tx, usuarios []model.Usuario) error {
	b, err := codificarLista(store.ClaveUsuarios, usuarios)
	if err != nil {
		return err
	}
	tx.Set(store.ClaveUsuarios, b)
	return nil
}
