package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tienda/internal/config"
	"tienda/internal/repository"
	"tienda/internal/router"
	"tienda/internal/service"
	"tienda/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	kv, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer kv.Close()

	r := router.New(cfg, kv)

	// First-run bootstrap: catalog seed and admin user.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bootstrap(ctx, cfg, kv); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	cancel()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("tienda backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// bootstrap runs the first-start seeding before the server accepts
// traffic, so it builds its own service instances.
func bootstrap(ctx context.Context, cfg *config.Config, kv store.KV) error {
	var mu sync.Mutex
	catalogoSvc := service.NewCatalogoService(kv, repository.NewCatalogoRepository(kv), &mu)
	if err := catalogoSvc.Inicializar(ctx, cfg.CatalogoSeedPath); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	authSvc := service.NewAuthService(kv, repository.NewUsuarioRepository(kv), cfg)
	if err := authSvc.SeedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func openStore(cfg *config.Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case "redis":
		return store.NewRedis(cfg.RedisURL)
	default:
		return store.NewSQLite(cfg.StorePath)
	}
}
