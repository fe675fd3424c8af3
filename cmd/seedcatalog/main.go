// cmd/seedcatalog/main.go — Carga el catálogo inicial en el store.
// Uso: go run ./cmd/seedcatalog [ruta-del-json]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"tienda/internal/config"
	"tienda/internal/repository"
	"tienda/internal/service"
	"tienda/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	seedPath := cfg.CatalogoSeedPath
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}

	var kv store.KV
	if cfg.StoreBackend == "redis" {
		kv, err = store.NewRedis(cfg.RedisURL)
	} else {
		kv, err = store.NewSQLite(cfg.StorePath)
	}
	if err != nil {
		log.Fatalf("store error: %v", err)
	}
	defer kv.Close()

	var mu sync.Mutex
	svc := service.NewCatalogoService(kv, repository.NewCatalogoRepository(kv), &mu)
	if err := svc.Inicializar(context.Background(), seedPath); err != nil {
		log.Fatalf("seed error: %v", err)
	}
	fmt.Printf("✅ Catálogo inicializado desde '%s'\n", seedPath)
}
