package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tienda/internal/model"
	"tienda/internal/store"
)

// CatalogoRepository is the data access contract for the product catalog.
// Services depend on this interface, not on the concrete store, enabling
// unit testing via in-memory stubs.
type CatalogoRepository interface {
	// Cargar returns the full catalog. Absent key yields
	// store.ErrClaveNoEncontrada so callers can trigger the seed bootstrap.
	Cargar(ctx context.Context) ([]model.Producto, error)

	// Used inside store transactions — callers must pass the tx instance.
	GuardarTx(tx store.Tx, productos []model.Producto) error

	// SiguienteIDTx advances and persists the monotonic product ID counter.
	// IDs are never reused, even after the highest-ID product is deleted.
	SiguienteIDTx(tx store.Tx) (int, error)
}

type catalogoRepo struct{ kv store.KV }

func NewCatalogoRepository(kv store.KV) CatalogoRepository { return &catalogoRepo{kv: kv} }

func (r *catalogoRepo) Cargar(ctx context.Context) ([]model.Producto, error) {
	datos, err := r.kv.Get(ctx, store.ClaveProductos)
	if err != nil {
		return nil, err
	}
	return decodificarLista[model.Producto](store.ClaveProductos, datos)
}

func (r *catalogoRepo) GuardarTx(tx store.Tx, productos []model.Producto) error {
	b, err := codificarLista(store.ClaveProductos, productos)
	if err != nil {
		return err
	}
	tx.Set(store.ClaveProductos, b)
	return nil
}

func (r *catalogoRepo) SiguienteIDTx(tx store.Tx) (int, error) {
	ultimo := 0
	if datos, err := tx.Get(store.ClaveUltimoID); err == nil {
		ultimo, err = strconv.Atoi(string(datos))
		if err != nil {
			return 0, fmt.Errorf("contador %q corrupto: %w", store.ClaveUltimoID, err)
		}
	} else if !errors.Is(err, store.ErrClaveNoEncontrada) {
		return 0, err
	}
	siguiente := ultimo + 1
	tx.Set(store.ClaveUltimoID, []byte(strconv.Itoa(siguiente)))
	return siguiente, nil
}
