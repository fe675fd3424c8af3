package repository

import (
	"context"
	"errors"

	"tienda/internal/model"
	"tienda/internal/store"
)

// CarritoRepository persists the cart ledger. An absent key is an empty
// cart, never an error.
type CarritoRepository interface {
	Cargar(ctx context.Context) ([]model.CarritoItem, error)
	GuardarTx(tx store.Tx, items []model.CarritoItem) error
	// EliminarTx drops the cart key entirely — used by checkout completion,
	// which consumes stock instead of returning it.
	EliminarTx(tx store.Tx)
}

type carritoRepo struct{ kv store.KV }

func NewCarritoRepository(kv store.KV) CarritoRepository { return &carritoRepo{kv: kv} }

func (r *carritoRepo) Cargar(ctx context.Context) ([]model.CarritoItem, error) {
	datos, err := r.kv.Get(ctx, store.ClaveCarrito)
	if errors.Is(err, store.ErrClaveNoEncontrada) {
		return []model.CarritoItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodificarLista[model.CarritoItem](store.ClaveCarrito, datos)
}

func (r *carritoRepo) GuardarTx(tx store.Tx, items []model.CarritoItem) error {
	b, err := codificarLista(store.ClaveCarrito, items)
	if err != nil {
		return err
	}
	tx.Set(store.ClaveCarrito, b)
	return nil
}

func (r *carritoRepo) EliminarTx(tx store.Tx) {
	tx.Delete(store.ClaveCarrito)
}
