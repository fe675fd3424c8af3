package repository

import (
	"context"
	"errors"

	"tienda/internal/model"
	"tienda/internal/store"
)

// PedidoRepository persists finalized orders for export and listing.
type PedidoRepository interface {
	Cargar(ctx context.Context) ([]model.Pedido, error)
	GuardarTx(tx store.Tx, pedidos []model.Pedido) error
}

type pedidoRepo struct{ kv store.KV }

func NewPedidoRepository(kv store.KV) PedidoRepository { return &pedidoRepo{kv: kv} }

func (r *pedidoRepo) Cargar(ctx context.Context) ([]model.Pedido, error) {
	datos, err := r.kv.Get(ctx, store.ClavePedidos)
	if errors.Is(err, store.ErrClaveNoEncontrada) {
		return []model.Pedido{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodificarLista[model.Pedido](store.ClavePedidos, datos)
}

func (r *pedidoRepo) GuardarTx(tx store.Tx, pedidos []model.Pedido) error {
	b, err := codificarLista(store.ClavePedidos, pedidos)
	if err != nil {
		return err
	}
	tx.Set(store.ClavePedidos, b)
	return nil
}
