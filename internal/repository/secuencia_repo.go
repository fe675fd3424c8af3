package repository

import (
	"errors"
	"fmt"
	"strconv"

	"tienda/internal/model"
	"tienda/internal/store"
)

// SecuenciaRepository persists the order-number counter as two scalar
// entries. Defaults are {A, 0} so the first issued number is A-0001.
// Both methods run inside the caller's store transaction: the counter is
// only ever touched while an order is being finalized.
type SecuenciaRepository interface {
	CargarTx(tx store.Tx) (model.SecuenciaPedido, error)
	GuardarTx(tx store.Tx, s model.SecuenciaPedido)
}

type secuenciaRepo struct{ kv store.KV }

func NewSecuenciaRepository(kv store.KV) SecuenciaRepository { return &secuenciaRepo{kv: kv} }

func (r *secuenciaRepo) CargarTx(tx store.Tx) (model.SecuenciaPedido, error) {
	s := model.SecuenciaPedido{UltimaLetra: 'A', UltimoNumero: 0}

	datos, err := tx.Get(store.ClaveUltimoNumero)
	switch {
	case errors.Is(err, store.ErrClaveNoEncontrada):
		// first run
	case err != nil:
		return s, err
	default:
		n, convErr := strconv.Atoi(string(datos))
		if convErr != nil || n < 0 || n > 9999 {
			return s, fmt.Errorf("entrada %q corrupta: %q", store.ClaveUltimoNumero, datos)
		}
		s.UltimoNumero = n
	}

	datos, err = tx.Get(store.ClaveUltimaLetra)
	switch {
	case errors.Is(err, store.ErrClaveNoEncontrada):
		// first run
	case err != nil:
		return s, err
	default:
		if len(datos) != 1 || datos[0] < 'A' || datos[0] > 'Z' {
			return s, fmt.Errorf("entrada %q corrupta: %q", store.ClaveUltimaLetra, datos)
		}
		s.UltimaLetra = datos[0]
	}

	return s, nil
}

func (r *secuenciaRepo) GuardarTx(tx store.Tx, s model.SecuenciaPedido) {
	tx.Set(store.ClaveUltimoNumero, []byte(strconv.Itoa(s.UltimoNumero)))
	tx.Set(store.ClaveUltimaLetra, []byte{s.UltimaLetra})
}
