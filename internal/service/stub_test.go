package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tienda/internal/model"
	"tienda/internal/repository"
	"tienda/internal/service"
	"tienda/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

var errEscrituraFallida = errors.New("escritura rechazada")

// memKV is an in-memory KV store with transactional Update semantics:
// staged writes apply only when fn returns nil. The fallar* knobs inject
// write failures the way the real backends produce them, so tests can
// check that a failed Update applies nothing.
type memKV struct {
	datos map[string][]byte

	// fallarSetEn > 0 makes the Nth Set from now fail inside the tx.
	fallarSetEn int
	// fallarCommit rejects the whole Update after fn ran clean.
	fallarCommit bool
}

func newMemKV() *memKV {
	return &memKV{datos: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, clave string) ([]byte, error) {
	v, ok := m.datos[clave]
	if !ok {
		return nil, store.ErrClaveNoEncontrada
	}
	return v, nil
}

func (m *memKV) Update(_ context.Context, fn func(store.Tx) error) error {
	tx := &memTx{kv: m}
	if err := fn(tx); err != nil {
		return err
	}
	if tx.err != nil {
		return tx.err
	}
	if m.fallarCommit {
		return errEscrituraFallida
	}
	for _, op := range tx.ops {
		if op.borrar {
			delete(m.datos, op.clave)
		} else {
			m.datos[op.clave] = op.valor
		}
	}
	return nil
}

func (m *memKV) Close() error { return nil }

func (m *memKV) Ping(context.Context) error { return nil }

type memOp struct {
	clave  string
	valor  []byte
	borrar bool
}

type memTx struct {
	kv  *memKV
	ops []memOp
	err error
}

func (t *memTx) Get(clave string) ([]byte, error) {
	for i := len(t.ops) - 1; i >= 0; i-- {
		if t.ops[i].clave == clave {
			if t.ops[i].borrar {
				return nil, store.ErrClaveNoEncontrada
			}
			return t.ops[i].valor, nil
		}
	}
	v, ok := t.kv.datos[clave]
	if !ok {
		return nil, store.ErrClaveNoEncontrada
	}
	return v, nil
}

func (t *memTx) Set(clave string, valor []byte) {
	if t.err != nil {
		return
	}
	if t.kv.fallarSetEn > 0 {
		t.kv.fallarSetEn--
		if t.kv.fallarSetEn == 0 {
			t.err = errEscrituraFallida
			return
		}
	}
	t.ops = append(t.ops, memOp{clave: clave, valor: valor})
}

func (t *memTx) Delete(clave string) {
	if t.err != nil {
		return
	}
	t.ops = append(t.ops, memOp{clave: clave, borrar: true})
}

var _ store.KV = (*memKV)(nil)
var _ store.Tx = (*memTx)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

// tienda bundles the services under test over one shared store and lock,
// mirroring the wiring in the router.
type tienda struct {
	kv        *memKV
	catalogo  service.CatalogoService
	carrito   service.CarritoService
	checkout  service.CheckoutService
	secuencia service.SecuenciaService
}

func newTienda(t *testing.T, productos ...model.Producto) *tienda {
	t.Helper()
	kv := newMemKV()

	catalogoRepo := repository.NewCatalogoRepository(kv)
	carritoRepo := repository.NewCarritoRepository(kv)
	pedidoRepo := repository.NewPedidoRepository(kv)
	secuenciaRepo := repository.NewSecuenciaRepository(kv)

	var mu sync.Mutex
	secuenciaSvc := service.NewSecuenciaService(secuenciaRepo)

	if len(productos) > 0 {
		err := kv.Update(context.Background(), func(tx store.Tx) error {
			return catalogoRepo.GuardarTx(tx, productos)
		})
		require.NoError(t, err)
	}

	return &tienda{
		kv:        kv,
		catalogo:  service.NewCatalogoService(kv, catalogoRepo, &mu),
		carrito:   service.NewCarritoService(kv, catalogoRepo, carritoRepo, &mu),
		checkout:  service.NewCheckoutService(kv, carritoRepo, pedidoRepo, secuenciaSvc, &mu),
		secuencia: secuenciaSvc,
	}
}

func producto(id int, nombre string, precio int64, stock int) model.Producto {
	return model.Producto{
		ID:        id,
		Nombre:    nombre,
		Precio:    decimal.NewFromInt(precio),
		Stock:     stock,
		Categoria: "general",
	}
}

// stockDe reads the catalog stock of a product through the public API.
func (tn *tienda) stockDe(t *testing.T, id int) int {
	t.Helper()
	resp, err := tn.catalogo.ObtenerPorID(context.Background(), id)
	require.NoError(t, err)
	return resp.Stock
}
