package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tienda/internal/dto"
	"tienda/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func escribirSeed(t *testing.T, contenido string) string {
	t.Helper()
	ruta := filepath.Join(t.TempDir(), "productos.json")
	require.NoError(t, os.WriteFile(ruta, []byte(contenido), 0o644))
	return ruta
}

func TestInicializarCargaElSeed(t *testing.T) {
	tn := newTienda(t)
	ctx := context.Background()

	ruta := escribirSeed(t, `[
		{"id": 1, "nombre": "Remera", "precio": 8500, "stock": 5, "categoria": "indumentaria"},
		{"id": 3, "nombre": "Gorra", "precio": 9800, "stock": 0, "categoria": "accesorios"}
	]`)
	require.NoError(t, tn.catalogo.Inicializar(ctx, ruta))

	todos, err := tn.catalogo.Listar(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, todos.Total)

	// The ID counter starts past the highest seeded id.
	creado, err := tn.catalogo.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Mochila", Precio: decimal.NewFromInt(38500), Stock: 10, Categoria: "accesorios",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, creado.ID)
}

func TestInicializarEsIdempotente(t *testing.T) {
	tn := newTienda(t)
	ctx := context.Background()

	ruta := escribirSeed(t, `[{"id": 1, "nombre": "Remera", "precio": 8500, "stock": 5, "categoria": "indumentaria"}]`)
	require.NoError(t, tn.catalogo.Inicializar(ctx, ruta))

	// A populated store ignores the seed, even a changed one.
	otra := escribirSeed(t, `[{"id": 9, "nombre": "Otra", "precio": 1, "stock": 1, "categoria": "x"}]`)
	require.NoError(t, tn.catalogo.Inicializar(ctx, otra))

	todos, err := tn.catalogo.Listar(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 1, todos.Total)
	assert.Equal(t, "Remera", todos.Data[0].Nombre)
}

func TestInicializarRechazaSeedInvalido(t *testing.T) {
	tn := newTienda(t)
	ruta := escribirSeed(t, `[{"id": 1, "nombre": "Remera", "precio": -10, "stock": 5, "categoria": "x"}]`)

	assert.Error(t, tn.catalogo.Inicializar(context.Background(), ruta))
}

func TestCrearAsignaIDsMonotonicos(t *testing.T) {
	tn := newTienda(t)
	ctx := context.Background()

	req := dto.CrearProductoRequest{Nombre: "Remera", Precio: decimal.NewFromInt(8500), Stock: 5, Categoria: "indumentaria"}
	p1, err := tn.catalogo.Crear(ctx, req)
	require.NoError(t, err)
	p2, err := tn.catalogo.Crear(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, p1.ID+1, p2.ID)

	// Deleting the highest product never recycles its id.
	require.NoError(t, tn.catalogo.Eliminar(ctx, p2.ID))
	p3, err := tn.catalogo.Crear(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, p2.ID+1, p3.ID)
}

func TestActualizarParcial(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	nuevoPrecio := decimal.NewFromInt(9900)
	resp, err := tn.catalogo.Actualizar(ctx, 1, dto.ActualizarProductoRequest{Precio: &nuevoPrecio})
	require.NoError(t, err)

	assert.True(t, resp.Precio.Equal(nuevoPrecio))
	assert.Equal(t, "Remera", resp.Nombre)
	assert.Equal(t, 5, resp.Stock)
}

func TestActualizarInexistente(t *testing.T) {
	tn := newTienda(t)

	_, err := tn.catalogo.Actualizar(context.Background(), 7, dto.ActualizarProductoRequest{})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestEliminarProducto(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	require.NoError(t, tn.catalogo.Eliminar(ctx, 1))
	_, err := tn.catalogo.ObtenerPorID(ctx, 1)
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)

	assert.ErrorIs(t, tn.catalogo.Eliminar(ctx, 1), service.ErrProductoNoEncontrado)
}

func TestAjustarStock(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	resp, err := tn.catalogo.AjustarStock(ctx, 1, dto.AjustarStockRequest{Delta: 10, Motivo: "reposicion"})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Stock)

	resp, err = tn.catalogo.AjustarStock(ctx, 1, dto.AjustarStockRequest{Delta: -15, Motivo: "rotura"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stock)
}

func TestAjustarStockNuncaNegativo(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	_, err := tn.catalogo.AjustarStock(ctx, 1, dto.AjustarStockRequest{Delta: -6})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.Equal(t, 5, tn.stockDe(t, 1))
}
