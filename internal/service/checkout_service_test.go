package service_test

import (
	"context"
	"testing"

	"tienda/internal/dto"
	"tienda/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutCompleto(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	_, err := tn.carrito.FijarCantidad(ctx, 1, 4)
	require.NoError(t, err)

	rev, err := tn.checkout.Iniciar(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.EstadoRevision, rev.Estado)
	assert.NotEmpty(t, rev.RevisionID)
	require.Len(t, rev.Items, 1)
	assert.True(t, rev.Total.Equal(decimal.NewFromInt(34000)))

	// Review is read-only: nothing moved yet.
	assert.Equal(t, 1, tn.stockDe(t, 1))

	pedido, err := tn.checkout.Confirmar(ctx, rev.RevisionID, dto.ConfirmarCompraRequest{
		Envio: &dto.DatosEnvioRequest{Pais: "Argentina", Provincia: "Córdoba", Localidad: "Córdoba", Direccion: "Av. Colón 1234"},
	})
	require.NoError(t, err)
	assert.Equal(t, "A-0001", pedido.Numero)
	assert.True(t, pedido.Total.Equal(decimal.NewFromInt(34000)))
	require.NotNil(t, pedido.Envio)
	assert.Equal(t, "Córdoba", pedido.Envio.Provincia)

	// Completion consumes the reservation: cart empty, stock NOT returned.
	vista, err := tn.carrito.Ver(ctx)
	require.NoError(t, err)
	assert.Empty(t, vista.Items)
	assert.Equal(t, 1, tn.stockDe(t, 1))

	lista, err := tn.checkout.ListarPedidos(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, lista.Total)
	assert.Equal(t, "A-0001", lista.Data[0].Numero)

	encontrado, err := tn.checkout.ObtenerPedido(ctx, "A-0001")
	require.NoError(t, err)
	assert.Equal(t, "A-0001", encontrado.Numero)
}

func TestCheckoutNumerosConsecutivos(t *testing.T) {
	tn := newTienda(t, producto(1, "Medias", 6200, 40))
	ctx := context.Background()

	for i, esperado := range []string{"A-0001", "A-0002", "A-0003"} {
		_, err := tn.carrito.Agregar(ctx, 1)
		require.NoError(t, err, "vuelta %d", i)
		rev, err := tn.checkout.Iniciar(ctx)
		require.NoError(t, err)
		pedido, err := tn.checkout.Confirmar(ctx, rev.RevisionID, dto.ConfirmarCompraRequest{})
		require.NoError(t, err)
		assert.Equal(t, esperado, pedido.Numero)
	}
}

func TestIniciarConCarritoVacio(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))

	_, err := tn.checkout.Iniciar(context.Background())
	assert.ErrorIs(t, err, service.ErrCarritoVacio)
}

func TestConfirmarRevisionDesconocida(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))

	_, err := tn.checkout.Confirmar(context.Background(), "no-existe", dto.ConfirmarCompraRequest{})
	assert.ErrorIs(t, err, service.ErrRevisionNoEncontrada)
}

func TestCancelarDescartaLaRevision(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	_, err := tn.carrito.Agregar(ctx, 1)
	require.NoError(t, err)

	rev, err := tn.checkout.Iniciar(ctx)
	require.NoError(t, err)
	require.NoError(t, tn.checkout.Cancelar(ctx, rev.RevisionID))

	// Cancel leaves cart and stock exactly as they were.
	vista, err := tn.carrito.Ver(ctx)
	require.NoError(t, err)
	assert.Len(t, vista.Items, 1)
	assert.Equal(t, 4, tn.stockDe(t, 1))

	// The snapshot is gone for good.
	_, err = tn.checkout.Confirmar(ctx, rev.RevisionID, dto.ConfirmarCompraRequest{})
	assert.ErrorIs(t, err, service.ErrRevisionNoEncontrada)
	assert.ErrorIs(t, tn.checkout.Cancelar(ctx, rev.RevisionID), service.ErrRevisionNoEncontrada)
}

func TestConfirmarRevisionObsoleta(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	_, err := tn.carrito.Agregar(ctx, 1)
	require.NoError(t, err)
	rev, err := tn.checkout.Iniciar(ctx)
	require.NoError(t, err)

	// The cart moves underneath the snapshot.
	_, err = tn.carrito.Agregar(ctx, 1)
	require.NoError(t, err)

	_, err = tn.checkout.Confirmar(ctx, rev.RevisionID, dto.ConfirmarCompraRequest{})
	assert.ErrorIs(t, err, service.ErrRevisionObsoleta)

	// No order was created and the cart is untouched.
	lista, err := tn.checkout.ListarPedidos(ctx)
	require.NoError(t, err)
	assert.Zero(t, lista.Total)
	vista, err := tn.carrito.Ver(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, vista.Items[0].Cantidad)
}

func TestConfirmarConEscrituraRechazada(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))
	ctx := context.Background()

	_, err := tn.carrito.FijarCantidad(ctx, 1, 2)
	require.NoError(t, err)
	rev, err := tn.checkout.Iniciar(ctx)
	require.NoError(t, err)

	// The counter advance is staged (writes 1 and 2), then the pedidos
	// write fails: the whole transaction rolls back.
	tn.kv.fallarSetEn = 3
	_, err = tn.checkout.Confirmar(ctx, rev.RevisionID, dto.ConfirmarCompraRequest{})
	require.ErrorIs(t, err, errEscrituraFallida)

	// No order landed, the cart survived, and the staged counter advance
	// was discarded with the rest.
	lista, err := tn.checkout.ListarPedidos(ctx)
	require.NoError(t, err)
	assert.Zero(t, lista.Total)
	vista, err := tn.carrito.Ver(ctx)
	require.NoError(t, err)
	require.Len(t, vista.Items, 1)
	assert.Equal(t, 2, vista.Items[0].Cantidad)
	assert.NotContains(t, tn.kv.datos, "ultimoNumeroPedido")
	assert.NotContains(t, tn.kv.datos, "ultimaLetraPedido")

	// The revision stays open: retrying succeeds and gets the number the
	// failed attempt never consumed.
	pedido, err := tn.checkout.Confirmar(ctx, rev.RevisionID, dto.ConfirmarCompraRequest{})
	require.NoError(t, err)
	assert.Equal(t, "A-0001", pedido.Numero)
}

func TestObtenerPedidoInexistente(t *testing.T) {
	tn := newTienda(t, producto(1, "Remera", 8500, 5))

	_, err := tn.checkout.ObtenerPedido(context.Background(), "Z-9999")
	assert.ErrorIs(t, err, service.ErrPedidoNoEncontrado)
}
