package service

import "errors"

// Operation-boundary error taxonomy. Handlers map these with errors.Is;
// none of them is ever allowed to escape as a panic.
var (
	// ErrProductoNoEncontrado: the referenced id is missing from the
	// catalog. Recoverable — surfaced as a notice, never fatal.
	ErrProductoNoEncontrado = errors.New("producto no encontrado")

	// ErrStockInsuficiente: the requested quantity exceeds the product's
	// free stock plus the line's own reservation. No state change.
	ErrStockInsuficiente = errors.New("stock insuficiente")

	// ErrSinStock: addToCart on a product with zero live stock and no
	// existing line. No-op.
	ErrSinStock = errors.New("producto sin stock")

	// ErrConfirmacionRequerida: a quantity below 1 is a removal request,
	// which needs an explicit confirmation round-trip before committing.
	ErrConfirmacionRequerida = errors.New("confirmacion de eliminacion requerida")

	// ErrCarritoVacio: checkout cannot start on an empty cart.
	ErrCarritoVacio = errors.New("el carrito esta vacio")

	// ErrRevisionNoEncontrada: unknown or already-consumed checkout revision.
	ErrRevisionNoEncontrada = errors.New("revision de compra no encontrada")

	// ErrRevisionObsoleta: the cart changed after the snapshot was taken;
	// the shopper must review again.
	ErrRevisionObsoleta = errors.New("la revision no coincide con el carrito actual")

	// ErrSecuenciaAgotada: Z-9999 has been issued; the numbering scheme
	// defines nothing beyond it.
	ErrSecuenciaAgotada = errors.New("secuencia de pedidos agotada")

	// ErrPedidoNoEncontrado: unknown order number.
	ErrPedidoNoEncontrado = errors.New("pedido no encontrado")

	// ErrCredenciales: login failure. Deliberately unspecific.
	ErrCredenciales = errors.New("credenciales invalidas")
)
