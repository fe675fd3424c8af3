package store

// Persisted keys. The catalog, cart and order history are JSON-encoded
// sequences; the sequence counters and the product ID counter are scalar
// entries, matching the original storage contract.
const (
	ClaveProductos    = "productos"
	ClaveCarrito      = "carrito"
	ClavePedidos      = "pedidos"
	ClaveUsuarios     = "usuarios"
	ClaveUltimoNumero = "ultimoNumeroPedido"
	ClaveUltimaLetra  = "ultimaLetraPedido"
	ClaveUltimoID     = "ultimoIdProducto"
)
