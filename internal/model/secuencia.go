package model

// SecuenciaPedido is the persisted order-number counter. The sole mutator
// is the order sequencer; both fields are stored as separate scalar
// entries in the key-value store.
type SecuenciaPedido struct {
	UltimaLetra  byte // 'A'..'Z'
	UltimoNumero int  // 0..9999
}
