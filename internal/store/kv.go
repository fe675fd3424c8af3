// Package store defines the persistence boundary: a process-wide key-value
// store treated as a black box. Values are JSON-encoded records or plain
// scalar strings; callers never see the backend.
package store

import (
	"context"
	"errors"
)

// ErrClaveNoEncontrada is returned by Get for absent keys.
var ErrClaveNoEncontrada = errors.New("clave no encontrada")

// KV is the black-box store contract. Every mutating engine operation must
// persist through a single Update call: either all writes in the callback
// land or none do, so in-memory state can never diverge from what was last
// successfully persisted.
type KV interface {
	Get(ctx context.Context, clave string) ([]byte, error)
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
	Ping(ctx context.Context) error
}

// Tx is the write scope handed to Update callbacks. Set and Delete are
// buffered until the callback returns nil.
type Tx interface {
	Get(clave string) ([]byte, error)
	Set(clave string, valor []byte)
	Delete(clave string)
}
