package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	rdb *redis.Client
}

// NewRedis creates and validates a go-redis backed store. Meant for the
// shared-store profile where several frontends point at one cart; the
// engine still assumes a single writer (see the service-level mutex).
func NewRedis(redisURL string) (KV, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisKV{rdb: rdb}, nil
}

func (s *redisKV) Get(ctx context.Context, clave string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, clave).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrClaveNoEncontrada
	}
	return b, err
}

// Update buffers writes and flushes them in one MULTI/EXEC pipeline, so the
// server applies them atomically. Reads inside the callback go straight to
// the client: the engine serializes its mutations, so nothing else writes
// between the read and the EXEC.
func (s *redisKV) Update(ctx context.Context, fn func(tx Tx) error) error {
	tx := &redisTx{ctx: ctx, rdb: s.rdb, pipe: s.rdb.TxPipeline()}
	if err := fn(tx); err != nil {
		return err
	}
	_, err := tx.pipe.Exec(ctx)
	return err
}

func (s *redisKV) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *redisKV) Close() error { return s.rdb.Close() }

type redisTx struct {
	ctx  context.Context
	rdb  *redis.Client
	pipe redis.Pipeliner
}

func (t *redisTx) Get(clave string) ([]byte, error) {
	b, err := t.rdb.Get(t.ctx, clave).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrClaveNoEncontrada
	}
	return b, err
}

func (t *redisTx) Set(clave string, valor []byte) {
	t.pipe.Set(t.ctx, clave, valor, 0)
}

func (t *redisTx) Delete(clave string) {
	t.pipe.Del(t.ctx, clave)
}
