// Package store persists whole JSON-encoded records in Redis. Each
// collection lives under a single namespaced key and is always read and
// written as a unit, mirroring the original key-value storage model.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumapos/lumapos/internal/shared"
)

// Keys for the three persisted collections plus the admin credential.
const (
	KeyProducts = "lumapos:products"
	KeySales    = "lumapos:sales"
	KeyConfig   = "lumapos:db_config"
	KeyAdminPwd = "lumapos:admin_pwd"
)

// ErrNotFound is returned when a record key has never been written.
var ErrNotFound = errors.New("store: record not found")

// Store reads and writes JSON records in Redis.
type Store struct {
	client *redis.Client
}

// New creates a Store and verifies connectivity.
func New(ctx context.Context, client *redis.Client) (*Store, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &Store{client: client}, nil
}

// NewWithClient wraps an already-verified client. Used by tests.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get unmarshals the record at key into dest. Returns ErrNotFound when the
// key has never been written.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("store: get %s: %w", key, shared.ErrStorageUnavailable)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

// Put marshals value and writes it at key, replacing any previous record.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("store: put %s: %w", key, shared.ErrStorageUnavailable)
	}
	return nil
}

// Tx stages writes that commit atomically at the end of an Update call.
type Tx struct {
	store   *Store
	tx      *redis.Tx
	pending map[string][]byte
}

// Get reads a record inside the transaction's watched view.
func (t *Tx) Get(ctx context.Context, key string, dest any) error {
	data, err := t.tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("store: tx get %s: %w", key, shared.ErrStorageUnavailable)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

// Put stages a record write; nothing is visible until the transaction commits.
func (t *Tx) Put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	t.pending[key] = data
	return nil
}

// Update runs fn under WATCH on the given keys and commits all staged writes
// in a single MULTI/EXEC. A concurrent writer on any watched key aborts the
// commit and the attempt is retried a bounded number of times.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error, keys ...string) error {
	const maxAttempts = 5
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.client.Watch(ctx, func(rtx *redis.Tx) error {
			tx := &Tx{store: s, tx: rtx, pending: make(map[string][]byte)}
			if err := fn(tx); err != nil {
				return err
			}
			_, err := rtx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for key, data := range tx.pending {
					pipe.Set(ctx, key, data, 0)
				}
				return nil
			})
			return err
		}, keys...)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			lastErr = err
			continue
		}
		return err
	}
	return fmt.Errorf("store: transaction contention: %w", lastErr)
}
