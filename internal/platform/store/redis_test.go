package store

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client)
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	var out []string
	err := s.Get(context.Background(), KeyProducts, &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	in := []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, s.Put(ctx, KeySales, in))

	var out []record
	require.NoError(t, s.Get(ctx, KeySales, &out))
	assert.Equal(t, in, out)
}

func TestUpdateCommitsAllKeys(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, KeyProducts, []int{1, 2, 3}))

	err := s.Update(ctx, func(tx *Tx) error {
		var products []int
		if err := tx.Get(ctx, KeyProducts, &products); err != nil {
			return err
		}
		products = append(products, 4)
		if err := tx.Put(KeyProducts, products); err != nil {
			return err
		}
		return tx.Put(KeySales, []string{"s1"})
	}, KeyProducts, KeySales)
	require.NoError(t, err)

	var products []int
	require.NoError(t, s.Get(ctx, KeyProducts, &products))
	assert.Equal(t, []int{1, 2, 3, 4}, products)

	var sales []string
	require.NoError(t, s.Get(ctx, KeySales, &sales))
	assert.Equal(t, []string{"s1"}, sales)
}

func TestUpdateCallbackErrorAbortsWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, func(tx *Tx) error {
		if err := tx.Put(KeyProducts, []int{9}); err != nil {
			return err
		}
		return assert.AnError
	}, KeyProducts)
	require.ErrorIs(t, err, assert.AnError)

	var products []int
	assert.ErrorIs(t, s.Get(ctx, KeyProducts, &products), ErrNotFound)
}
