package catalog

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapos/lumapos/internal/platform/store"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRepository(store.NewWithClient(client))
}

func TestListSeedsDemoCatalogOnce(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 4)

	stocks := map[string]int{}
	for _, p := range first {
		assert.NotEmpty(t, p.ID)
		stocks[p.SKU] = p.Stock
	}
	assert.Equal(t, map[string]int{"WM-001": 45, "KB-102": 20, "MN-200": 8, "CB-050": 100}, stocks)

	// Second read returns the persisted seed, not a fresh one.
	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReplacePersistsCollection(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	seeded, err := repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Replace(ctx, seeded[:1]))

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, seeded[0].ID, remaining[0].ID)
}
