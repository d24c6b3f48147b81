package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapos/lumapos/internal/shared"
)

type mockRepository struct {
	products []Product
	listErr  error
	saveErr  error
}

func (m *mockRepository) List(ctx context.Context) ([]Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *mockRepository) Replace(ctx context.Context, products []Product) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.products = products
	return nil
}

func fixtureProducts() []Product {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []Product{
		{ID: "p1", Name: "Silent Wireless Mouse", SKU: "WM-001", Category: "Accessories", CostPrice: 15.50, Stock: 45, LastUpdated: now},
		{ID: "p2", Name: "Mechanical Keyboard (Red Switch)", SKU: "KB-102", Category: "Accessories", CostPrice: 45.00, Stock: 20, LastUpdated: now},
		{ID: "p3", Name: "24\" Low Blue Light Monitor", SKU: "MN-200", Category: "Electronics", CostPrice: 120.00, Stock: 8, LastUpdated: now},
		{ID: "p4", Name: "USB-C Fast Charging Cable", SKU: "CB-050", Category: "Cables", CostPrice: 2.50, Stock: 100, LastUpdated: now},
	}
}

func TestUpsertAppendsWithDefaults(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	created, err := svc.Upsert(context.Background(), Product{})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, DefaultName, created.Name)
	assert.Equal(t, DefaultSKU, created.SKU)
	assert.Equal(t, DefaultCategory, created.Category)
	assert.Zero(t, created.CostPrice)
	assert.Zero(t, created.Stock)
	assert.False(t, created.LastUpdated.IsZero())
	assert.Len(t, repo.products, 1)
}

func TestUpsertReplacesExistingByID(t *testing.T) {
	repo := &mockRepository{products: fixtureProducts()}
	svc := NewService(repo)

	updated, err := svc.Upsert(context.Background(), Product{
		ID:        "p2",
		Name:      "Mechanical Keyboard (Brown Switch)",
		SKU:       "KB-102",
		Category:  "Accessories",
		CostPrice: 48.00,
		Stock:     15,
	})
	require.NoError(t, err)

	assert.Len(t, repo.products, 4)
	assert.Equal(t, "Mechanical Keyboard (Brown Switch)", updated.Name)
	assert.Equal(t, 48.00, repo.products[1].CostPrice)
}

func TestUpsertRejectsNegativeValues(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.Upsert(context.Background(), Product{CostPrice: -1})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), Product{Stock: -3})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestDeleteThenReAddYieldsNewIdentity(t *testing.T) {
	repo := &mockRepository{products: fixtureProducts()}
	svc := NewService(repo)
	ctx := context.Background()

	original, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "p1"))

	readded, err := svc.Upsert(ctx, Product{
		Name:      original.Name,
		SKU:       original.SKU,
		Category:  original.Category,
		CostPrice: original.CostPrice,
		Stock:     original.Stock,
	})
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, readded.ID)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := NewService(&mockRepository{products: fixtureProducts()})
	err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAdjustStockFloor(t *testing.T) {
	repo := &mockRepository{products: fixtureProducts()}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.AdjustStock(ctx, "p2", 2))
	p, err := svc.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 18, p.Stock)

	err = svc.AdjustStock(ctx, "p2", 19)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Failed adjustment leaves stock untouched.
	p, err = svc.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 18, p.Stock)
}

func TestAdjustStockRestores(t *testing.T) {
	repo := &mockRepository{products: fixtureProducts()}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.AdjustStock(ctx, "p4", 10))
	require.NoError(t, svc.AdjustStock(ctx, "p4", -10))

	p, err := svc.Get(ctx, "p4")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Stock)
}

func TestSearchMatchesNameAndSKU(t *testing.T) {
	svc := NewService(&mockRepository{products: fixtureProducts()})
	ctx := context.Background()

	byName, err := svc.Search(ctx, "keyboard")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "p2", byName[0].ID)

	bySKU, err := svc.Search(ctx, "cb-0")
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.Equal(t, "p4", bySKU[0].ID)

	all, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestLowStockBoundary(t *testing.T) {
	assert.True(t, Product{Stock: 0}.LowStock())
	assert.True(t, Product{Stock: 5}.LowStock())
	assert.False(t, Product{Stock: 6}.LowStock())
}
