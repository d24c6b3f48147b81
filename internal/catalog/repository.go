package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lumapos/lumapos/internal/platform/store"
)

// Repository persists the product collection as a whole record.
type Repository struct {
	store *store.Store
}

// NewRepository builds a Repository.
func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// seedProducts are written on the very first read so a fresh install has
// something to sell.
func seedProducts(now time.Time) []Product {
	return []Product{
		{ID: uuid.NewString(), Name: "Silent Wireless Mouse", SKU: "WM-001", Category: "Accessories", CostPrice: 15.50, Stock: 45, LastUpdated: now},
		{ID: uuid.NewString(), Name: "Mechanical Keyboard (Red Switch)", SKU: "KB-102", Category: "Accessories", CostPrice: 45.00, Stock: 20, LastUpdated: now},
		{ID: uuid.NewString(), Name: "24\" Low Blue Light Monitor", SKU: "MN-200", Category: "Electronics", CostPrice: 120.00, Stock: 8, LastUpdated: now},
		{ID: uuid.NewString(), Name: "USB-C Fast Charging Cable", SKU: "CB-050", Category: "Cables", CostPrice: 2.50, Stock: 100, LastUpdated: now},
	}
}

// List returns every product, seeding the demo catalog on first use.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.store.Get(ctx, store.KeyProducts, &products)
	if err == nil {
		return products, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	products = seedProducts(time.Now().UTC())
	if err := r.store.Put(ctx, store.KeyProducts, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Replace writes the full product collection back.
func (r *Repository) Replace(ctx context.Context, products []Product) error {
	return r.store.Put(ctx, store.KeyProducts, products)
}
