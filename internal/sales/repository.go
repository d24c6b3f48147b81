package sales

import (
	"context"
	"errors"

	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/platform/store"
)

// TxView is the transactional snapshot handed to mutation callbacks. Both
// collections are written back in one commit, so a sale append and its stock
// decrements cannot be observed separately.
type TxView struct {
	Products []catalog.Product
	Sales    []SaleRecord
}

// Repository persists the sale ledger and coordinates cross-collection
// transactions with the product catalog.
type Repository struct {
	store *store.Store
}

// NewRepository builds a Repository.
func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// ListSales returns every recorded sale. A never-written ledger is empty,
// not an error.
func (r *Repository) ListSales(ctx context.Context) ([]SaleRecord, error) {
	var sales []SaleRecord
	if err := r.store.Get(ctx, store.KeySales, &sales); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []SaleRecord{}, nil
		}
		return nil, err
	}
	return sales, nil
}

// Mutate runs fn against a consistent view of products and sales and commits
// both collections atomically.
func (r *Repository) Mutate(ctx context.Context, fn func(view *TxView) error) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		view := TxView{}
		if err := tx.Get(ctx, store.KeyProducts, &view.Products); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := tx.Get(ctx, store.KeySales, &view.Sales); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if err := fn(&view); err != nil {
			return err
		}
		if err := tx.Put(store.KeyProducts, view.Products); err != nil {
			return err
		}
		return tx.Put(store.KeySales, view.Sales)
	}, store.KeyProducts, store.KeySales)
}

// MutateSales runs fn against the sale ledger alone. Used for amendments,
// which never touch stock.
func (r *Repository) MutateSales(ctx context.Context, fn func(sales []SaleRecord) ([]SaleRecord, error)) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		var sales []SaleRecord
		if err := tx.Get(ctx, store.KeySales, &sales); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		updated, err := fn(sales)
		if err != nil {
			return err
		}
		return tx.Put(store.KeySales, updated)
	}, store.KeySales)
}
