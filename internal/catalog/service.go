package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumapos/lumapos/internal/shared"
)

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Product, error)
	Replace(ctx context.Context, products []Product) error
}

// Service coordinates inventory ledger operations.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("catalog: product %s: %w", id, shared.ErrNotFound)
}

// Search filters products by case-insensitive substring match on name or SKU.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products, nil
	}
	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.SKU), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Upsert replaces the product with the same id or appends a new one. Blank
// identity fields fall back to placeholders and LastUpdated is always
// restamped.
func (s *Service) Upsert(ctx context.Context, product Product) (Product, error) {
	if err := validate(product); err != nil {
		return Product{}, err
	}
	applyDefaults(&product)
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.LastUpdated = time.Now().UTC()

	products, err := s.repo.List(ctx)
	if err != nil {
		return Product{}, err
	}
	replaced := false
	for i, existing := range products {
		if existing.ID == product.ID {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}
	if err := s.repo.Replace(ctx, products); err != nil {
		return Product{}, err
	}
	return product, nil
}

// Delete removes a product by id. Historical sales keep their own name and
// cost snapshots, so no dependency check is made against the sale ledger.
func (s *Service) Delete(ctx context.Context, id string) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	filtered := products[:0]
	found := false
	for _, p := range products {
		if p.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, p)
	}
	if !found {
		return fmt.Errorf("catalog: product %s: %w", id, shared.ErrNotFound)
	}
	return s.repo.Replace(ctx, filtered)
}

// AdjustStock subtracts delta from the product's stock; a positive delta
// represents units sold. A movement that would drive stock negative is
// rejected with ErrInsufficientStock.
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if err := ApplyStockDelta(products, id, delta, time.Now().UTC()); err != nil {
		return err
	}
	return s.repo.Replace(ctx, products)
}

// ApplyStockDelta mutates the in-memory product list, subtracting delta from
// the matching product's stock. Shared with the sale transaction engine so
// checkout and standalone adjustments enforce the same floor.
func ApplyStockDelta(products []Product, id string, delta int, now time.Time) error {
	for i := range products {
		if products[i].ID != id {
			continue
		}
		next := products[i].Stock - delta
		if next < 0 {
			return fmt.Errorf("%w: %s has %d left, %d requested", ErrInsufficientStock, products[i].SKU, products[i].Stock, delta)
		}
		products[i].Stock = next
		products[i].LastUpdated = now
		return nil
	}
	return fmt.Errorf("catalog: product %s: %w", id, shared.ErrNotFound)
}

func validate(p Product) error {
	if p.CostPrice < 0 {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, ErrInvalidCost)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, ErrInvalidStock)
	}
	return nil
}

func applyDefaults(p *Product) {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = DefaultName
	}
	if strings.TrimSpace(p.SKU) == "" {
		p.SKU = DefaultSKU
	}
	if strings.TrimSpace(p.Category) == "" {
		p.Category = DefaultCategory
	}
}
