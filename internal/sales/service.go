package sales

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/shared"
)

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	ListSales(ctx context.Context) ([]SaleRecord, error)
	Mutate(ctx context.Context, fn func(view *TxView) error) error
	MutateSales(ctx context.Context, fn func(sales []SaleRecord) ([]SaleRecord, error)) error
}

// Service is the sale transaction engine: checkout, amendment, and deletion
// with symmetric stock restoration.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds Service.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// List returns all recorded sales.
func (s *Service) List(ctx context.Context) ([]SaleRecord, error) {
	return s.repo.ListSales(ctx)
}

// Checkout records a sale: it snapshots each line's name and current cost,
// sums the cost, derives profit from the operator-entered revenue, and
// decrements stock per line. Sale append and stock decrements commit
// together or not at all.
func (s *Service) Checkout(ctx context.Context, input CheckoutInput) (SaleRecord, error) {
	if len(input.Lines) == 0 {
		return SaleRecord{}, fmt.Errorf("%w: %s", shared.ErrInvalidInput, ErrEmptyCart)
	}
	if input.Revenue <= 0 {
		return SaleRecord{}, fmt.Errorf("%w: %s", shared.ErrInvalidInput, ErrInvalidRevenue)
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return SaleRecord{}, fmt.Errorf("%w: %s", shared.ErrInvalidInput, ErrInvalidQuantity)
		}
	}

	now := s.now().UTC()
	sale := SaleRecord{
		ID:           uuid.NewString(),
		Timestamp:    now,
		TotalRevenue: input.Revenue,
		Note:         input.Note,
	}

	err := s.repo.Mutate(ctx, func(view *TxView) error {
		sale.Items = sale.Items[:0]
		sale.TotalCost = 0
		for _, line := range input.Lines {
			product, ok := findProduct(view.Products, line.ProductID)
			if !ok {
				return fmt.Errorf("sales: product %s: %w", line.ProductID, shared.ErrNotFound)
			}
			sale.Items = append(sale.Items, SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				CostAtTime:  product.CostPrice,
			})
			sale.TotalCost += product.CostPrice * float64(line.Quantity)
			if err := catalog.ApplyStockDelta(view.Products, product.ID, line.Quantity, now); err != nil {
				return err
			}
		}
		sale.TotalProfit = sale.TotalRevenue - sale.TotalCost
		view.Sales = append(view.Sales, sale)
		return nil
	})
	if err != nil {
		return SaleRecord{}, err
	}

	s.logger.Info("sale recorded",
		slog.String("sale_id", sale.ID),
		slog.Int("lines", len(sale.Items)),
		slog.Float64("revenue", sale.TotalRevenue),
		slog.Float64("profit", sale.TotalProfit),
	)
	return sale, nil
}

// Amend updates timestamp, revenue, or note on a recorded sale. Items and
// cost are immutable; profit is recomputed from the stored cost whenever
// revenue changes. Stock is untouched.
func (s *Service) Amend(ctx context.Context, id string, input AmendInput) (SaleRecord, error) {
	if input.Revenue != nil && *input.Revenue <= 0 {
		return SaleRecord{}, fmt.Errorf("%w: %s", shared.ErrInvalidInput, ErrInvalidRevenue)
	}

	var amended SaleRecord
	err := s.repo.MutateSales(ctx, func(sales []SaleRecord) ([]SaleRecord, error) {
		for i := range sales {
			if sales[i].ID != id {
				continue
			}
			if input.Timestamp != nil {
				sales[i].Timestamp = input.Timestamp.UTC()
			}
			if input.Revenue != nil {
				sales[i].TotalRevenue = *input.Revenue
				sales[i].TotalProfit = sales[i].TotalRevenue - sales[i].TotalCost
			}
			if input.Note != nil {
				sales[i].Note = *input.Note
			}
			amended = sales[i]
			return sales, nil
		}
		return nil, fmt.Errorf("sales: sale %s: %w", id, shared.ErrNotFound)
	})
	if err != nil {
		return SaleRecord{}, err
	}
	return amended, nil
}

// Delete removes a sale and restores stock for every line, the symmetric
// inverse of Checkout. Lines whose product has since been deleted from the
// catalog are skipped; the restoration is lost and logged.
func (s *Service) Delete(ctx context.Context, id string) error {
	now := s.now().UTC()
	var skipped []string

	err := s.repo.Mutate(ctx, func(view *TxView) error {
		skipped = skipped[:0]
		idx := -1
		for i := range view.Sales {
			if view.Sales[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("sales: sale %s: %w", id, shared.ErrNotFound)
		}
		for _, item := range view.Sales[idx].Items {
			if _, ok := findProduct(view.Products, item.ProductID); !ok {
				skipped = append(skipped, item.ProductID)
				continue
			}
			if err := catalog.ApplyStockDelta(view.Products, item.ProductID, -item.Quantity, now); err != nil {
				return err
			}
		}
		view.Sales = append(view.Sales[:idx], view.Sales[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	for _, productID := range skipped {
		s.logger.Warn("stock restoration skipped, product no longer exists",
			slog.String("sale_id", id),
			slog.String("product_id", productID),
		)
	}
	return nil
}

func findProduct(products []catalog.Product, id string) (catalog.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}
