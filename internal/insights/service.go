package insights

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/reporting"
	"github.com/lumapos/lumapos/internal/sales"
	"github.com/lumapos/lumapos/internal/settings"
)

// Diagnostic narratives returned in place of a model response. AI problems
// are never fatal, the dashboard renders whatever markdown comes back.
const (
	msgProxyURLMissing = "## Configuration Error\n\nProxy mode is enabled, but no proxy URL is configured in Settings."

	msgAPIKeyMissing = "## ⚠️ Missing Security Configuration\n\nNo API key was detected in the server environment.\n\n" +
		"**How to fix:**\n1. Open your hosting platform dashboard.\n2. Add an environment variable named `GEMINI_API_KEY`.\n3. Restart the application.\n\n" +
		"*Never hard-code the key in source code.*"

	msgRequestFailed = "## Analysis Failed\n\nAn error occurred while communicating with the analysis backend. " +
		"Check your network connection or API quota."

	msgEmptyResponse = "Unable to generate the analysis report."
)

// ProductsPort is the slice of the catalog the prompt builder needs.
type ProductsPort interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

// SettingsPort exposes the AI routing configuration.
type SettingsPort interface {
	Routing(ctx context.Context) (settings.DbConfig, error)
}

// Service turns a report filter into an AI narrative, routing through the
// configured mode. Concurrent requests for the same window share one
// in-flight call.
type Service struct {
	logger    *slog.Logger
	reports   *reporting.Service
	products  ProductsPort
	settings  SettingsPort
	generator Generator
	proxy     ProxyPort
	group     singleflight.Group
}

func NewService(
	logger *slog.Logger,
	reports *reporting.Service,
	products ProductsPort,
	settingsSvc SettingsPort,
	generator Generator,
	proxy ProxyPort,
) *Service {
	return &Service{
		logger:    logger,
		reports:   reports,
		products:  products,
		settings:  settingsSvc,
		generator: generator,
		proxy:     proxy,
	}
}

// Analyze produces the markdown narrative for the filtered window.
// Configuration and upstream AI failures come back as diagnostic markdown;
// the error return is reserved for storage problems.
func (s *Service) Analyze(ctx context.Context, filter reporting.Filter) (string, error) {
	key := flightKey(filter)
	report, err, _ := s.group.Do(key, func() (any, error) {
		return s.analyze(ctx, filter)
	})
	if err != nil {
		return "", err
	}
	return report.(string), nil
}

func (s *Service) analyze(ctx context.Context, filter reporting.Filter) (string, error) {
	cfg, err := s.settings.Routing(ctx)
	if err != nil {
		return "", err
	}

	var (
		records  []sales.SaleRecord
		products []catalog.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.reports.FilterSales(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	if cfg.ConnectionMode == settings.ModeProxy {
		if cfg.ProxyURL == "" {
			return msgProxyURLMissing, nil
		}
		report, err := s.proxy.Forward(ctx, cfg.ProxyURL, records, products)
		if err != nil {
			s.logger.Error("proxy analysis failed", slog.Any("error", err))
			return msgRequestFailed, nil
		}
		return report, nil
	}

	if s.generator == nil {
		return msgAPIKeyMissing, nil
	}
	prompt := BuildPrompt(periodLabel(filter), products, records)
	report, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("ai analysis failed", slog.Any("error", err))
		return msgRequestFailed, nil
	}
	if report == "" {
		return msgEmptyResponse, nil
	}
	return report, nil
}

func periodLabel(filter reporting.Filter) string {
	if filter.Custom() {
		from, to := "start", "now"
		if filter.From != nil {
			from = filter.From.Format("2006-01-02")
		}
		if filter.To != nil {
			to = filter.To.Format("2006-01-02")
		}
		return fmt.Sprintf("%s to %s", from, to)
	}
	return string(filter.Range)
}

func flightKey(filter reporting.Filter) string {
	return periodLabel(filter)
}
