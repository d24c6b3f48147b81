package insights

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/reporting"
	"github.com/lumapos/lumapos/internal/sales"
	"github.com/lumapos/lumapos/internal/settings"
)

type stubSales struct {
	records []sales.SaleRecord
}

func (s *stubSales) List(ctx context.Context) ([]sales.SaleRecord, error) {
	return s.records, nil
}

type stubProducts struct {
	products []catalog.Product
}

func (s *stubProducts) List(ctx context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

type stubSettings struct {
	cfg settings.DbConfig
}

func (s *stubSettings) Routing(ctx context.Context) (settings.DbConfig, error) {
	return s.cfg, nil
}

// stubGenerator records whether the model was ever called.
type stubGenerator struct {
	report string
	err    error
	calls  int
	prompt string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.report, s.err
}

type stubProxy struct {
	report string
	err    error
	calls  int
	url    string
}

func (s *stubProxy) Forward(ctx context.Context, url string, records []sales.SaleRecord, products []catalog.Product) (string, error) {
	s.calls++
	s.url = url
	return s.report, s.err
}

func fixtureData() (*stubSales, *stubProducts) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	salesStub := &stubSales{records: []sales.SaleRecord{
		{
			ID: "s1", Timestamp: now,
			Items:        []sales.SaleItem{{ProductName: "Silent Wireless Mouse", Quantity: 2}},
			TotalRevenue: 50, TotalCost: 31, TotalProfit: 19,
		},
	}}
	productsStub := &stubProducts{products: []catalog.Product{
		{ID: "p1", Name: "Silent Wireless Mouse", SKU: "WM-001", CostPrice: 15.50, Stock: 43},
	}}
	return salesStub, productsStub
}

func newTestService(cfg settings.DbConfig, gen Generator, proxy ProxyPort) (*Service, func() reporting.Filter) {
	salesStub, productsStub := fixtureData()
	reports := reporting.NewService(salesStub)
	reports.WithNow(func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, reports, productsStub, &stubSettings{cfg: cfg}, gen, proxy)
	return svc, func() reporting.Filter { return reporting.Filter{Range: reporting.RangeDay} }
}

func TestAnalyzeDirectModeWithoutKey(t *testing.T) {
	cfg := settings.DefaultConfig()
	proxy := &stubProxy{}

	// No generator wired means no credential was configured. There must be
	// no network activity of any kind.
	svc, filter := newTestService(cfg, nil, proxy)
	report, err := svc.Analyze(context.Background(), filter())
	require.NoError(t, err)

	assert.Contains(t, report, "Missing Security Configuration")
	assert.Contains(t, report, "GEMINI_API_KEY")
	assert.Zero(t, proxy.calls)
}

func TestAnalyzeDirectModeBuildsPrompt(t *testing.T) {
	gen := &stubGenerator{report: "## Looking Good\n\nSales are healthy."}
	svc, filter := newTestService(settings.DefaultConfig(), gen, &stubProxy{})

	report, err := svc.Analyze(context.Background(), filter())
	require.NoError(t, err)

	assert.Equal(t, "## Looking Good\n\nSales are healthy.", report)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompt, "Silent Wireless Mouse")
	assert.Contains(t, gen.prompt, "Key Sales Trends")
	assert.Contains(t, gen.prompt, "day")
}

func TestAnalyzeDirectModeFailureIsDiagnostic(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc, filter := newTestService(settings.DefaultConfig(), gen, &stubProxy{})

	report, err := svc.Analyze(context.Background(), filter())
	require.NoError(t, err)
	assert.Contains(t, report, "Analysis Failed")
}

func TestAnalyzeProxyModeWithoutURL(t *testing.T) {
	cfg := settings.DefaultConfig()
	cfg.ConnectionMode = settings.ModeProxy
	gen := &stubGenerator{report: "unused"}
	proxy := &stubProxy{}
	svc, filter := newTestService(cfg, gen, proxy)

	report, err := svc.Analyze(context.Background(), filter())
	require.NoError(t, err)

	assert.Contains(t, report, "Configuration Error")
	assert.Zero(t, proxy.calls)
	assert.Zero(t, gen.calls)
}

func TestAnalyzeProxyModeForwards(t *testing.T) {
	cfg := settings.DefaultConfig()
	cfg.ConnectionMode = settings.ModeProxy
	cfg.ProxyURL = "https://backend.internal/analyze"
	gen := &stubGenerator{report: "unused"}
	proxy := &stubProxy{report: "## Proxy Report\n\nDone."}
	svc, filter := newTestService(cfg, gen, proxy)

	report, err := svc.Analyze(context.Background(), filter())
	require.NoError(t, err)

	assert.Equal(t, "## Proxy Report\n\nDone.", report)
	assert.Equal(t, "https://backend.internal/analyze", proxy.url)
	assert.Zero(t, gen.calls, "direct client must stay idle in proxy mode")
}

func TestBuildPromptTruncatesLongPayloads(t *testing.T) {
	products := make([]catalog.Product, 0, 200)
	for i := 0; i < 200; i++ {
		products = append(products, catalog.Product{
			Name: strings.Repeat("x", 40), Stock: i, CostPrice: float64(i),
		})
	}
	prompt := BuildPrompt("week", products, nil)

	start := strings.Index(prompt, "Inventory status: ")
	require.GreaterOrEqual(t, start, 0)
	section := prompt[start+len("Inventory status: "):]
	end := strings.Index(section, "\n")
	require.GreaterOrEqual(t, end, 0)
	assert.LessOrEqual(t, end, maxProductJSON+len("..."))
	assert.True(t, strings.HasSuffix(section[:end], "..."))
}
