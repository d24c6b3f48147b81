package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/sales"
)

// ProxyPort forwards the analysis data to an operator-configured backend
// that holds its own credential.
type ProxyPort interface {
	Forward(ctx context.Context, url string, records []sales.SaleRecord, products []catalog.Product) (string, error)
}

// ProxyClient POSTs the raw report data to the configured URL and returns
// the response body as the narrative.
type ProxyClient struct {
	client *resty.Client
}

func NewProxyClient() *ProxyClient {
	return &ProxyClient{client: resty.New().SetTimeout(60 * time.Second)}
}

func (p *ProxyClient) Forward(ctx context.Context, url string, records []sales.SaleRecord, products []catalog.Product) (string, error) {
	payload := map[string]any{
		"sales":    records,
		"products": products,
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("proxy request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("proxy request: status %d", resp.StatusCode())
	}
	return resp.String(), nil
}
