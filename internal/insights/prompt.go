package insights

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/sales"
)

// The model context stays bounded no matter how much history accumulates.
const (
	maxProductJSON = 2000
	maxSalesJSON   = 5000
)

type productDigest struct {
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Cost  float64 `json:"cost"`
}

type saleDigest struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Items   string  `json:"items"`
}

// BuildPrompt condenses the inventory and the filtered sales into the
// analysis request sent to the model.
func BuildPrompt(period string, products []catalog.Product, records []sales.SaleRecord) string {
	productSummary := make([]productDigest, 0, len(products))
	for _, p := range products {
		productSummary = append(productSummary, productDigest{Name: p.Name, Stock: p.Stock, Cost: p.CostPrice})
	}

	saleSummary := make([]saleDigest, 0, len(records))
	for _, rec := range records {
		parts := make([]string, 0, len(rec.Items))
		for _, item := range rec.Items {
			parts = append(parts, fmt.Sprintf("%s (x%d)", item.ProductName, item.Quantity))
		}
		saleSummary = append(saleSummary, saleDigest{
			Date:    rec.Timestamp.Format("2006-01-02"),
			Revenue: rec.TotalRevenue,
			Profit:  rec.TotalProfit,
			Items:   strings.Join(parts, ", "),
		})
	}

	var b strings.Builder
	b.WriteString("As a professional business intelligence analyst, analyze the sales data for this period: ")
	b.WriteString(period)
	b.WriteString(".\n\nContext:\n1. Inventory status: ")
	b.WriteString(truncateJSON(productSummary, maxProductJSON))
	b.WriteString("\n2. Sales records: ")
	b.WriteString(truncateJSON(saleSummary, maxSalesJSON))
	b.WriteString("\n\nProvide a concise Markdown report with these sections:\n")
	b.WriteString("- **Key Sales Trends**: what sells well, what does not.\n")
	b.WriteString("- **Profitability Analysis**: is the margin healthy, where are the high-profit items.\n")
	b.WriteString("- **Stock Warnings**: identify low-stock or slow-moving products.\n")
	b.WriteString("- **Strategic Recommendations**: concrete bundling or pricing suggestions based on the data.\n")
	b.WriteString("\nKeep the tone professional and actionable.\n")
	return b.String()
}

func truncateJSON(v any, limit int) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	if len(data) <= limit {
		return string(data)
	}
	return string(data[:limit]) + "..."
}
