package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lumapos/lumapos/internal/sales"
)

// utf8BOM makes spreadsheet applications detect the encoding correctly.
const utf8BOM = "\xEF\xBB\xBF"

// WriteSalesCSV serialises the filtered sale records to a CSV report,
// one row per sale with its line items joined into a single column.
func WriteSalesCSV(w io.Writer, records []sales.SaleRecord) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"ID", "Date", "ItemDetail", "TotalCost", "TotalRevenue", "NetProfit", "Note"}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write([]string{
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			itemDetail(rec.Items),
			formatFloat(rec.TotalCost),
			formatFloat(rec.TotalRevenue),
			formatFloat(rec.TotalProfit),
			rec.Note,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func itemDetail(items []sales.SaleItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
	}
	return strings.Join(parts, "; ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
