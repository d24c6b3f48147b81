package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumapos/lumapos/internal/sales"
)

func TestWriteSalesCSV(t *testing.T) {
	records := []sales.SaleRecord{
		{
			ID:        "s1",
			Timestamp: time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC),
			Items: []sales.SaleItem{
				{ProductName: "Silent Wireless Mouse", Quantity: 2},
				{ProductName: "USB-C Fast Charging Cable", Quantity: 1},
			},
			TotalCost:    33.50,
			TotalRevenue: 50.00,
			TotalProfit:  16.50,
			Note:         "walk-in, paid cash",
		},
		{
			ID:           "s2",
			Timestamp:    time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC),
			Items:        []sales.SaleItem{{ProductName: "Mechanical Keyboard (Red Switch)", Quantity: 1}},
			TotalCost:    45.00,
			TotalRevenue: 60.00,
			TotalProfit:  15.00,
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteSalesCSV(buf, records))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, utf8BOM), "output must start with a UTF-8 BOM")

	// The note contains a comma, so the writer must quote it and a
	// round-trip parse must recover the exact field.
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, utf8BOM)))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "Date", "ItemDetail", "TotalCost", "TotalRevenue", "NetProfit", "Note"}, rows[0])
	assert.Equal(t, "Silent Wireless Mouse x2; USB-C Fast Charging Cable x1", rows[1][2])
	assert.Equal(t, "walk-in, paid cash", rows[1][6])
	assert.Equal(t, "33.50", rows[1][3])
	assert.Equal(t, "50.00", rows[1][4])
	assert.Equal(t, "16.50", rows[1][5])
	assert.Equal(t, "2025-03-11 09:30:00", rows[2][1])
}

func TestWriteSalesCSVEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteSalesCSV(buf, nil))

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), utf8BOM)))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
