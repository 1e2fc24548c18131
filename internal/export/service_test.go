package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rfletch/opex/internal/export"
	"github.com/rfletch/opex/internal/receipt"
	receiptStore "github.com/rfletch/opex/internal/receipt/store"
)

func seedService(t *testing.T) (*receipt.Service, *export.Service) {
	t.Helper()

	s, err := receiptStore.Open(t.TempDir())
	require.NoError(t, err)

	receipts := receipt.NewService(s)
	ctx := context.Background()

	_, err = receipts.Add(ctx, receipt.AddParams{
		Vendor:        "Rail Co",
		Amount:        10,
		Category:      "Travel",
		Description:   "Train ticket, return",
		PaymentMethod: "Credit",
		Date:          "2024-01-01",
		ImagePath:     "/scans/ticket.png",
	})
	require.NoError(t, err)

	_, err = receipts.Add(ctx, receipt.AddParams{
		Vendor:        "Bistro",
		Amount:        20,
		Category:      "Meals & Entertainment",
		Description:   "Client lunch",
		PaymentMethod: "Cash",
		Date:          "2024-01-05",
	})
	require.NoError(t, err)

	return receipts, export.NewService(receipts)
}

func TestService_WriteCSV(t *testing.T) {
	_, svc := seedService(t)

	var buf bytes.Buffer

	n, err := svc.WriteCSV(context.Background(), &buf, receipt.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "date", "vendor", "amount", "category", "description", "payment_method", "created_at"}, rows[0])

	// Date-descending: the bistro receipt comes first.
	assert.Equal(t, "2024-01-05", rows[1][1])
	assert.Equal(t, "Bistro", rows[1][2])
	assert.Equal(t, "20.00", rows[1][3])
	assert.Equal(t, "2024-01-01", rows[2][1])
	assert.Equal(t, "10.00", rows[2][3])

	// The image path never appears in the export.
	for _, row := range rows {
		for _, cell := range row {
			assert.NotContains(t, cell, "/scans/ticket.png")
		}
	}

	_, err = time.Parse(time.RFC3339, rows[1][7])
	assert.NoError(t, err)
}

func TestService_WriteCSV_DateFilter(t *testing.T) {
	_, svc := seedService(t)

	start, end := "2024-01-02", "2024-01-31"

	var buf bytes.Buffer

	n, err := svc.WriteCSV(context.Background(), &buf, receipt.ListFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bistro", rows[1][2])
}

func TestService_ExportCSV_OverwritesFile(t *testing.T) {
	_, svc := seedService(t)

	path := filepath.Join(t.TempDir(), "expenses.csv")
	ctx := context.Background()

	_, err := svc.ExportCSV(ctx, path, receipt.ListFilter{})
	require.NoError(t, err)

	// Exporting again with a narrower filter replaces the whole file.
	start := "2024-01-05"

	n, err := svc.ExportCSV(ctx, path, receipt.ListFilter{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestService_ExportXLSX(t *testing.T) {
	_, svc := seedService(t)

	path := filepath.Join(t.TempDir(), "expenses.xlsx")

	n, err := svc.ExportXLSX(context.Background(), path, receipt.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "Bistro", rows[1][2])
	assert.Equal(t, "Rail Co", rows[2][2])
}
