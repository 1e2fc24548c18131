// Package export writes filtered receipt listings to CSV and XLSX.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rfletch/opex/internal/receipt"
)

// columns is the fixed export contract. The image path is deliberately
// not exported.
var columns = []string{"id", "date", "vendor", "amount", "category", "description", "payment_method", "created_at"}

type Service struct {
	receipts *receipt.Service
}

func NewService(receipts *receipt.Service) *Service {
	return &Service{receipts: receipts}
}

// WriteCSV streams the filtered receipts to w in date-descending order
// and returns how many rows were written.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, filter receipt.ListFilter) (int, error) {
	rs, err := s.receipts.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing receipts: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rs {
		if err := cw.Write(row(r)); err != nil {
			return 0, fmt.Errorf("writing receipt %s: %w", r.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(rs), nil
}

// ExportCSV writes the filtered receipts to path, replacing any
// existing file.
func (s *Service) ExportCSV(ctx context.Context, path string, filter receipt.ListFilter) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	n, err := s.WriteCSV(ctx, f, filter)
	if err != nil {
		return 0, err
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing %s: %w", path, err)
	}

	return n, nil
}

// ExportXLSX writes the filtered receipts as a single-sheet workbook
// with the same columns as the CSV export.
func (s *Service) ExportXLSX(ctx context.Context, path string, filter receipt.ListFilter) (int, error) {
	rs, err := s.receipts.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing receipts: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, fmt.Errorf("computing cell: %w", err)
		}

		values := []any{r.ID, r.Date, r.Vendor, r.Amount, r.Category, r.Description, r.PaymentMethod, r.CreatedAt.Format(time.RFC3339)}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return 0, fmt.Errorf("writing receipt %s: %w", r.ID, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("saving %s: %w", path, err)
	}

	return len(rs), nil
}

func row(r *receipt.Receipt) []string {
	return []string{
		r.ID,
		r.Date,
		r.Vendor,
		strconv.FormatFloat(r.Amount, 'f', 2, 64),
		r.Category,
		r.Description,
		r.PaymentMethod,
		r.CreatedAt.Format(time.RFC3339),
	}
}
