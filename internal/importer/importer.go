// Package importer parses receipt CSVs produced by spreadsheets or
// other tools into add parameters for the receipt service.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/rfletch/opex/internal/encoding"
	"github.com/rfletch/opex/internal/receipt"
)

// requiredCols must all appear in the header row. date, category,
// description and payment_method are picked up when present.
var requiredCols = []string{"vendor", "amount"}

// colIndex maps normalized header names to their position in a row.
type colIndex map[string]int

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a receipt CSV and returns one AddParams per data row.
// The header row is located by column name, so column order does not
// matter and extra columns are ignored. Input that is not UTF-8 is
// decoded first.
func (p *Parser) Parse(r io.Reader) ([]receipt.AddParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, fmt.Errorf("no header row found: need at least columns %s", strings.Join(requiredCols, ", "))
	}

	var params []receipt.AddParams

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2 // 1-based, for error messages

		if isBlank(row) {
			continue
		}

		amountRaw := cellValue(row, cols, "amount")

		amount, err := strconv.ParseFloat(strings.ReplaceAll(amountRaw, ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad amount %q", rowNum, amountRaw)
		}

		params = append(params, receipt.AddParams{
			Vendor:        cellValue(row, cols, "vendor"),
			Amount:        amount,
			Category:      cellValue(row, cols, "category"),
			Description:   cellValue(row, cols, "description"),
			PaymentMethod: cellValue(row, cols, "payment_method"),
			Date:          cellValue(row, cols, "date"),
		})
	}

	return params, nil
}

// findHeader scans for the first row containing every required column.
func findHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		if hasRequired(cols) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func hasRequired(cols colIndex) bool {
	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
