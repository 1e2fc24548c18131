// Package summary aggregates receipts over an inclusive date window.
package summary

import (
	"context"
	"fmt"

	"github.com/rfletch/opex/internal/receipt"
)

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MethodCount is the receipt count for one payment method.
type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// Summary is the aggregate view of one reporting window. Breakdown
// entries keep first-seen order from the date-descending receipt list.
type Summary struct {
	PeriodStart          string          `json:"period_start"`
	PeriodEnd            string          `json:"period_end"`
	TotalReceipts        int             `json:"total_receipts"`
	TotalAmount          float64         `json:"total_amount"`
	CategoryBreakdown    []CategoryTotal `json:"category_breakdown"`
	PaymentMethodCounts  []MethodCount   `json:"payment_method_counts"`
	AverageReceiptAmount float64         `json:"average_receipt_amount"`
}

type Service struct {
	receipts *receipt.Service
}

func NewService(receipts *receipt.Service) *Service {
	return &Service{receipts: receipts}
}

// Generate aggregates all receipts dated within [start, end].
func (s *Service) Generate(ctx context.Context, start, end string) (*Summary, error) {
	rs, err := s.receipts.List(ctx, receipt.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}

	sum := &Summary{
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalReceipts: len(rs),
	}

	categoryIdx := make(map[string]int)
	methodIdx := make(map[string]int)

	for _, r := range rs {
		sum.TotalAmount += r.Amount

		i, ok := categoryIdx[r.Category]
		if !ok {
			i = len(sum.CategoryBreakdown)
			categoryIdx[r.Category] = i

			sum.CategoryBreakdown = append(sum.CategoryBreakdown, CategoryTotal{Category: r.Category})
		}

		sum.CategoryBreakdown[i].Amount += r.Amount

		j, ok := methodIdx[r.PaymentMethod]
		if !ok {
			j = len(sum.PaymentMethodCounts)
			methodIdx[r.PaymentMethod] = j

			sum.PaymentMethodCounts = append(sum.PaymentMethodCounts, MethodCount{Method: r.PaymentMethod})
		}

		sum.PaymentMethodCounts[j].Count++
	}

	if len(rs) > 0 {
		sum.AverageReceiptAmount = sum.TotalAmount / float64(len(rs))
	}

	return sum, nil
}
