package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/rfletch/opex/internal/receipt"
)

type Service struct {
	receipts *receipt.Service
	parser   *Parser
}

func NewService(receipts *receipt.Service) *Service {
	return &Service{receipts: receipts, parser: NewParser()}
}

// Import parses the CSV and adds every parsed receipt. Rows added
// before a failure stay added; the caller gets the receipts created
// so far alongside the error.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]*receipt.Receipt, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	added := make([]*receipt.Receipt, 0, len(params))

	for _, p := range params {
		rec, err := s.receipts.Add(ctx, p)
		if err != nil {
			return added, fmt.Errorf("adding receipt for %q: %w", p.Vendor, err)
		}

		added = append(added, rec)
	}

	return added, nil
}
