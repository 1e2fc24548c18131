// Package store persists the receipt collection as a single JSON
// document, mirrored in memory and rewritten whole after every mutation.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rfletch/opex/internal/receipt"
	"github.com/rfletch/opex/internal/storage"
)

const fileName = "receipts.json"

type Store struct {
	path string

	// Guards the map and the write-through. Mutations must be
	// serialized so the whole-document write matches memory.
	mu       sync.Mutex
	receipts map[string]*receipt.Receipt
}

// Open loads the receipt collection from dir, treating a missing file
// as an empty collection.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, fileName)

	var receipts map[string]*receipt.Receipt
	if err := storage.ReadDocument(path, &receipts); err != nil {
		return nil, fmt.Errorf("loading receipts: %w", err)
	}

	if receipts == nil {
		receipts = make(map[string]*receipt.Receipt)
	}

	return &Store{path: path, receipts: receipts}, nil
}

func (s *Store) CreateReceipt(_ context.Context, r *receipt.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.receipts[r.ID] = r

	if err := s.persist(); err != nil {
		return fmt.Errorf("creating receipt: %w", err)
	}

	return nil
}

func (s *Store) GetReceipt(_ context.Context, id string) (*receipt.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.receipts[id]
	if !ok {
		return nil, receipt.ErrNotFound
	}

	return r, nil
}

func (s *Store) ListReceipts(_ context.Context, filter receipt.ListFilter) ([]*receipt.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*receipt.Receipt, 0, len(s.receipts))

	for _, r := range s.receipts {
		if filter.Category != nil && r.Category != *filter.Category {
			continue
		}

		// ISO dates sort lexicographically, so plain string
		// comparison gives inclusive calendar bounds.
		if filter.StartDate != nil && r.Date < *filter.StartDate {
			continue
		}

		if filter.EndDate != nil && r.Date > *filter.EndDate {
			continue
		}

		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}

		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (s *Store) DeleteReceipt(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.receipts[id]; !ok {
		return receipt.ErrNotFound
	}

	delete(s.receipts, id)

	if err := s.persist(); err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	return nil
}

func (s *Store) persist() error {
	return storage.WriteDocument(s.path, s.receipts)
}
