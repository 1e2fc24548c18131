// Package store persists the expense report collection as a single
// JSON document, mirrored in memory and rewritten whole after every
// mutation.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rfletch/opex/internal/report"
	"github.com/rfletch/opex/internal/storage"
)

const fileName = "expense_reports.json"

type Store struct {
	path string

	mu      sync.Mutex
	reports map[string]*report.ExpenseReport
}

// Open loads the report collection from dir, treating a missing file
// as an empty collection.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, fileName)

	var reports map[string]*report.ExpenseReport
	if err := storage.ReadDocument(path, &reports); err != nil {
		return nil, fmt.Errorf("loading expense reports: %w", err)
	}

	if reports == nil {
		reports = make(map[string]*report.ExpenseReport)
	}

	return &Store{path: path, reports: reports}, nil
}

func (s *Store) CreateReport(_ context.Context, r *report.ExpenseReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[r.ID] = r

	if err := s.persist(); err != nil {
		return fmt.Errorf("creating expense report: %w", err)
	}

	return nil
}

func (s *Store) GetReport(_ context.Context, id string) (*report.ExpenseReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, report.ErrNotFound
	}

	return r, nil
}

func (s *Store) ListReports(_ context.Context, filter report.ListFilter) ([]*report.ExpenseReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*report.ExpenseReport, 0, len(s.reports))

	for _, r := range s.reports {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}

		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}

		return out[i].ID > out[j].ID
	})

	return out, nil
}

// UpdateStatus sets the report status. A non-nil submittedAt also
// stamps the submission time; approve/reject pass nil and leave any
// earlier stamp in place.
func (s *Store) UpdateStatus(_ context.Context, id string, status report.Status, submittedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return report.ErrNotFound
	}

	r.Status = status
	if submittedAt != nil {
		r.SubmittedAt = submittedAt
	}

	if err := s.persist(); err != nil {
		return fmt.Errorf("updating expense report status: %w", err)
	}

	return nil
}

func (s *Store) persist() error {
	return storage.WriteDocument(s.path, s.reports)
}
