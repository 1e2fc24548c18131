package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rfletch/opex/internal/receipt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	CreateReport(ctx context.Context, r *ExpenseReport) error
	GetReport(ctx context.Context, id string) (*ExpenseReport, error)
	ListReports(ctx context.Context, filter ListFilter) ([]*ExpenseReport, error)
	UpdateStatus(ctx context.Context, id string, status Status, submittedAt *time.Time) error
}

// ReceiptSource resolves receipt ids when a report is created.
// Satisfied by *receipt.Service.
type ReceiptSource interface {
	Get(ctx context.Context, id string) (*receipt.Receipt, error)
}

type Service struct {
	repo     Repository
	receipts ReceiptSource
}

func NewService(repo Repository, receipts ReceiptSource) *Service {
	return &Service{repo: repo, receipts: receipts}
}

type CreateParams struct {
	Title        string
	EmployeeName string
	Department   string
	PeriodStart  string
	PeriodEnd    string
	ReceiptIDs   []string
}

// CreateResult carries the created report plus the receipt ids that
// were dropped because they do not exist. Missing ids are a warning
// for the caller to surface, not an error.
type CreateResult struct {
	Report            *ExpenseReport
	MissingReceiptIDs []string
}

type ListFilter struct {
	Status *Status
}

// Create builds a draft report from the receipt ids that exist,
// summing their amounts into the report total. Unknown ids are dropped
// and reported back. Duplicate ids are kept and counted per occurrence.
func (s *Service) Create(ctx context.Context, params CreateParams) (*CreateResult, error) {
	var (
		valid   []string
		missing []string
		total   float64
	)

	for _, id := range params.ReceiptIDs {
		r, err := s.receipts.Get(ctx, id)
		if errors.Is(err, receipt.ErrNotFound) {
			missing = append(missing, id)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("resolving receipt %s: %w", id, err)
		}

		valid = append(valid, id)
		total += r.Amount
	}

	rep := &ExpenseReport{
		ID:           newID(),
		Title:        params.Title,
		EmployeeName: params.EmployeeName,
		Department:   params.Department,
		PeriodStart:  params.PeriodStart,
		PeriodEnd:    params.PeriodEnd,
		ReceiptIDs:   valid,
		TotalAmount:  total,
		Status:       StatusDraft,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateReport(ctx, rep); err != nil {
		return nil, err
	}

	return &CreateResult{Report: rep, MissingReceiptIDs: missing}, nil
}

// Submit stamps the report submitted. Allowed from any current status;
// resubmitting refreshes the submitted_at timestamp.
func (s *Service) Submit(ctx context.Context, id string) error {
	now := time.Now()
	return s.repo.UpdateStatus(ctx, id, StatusSubmitted, &now)
}

func (s *Service) Approve(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusApproved, nil)
}

func (s *Service) Reject(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusRejected, nil)
}

func (s *Service) Get(ctx context.Context, id string) (*ExpenseReport, error) {
	return s.repo.GetReport(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*ExpenseReport, error) {
	return s.repo.ListReports(ctx, filter)
}

func newID() string {
	return uuid.NewString()[:8]
}
