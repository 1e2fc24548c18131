package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	CreateReceipt(ctx context.Context, r *Receipt) error
	GetReceipt(ctx context.Context, id string) (*Receipt, error)
	ListReceipts(ctx context.Context, filter ListFilter) ([]*Receipt, error)
	DeleteReceipt(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddParams carries caller-supplied receipt fields. The caller is
// responsible for input validation; the core stores what it is given.
type AddParams struct {
	Vendor        string
	Amount        float64
	Category      string
	Description   string
	PaymentMethod string
	Date          string // optional YYYY-MM-DD, defaults to today
	ImagePath     string // optional
}

// ListFilter narrows a listing. All set fields apply conjunctively.
// Date bounds are inclusive and compared as ISO-8601 strings.
type ListFilter struct {
	Category  *string
	StartDate *string
	EndDate   *string
}

func (s *Service) Add(ctx context.Context, params AddParams) (*Receipt, error) {
	date := params.Date
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}

	r := &Receipt{
		ID:            newID(),
		Date:          date,
		Vendor:        params.Vendor,
		Amount:        params.Amount,
		Category:      params.Category,
		Description:   params.Description,
		PaymentMethod: params.PaymentMethod,
		ImagePath:     params.ImagePath,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.CreateReceipt(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Receipt, error) {
	return s.repo.ListReceipts(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteReceipt(ctx, id)
}

// newID returns a fresh 8-character identifier, the short uuid form
// used across both collections.
func newID() string {
	return uuid.NewString()[:8]
}
