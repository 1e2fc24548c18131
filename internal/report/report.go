package report

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a report id does not exist in the collection.
var ErrNotFound = errors.New("expense report not found")

// Status is the approval lifecycle state of an expense report.
//
// Reports start as draft, move to submitted, and end as approved or
// rejected. Transitions are deliberately unguarded: submit, approve
// and reject may be called from any current status, matching the
// office workflow this replaces. Terminal statuses are idempotent.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// ExpenseReport aggregates a set of receipt references for one
// reporting period. TotalAmount is computed once at creation and never
// recomputed; deleting a referenced receipt leaves the stored ids and
// total untouched. Reports are never deleted.
type ExpenseReport struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	EmployeeName string     `json:"employee_name"`
	Department   string     `json:"department"`
	PeriodStart  string     `json:"period_start"` // inclusive, YYYY-MM-DD
	PeriodEnd    string     `json:"period_end"`   // inclusive, YYYY-MM-DD
	ReceiptIDs   []string   `json:"receipt_ids"`
	TotalAmount  float64    `json:"total_amount"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}
