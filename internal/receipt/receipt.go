package receipt

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a receipt id does not exist in the collection.
var ErrNotFound = errors.New("receipt not found")

// Receipt records a single expense transaction. Receipts are never
// edited in place; they are only added or deleted wholesale.
type Receipt struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Vendor        string    `json:"vendor"`
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"payment_method"`
	ImagePath     string    `json:"receipt_image_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SuggestedCategories is surfaced to callers as input suggestions.
// Category is free text; values outside this list are accepted.
var SuggestedCategories = []string{
	"Office Supplies",
	"Travel",
	"Meals & Entertainment",
	"Software/Subscriptions",
	"Equipment",
	"Marketing",
	"Professional Services",
	"Utilities",
	"Other",
}
