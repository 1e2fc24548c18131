package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const opTimeout = 5 * time.Second

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// FormatAmount renders a currency amount for display.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// OpCtx returns a context with the standard timeout for store operations.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// ValidDate accepts empty or YYYY-MM-DD input; the UI owns input
// validation so bad dates never reach the core.
func ValidDate(s string) error {
	if s == "" {
		return nil
	}

	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

// RequiredDate is ValidDate without the empty escape hatch.
func RequiredDate(s string) error {
	if s == "" {
		return fmt.Errorf("date is required")
	}

	return ValidDate(s)
}
