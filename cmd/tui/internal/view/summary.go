package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfletch/opex/internal/summary"
)

type summaryState int

const (
	summaryStateForm summaryState = iota
	summaryStateResult
)

type SummaryModel struct {
	CommonModel
	summaryService *summary.Service

	state summaryState
	form  *huh.Form
	err   error

	startDate string
	endDate   string
	result    *summary.Summary
}

func NewSummaryModel(svc *summary.Service) SummaryModel {
	return SummaryModel{summaryService: svc}
}

func (m SummaryModel) Title() string { return "Spending Summary" }

func (m SummaryModel) ShortHelp() string {
	if m.state == summaryStateResult {
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m *SummaryModel) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("start_date").
				Title("Start Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.startDate).
				Validate(RequiredDate),

			huh.NewInput().
				Key("end_date").
				Title("End Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.endDate).
				Validate(RequiredDate),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(summaryResultMsg); ok {
		m.state = summaryStateResult
		m.result = result.summary
		m.err = result.err

		return m, nil
	}

	switch m.state {
	case summaryStateForm:
		return m.updateForm(msg)
	case summaryStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m SummaryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form == nil {
		m.buildForm()
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.generateCmd()
}

func (m SummaryModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	switch m.state {
	case summaryStateForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case summaryStateResult:
		return m.viewResult()
	}

	return ""
}

func (m SummaryModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	s := m.result

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render(fmt.Sprintf("Summary %s to %s", s.PeriodStart, s.PeriodEnd))

	var b strings.Builder
	fmt.Fprintf(&b, "Receipts:       %d\n", s.TotalReceipts)
	fmt.Fprintf(&b, "Total Spent:    %s\n", FormatAmount(s.TotalAmount))
	fmt.Fprintf(&b, "Average Amount: %s\n", FormatAmount(s.AverageReceiptAmount))

	if len(s.CategoryBreakdown) > 0 {
		b.WriteString("\nBy Category:\n")
		for _, c := range s.CategoryBreakdown {
			fmt.Fprintf(&b, "  %-24s %s\n", c.Category, FormatAmount(c.Amount))
		}
	}

	if len(s.PaymentMethodCounts) > 0 {
		b.WriteString("\nBy Payment Method:\n")
		for _, p := range s.PaymentMethodCounts {
			fmt.Fprintf(&b, "  %-24s %d\n", p.Method, p.Count)
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", b.String()),
	)
}

type summaryResultMsg struct {
	summary *summary.Summary
	err     error
}

func (m SummaryModel) generateCmd() tea.Cmd {
	start := m.form.GetString("start_date")
	end := m.form.GetString("end_date")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		s, err := m.summaryService.Generate(ctx, start, end)

		return summaryResultMsg{summary: s, err: err}
	}
}
