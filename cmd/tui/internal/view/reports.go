package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfletch/opex/internal/report"
)

type reportsState int

const (
	reportsStateBrowse reportsState = iota
	reportsStateCreate
)

var statusCycle = []*report.Status{
	nil,
	new(report.StatusDraft),
	new(report.StatusSubmitted),
	new(report.StatusApproved),
	new(report.StatusRejected),
}

type ReportsModel struct {
	CommonModel
	reportService *report.Service

	state   reportsState
	table   table.Model
	reports []*report.ExpenseReport
	form    *huh.Form

	statusFilterIdx int
	loading         bool
	err             error
	status          string

	formTitle       string
	formEmployee    string
	formDepartment  string
	formPeriodStart string
	formPeriodEnd   string
	formReceiptIDs  string
}

func NewReportsModel(svc *report.Service) ReportsModel {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Total", Width: 10},
		{Title: "Receipts", Width: 8},
		{Title: "ID", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ReportsModel{
		reportService: svc,
		table:         t,
	}
}

func (m ReportsModel) Title() string { return "Expense Reports" }

func (m ReportsModel) ShortHelp() string {
	if m.state == reportsStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | s: submit | a: approve | j: reject | f: status filter | r: refresh"
}

func (m ReportsModel) Init() tea.Cmd {
	return m.loadReportsCmd()
}

func (m ReportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.reports = msg.reports
		m.refreshTable()

		return m, nil

	case reportCreatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else if len(msg.missing) > 0 {
			m.status = fmt.Sprintf("Report %s created; unknown receipt IDs skipped: %s",
				msg.id, strings.Join(msg.missing, ", "))
		} else {
			m.status = fmt.Sprintf("Report %s created", msg.id)
		}

		m.state = reportsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadReportsCmd()

	case reportTransitionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Report %s %s", msg.id, msg.verb)
		}

		return m, m.loadReportsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case reportsStateBrowse:
		return m.updateBrowse(msg)
	case reportsStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m ReportsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadReportsCmd()
		case "n":
			return m.enterCreateMode()
		case "s":
			return m, m.transitionCmd("submitted", m.reportService.Submit)
		case "a":
			return m, m.transitionCmd("approved", m.reportService.Approve)
		case "j":
			return m, m.transitionCmd("rejected", m.reportService.Reject)
		case "f":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusCycle)
			return m, m.loadReportsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReportsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.formTitle = ""
	m.formEmployee = ""
	m.formDepartment = ""
	m.formPeriodStart = ""
	m.formPeriodEnd = ""
	m.formReceiptIDs = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.formTitle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("employee_name").
				Title("Employee Name").
				Value(&m.formEmployee),

			huh.NewInput().
				Key("department").
				Title("Department").
				Value(&m.formDepartment),

			huh.NewInput().
				Key("period_start").
				Title("Period Start").
				Placeholder("YYYY-MM-DD").
				Value(&m.formPeriodStart).
				Validate(ValidDate),

			huh.NewInput().
				Key("period_end").
				Title("Period End").
				Placeholder("YYYY-MM-DD").
				Value(&m.formPeriodEnd).
				Validate(ValidDate),

			huh.NewInput().
				Key("receipt_ids").
				Title("Receipt IDs").
				Placeholder("comma-separated, e.g. a1b2c3d4,e5f6a7b8").
				Value(&m.formReceiptIDs),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = reportsStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m ReportsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = reportsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m ReportsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading reports...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Filter: [f] Status: %s", activeStyle(m.statusLabel()))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == reportsStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("New Expense Report\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ReportsModel) statusLabel() string {
	if statusCycle[m.statusFilterIdx] == nil {
		return "All"
	}

	return string(*statusCycle[m.statusFilterIdx])
}

func (m *ReportsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.reports))
	for _, r := range m.reports {
		rows = append(rows, table.Row{
			r.Title,
			string(r.Status),
			FormatAmount(r.TotalAmount),
			fmt.Sprintf("%d", len(r.ReceiptIDs)),
			r.ID,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadReportsMsg struct {
	reports []*report.ExpenseReport
	err     error
}

func (m ReportsModel) loadReportsCmd() tea.Cmd {
	filter := report.ListFilter{Status: statusCycle[m.statusFilterIdx]}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		reports, err := m.reportService.List(ctx, filter)

		return loadReportsMsg{reports: reports, err: err}
	}
}

type reportCreatedMsg struct {
	id      string
	missing []string
	err     error
}

func (m ReportsModel) createCmd() tea.Cmd {
	var ids []string
	for _, id := range strings.Split(m.form.GetString("receipt_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	params := report.CreateParams{
		Title:        m.form.GetString("title"),
		EmployeeName: m.form.GetString("employee_name"),
		Department:   m.form.GetString("department"),
		PeriodStart:  m.form.GetString("period_start"),
		PeriodEnd:    m.form.GetString("period_end"),
		ReceiptIDs:   ids,
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		res, err := m.reportService.Create(ctx, params)
		if err != nil {
			return reportCreatedMsg{err: err}
		}

		return reportCreatedMsg{id: res.Report.ID, missing: res.MissingReceiptIDs}
	}
}

type reportTransitionMsg struct {
	id   string
	verb string
	err  error
}

func (m ReportsModel) transitionCmd(verb string, op func(ctx context.Context, id string) error) tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.reports) {
		return nil
	}

	id := m.reports[idx].ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := op(ctx, id); err != nil {
			return reportTransitionMsg{id: id, verb: verb, err: err}
		}

		return reportTransitionMsg{id: id, verb: verb}
	}
}
