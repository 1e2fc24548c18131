package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfletch/opex/internal/receipt"
)

type receiptsState int

const (
	receiptsStateBrowse receiptsState = iota
	receiptsStateAdd
)

type ReceiptsModel struct {
	CommonModel
	receiptService *receipt.Service

	state    receiptsState
	table    table.Model
	receipts []*receipt.Receipt
	form     *huh.Form

	// Filter cycling
	categoryFilterIdx int
	dateFilterIdx     int

	filter        receipt.ListFilter
	openAddOnLoad bool
	loading       bool
	err           error
	status        string

	// Form bindings
	formVendor   string
	formAmount   string
	formCategory string
	formDesc     string
	formMethod    string
	formDate      string
	formImagePath string
}

// NewAddReceiptModel opens the receipts view with the add form
// already up, for the direct add menu entry.
func NewAddReceiptModel(svc *receipt.Service) ReceiptsModel {
	m := NewReceiptsModel(svc)
	m.openAddOnLoad = true

	return m
}

func NewReceiptsModel(svc *receipt.Service) ReceiptsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Vendor", Width: 22},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 22},
		{Title: "Method", Width: 10},
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

	return ReceiptsModel{
		receiptService: svc,
		table:          t,
		filter:         receipt.ListFilter{},
	}
}

func (m ReceiptsModel) Title() string { return "Receipts" }

func (m ReceiptsModel) ShortHelp() string {
	if m.state == receiptsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | c: category filter | d: date filter | r: refresh"
}

func (m ReceiptsModel) Init() tea.Cmd {
	return m.loadReceiptsCmd()
}

func (m ReceiptsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReceiptsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.receipts = msg.receipts
		m.refreshTable()

		if m.openAddOnLoad {
			m.openAddOnLoad = false
			return m.enterAddMode()
		}

		return m, nil

	case receiptSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Receipt added with ID %s", msg.id)
		}

		m.state = receiptsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadReceiptsCmd()

	case receiptDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Receipt %s deleted", msg.id)
		}

		return m, m.loadReceiptsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case receiptsStateBrowse:
		return m.updateBrowse(msg)
	case receiptsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m ReceiptsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadReceiptsCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			return m, m.deleteCmd()
		case "c":
			m.categoryFilterIdx = (m.categoryFilterIdx + 1) % (len(receipt.SuggestedCategories) + 1)
			m.applyFilter()

			return m, m.loadReceiptsCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.applyFilter()

			return m, m.loadReceiptsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ReceiptsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formVendor = ""
	m.formAmount = ""
	m.formCategory = ""
	m.formDesc = ""
	m.formMethod = "Credit"
	m.formDate = ""
	m.formImagePath = ""

	categoryOptions := make([]huh.Option[string], 0, len(receipt.SuggestedCategories))
	for _, c := range receipt.SuggestedCategories {
		categoryOptions = append(categoryOptions, huh.NewOption(c, c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("vendor").
				Title("Vendor").
				Value(&m.formVendor).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("vendor cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return fmt.Errorf("enter a number")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewInput().
				Key("payment_method").
				Title("Payment Method").
				Placeholder("Cash/Credit/Debit/Other").
				Value(&m.formMethod),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD, empty for today").
				Value(&m.formDate).
				Validate(ValidDate),

			huh.NewInput().
				Key("image_path").
				Title("Image Path").
				Placeholder("optional").
				Value(&m.formImagePath),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = receiptsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ReceiptsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = receiptsStateBrowse
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

	return m, m.saveCmd()
}

func (m ReceiptsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading receipts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	dateLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf(
		"Filter: [c] Category: %s | [d] Date: %s",
		activeStyle(m.categoryLabel()),
		activeStyle(dateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == receiptsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render("Add Receipt\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m ReceiptsModel) categoryLabel() string {
	if m.categoryFilterIdx == 0 {
		return "All"
	}

	return receipt.SuggestedCategories[m.categoryFilterIdx-1]
}

func (m *ReceiptsModel) applyFilter() {
	if m.categoryFilterIdx == 0 {
		m.filter.Category = nil
	} else {
		category := receipt.SuggestedCategories[m.categoryFilterIdx-1]
		m.filter.Category = &category
	}

	now := time.Now()

	switch m.dateFilterIdx {
	case 1:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		m.filter.StartDate = new(start.Format(time.DateOnly))
		m.filter.EndDate = new(start.AddDate(0, 1, -1).Format(time.DateOnly))
	case 2:
		start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		m.filter.StartDate = new(start.Format(time.DateOnly))
		m.filter.EndDate = new(start.AddDate(0, 1, -1).Format(time.DateOnly))
	default:
		m.filter.StartDate = nil
		m.filter.EndDate = nil
	}
}

func (m *ReceiptsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.receipts))
	for _, r := range m.receipts {
		rows = append(rows, table.Row{
			r.Date,
			r.Vendor,
			FormatAmount(r.Amount),
			r.Category,
			r.PaymentMethod,
			r.ID,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadReceiptsMsg struct {
	receipts []*receipt.Receipt
	err      error
}

func (m ReceiptsModel) loadReceiptsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		receipts, err := m.receiptService.List(ctx, m.filter)

		return loadReceiptsMsg{receipts: receipts, err: err}
	}
}

type receiptSavedMsg struct {
	id  string
	err error
}

func (m ReceiptsModel) saveCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(m.form.GetString("amount"), 64)
	params := receipt.AddParams{
		Vendor:        m.form.GetString("vendor"),
		Amount:        amount,
		Category:      m.form.GetString("category"),
		Description:   m.form.GetString("description"),
		PaymentMethod: m.form.GetString("payment_method"),
		Date:          m.form.GetString("date"),
		ImagePath:     m.form.GetString("image_path"),
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		r, err := m.receiptService.Add(ctx, params)
		if err != nil {
			return receiptSavedMsg{err: err}
		}

		return receiptSavedMsg{id: r.ID}
	}
}

type receiptDeletedMsg struct {
	id  string
	err error
}

func (m ReceiptsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.receipts) {
		return nil
	}

	id := m.receipts[idx].ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := m.receiptService.Delete(ctx, id); err != nil {
			return receiptDeletedMsg{id: id, err: err}
		}

		return receiptDeletedMsg{id: id}
	}
}
