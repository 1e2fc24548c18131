package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfletch/opex/internal/export"
	"github.com/rfletch/opex/internal/receipt"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	form    *huh.Form
	spinner spinner.Model
	err     error

	format    string
	path      string
	startDate string
	endDate   string

	exported int
	savedTo  string
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		format:        "csv",
		path:          "receipts_export.csv",
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Receipts" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m *ExportModel) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV", "csv"),
					huh.NewOption("Excel (XLSX)", "xlsx"),
				).
				Value(&m.format),

			huh.NewInput().
				Key("path").
				Title("Output File").
				Placeholder("receipts_export.csv").
				Value(&m.path),

			huh.NewInput().
				Key("start_date").
				Title("Start Date").
				Placeholder("YYYY-MM-DD, empty for all time").
				Value(&m.startDate).
				Validate(ValidDate),

			huh.NewInput().
				Key("end_date").
				Title("End Date").
				Placeholder("YYYY-MM-DD, empty for all time").
				Value(&m.endDate).
				Validate(ValidDate),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.exported = result.exported
		m.savedTo = result.path

		return m, nil
	}

	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting receipts...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%d receipts written to %s", m.exported, m.savedTo),
		),
	)
}

type exportResultMsg struct {
	exported int
	path     string
	err      error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	format := m.form.GetString("format")
	path := m.form.GetString("path")

	var filter receipt.ListFilter
	if s := m.form.GetString("start_date"); s != "" {
		filter.StartDate = &s
	}
	if e := m.form.GetString("end_date"); e != "" {
		filter.EndDate = &e
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		exportFn := m.exportService.ExportCSV
		if format == "xlsx" {
			exportFn = m.exportService.ExportXLSX
		}

		n, err := exportFn(ctx, path, filter)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{exported: n, path: path}
	}
}
