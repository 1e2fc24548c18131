package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfletch/opex/internal/importer"
)

type importState int

const (
	importStateForm importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state   importState
	form    *huh.Form
	spinner spinner.Model
	err     error

	path     string
	imported int
}

func NewImportModel(svc *importer.Service) ImportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ImportModel{
		importService: svc,
		spinner:       s,
	}
}

func (m ImportModel) Title() string { return "Import Receipts" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateResult:
		return "Esc: back to menu"
	case importStateImporting:
		return "Importing..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m *ImportModel) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV File").
				Placeholder("./receipts.csv").
				Value(&m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("file not found")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(importResultMsg); ok {
		m.state = importStateResult
		m.err = result.err
		m.imported = result.imported

		return m, nil
	}

	switch m.state {
	case importStateForm:
		return m.updateForm(msg)
	case importStateImporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case importStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ImportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.state = importStateImporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runImportCmd())
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateForm:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case importStateImporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Importing receipts...", m.spinner.View()),
		)

	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		body := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err))
		if m.imported > 0 {
			body += fmt.Sprintf("\n\n%d receipts were imported before the error", m.imported)
		}

		return lipgloss.NewStyle().Padding(1).Render(body)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Import Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%d receipts imported", m.imported),
		),
	)
}

type importResultMsg struct {
	imported int
	err      error
}

func (m ImportModel) runImportCmd() tea.Cmd {
	path := m.form.GetString("path")

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("opening %s: %w", path, err)}
		}
		defer f.Close()

		ctx, cancel := OpCtx()
		defer cancel()

		receipts, err := m.importService.Import(ctx, f)

		return importResultMsg{imported: len(receipts), err: err}
	}
}
