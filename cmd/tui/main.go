package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rfletch/opex/cmd/tui/internal/view"
	"github.com/rfletch/opex/internal/config"
	"github.com/rfletch/opex/internal/export"
	"github.com/rfletch/opex/internal/importer"
	"github.com/rfletch/opex/internal/receipt"
	receiptStore "github.com/rfletch/opex/internal/receipt/store"
	"github.com/rfletch/opex/internal/report"
	reportStore "github.com/rfletch/opex/internal/report/store"
	"github.com/rfletch/opex/internal/summary"
)

type model struct {
	appName string

	receiptService *receipt.Service
	reportService  *report.Service
	summaryService *summary.Service
	exportService  *export.Service
	importService  *importer.Service

	currentView View

	receiptsView view.ReceiptsModel
	reportsView  view.ReportsModel
	summaryView  view.SummaryModel
	exportView   view.ExportModel
	importView   view.ImportModel
}

type View int

const (
	ViewMenu       View = 0
	ViewAddReceipt View = 1
	ViewReceipts   View = 2
	ViewReports    View = 3
	ViewSummary    View = 4
	ViewExport     View = 5
	ViewImport     View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	receiptsDB, err := receiptStore.Open(cfg.Data.Dir)
	if err != nil {
		slog.Error("failed to open receipt store", "dir", cfg.Data.Dir, "error", err)
		os.Exit(1)
	}

	reportsDB, err := reportStore.Open(cfg.Data.Dir)
	if err != nil {
		slog.Error("failed to open report store", "dir", cfg.Data.Dir, "error", err)
		os.Exit(1)
	}

	receiptSvc := receipt.NewService(receiptsDB)
	reportSvc := report.NewService(reportsDB, receiptSvc)
	summarySvc := summary.NewService(receiptSvc)
	exportSvc := export.NewService(receiptSvc)
	importSvc := importer.NewService(receiptSvc)

	return model{
		appName:        cfg.App.Name,
		receiptService: receiptSvc,
		reportService:  reportSvc,
		summaryService: summarySvc,
		exportService:  exportSvc,
		importService:  importSvc,
		currentView:    ViewMenu,
		receiptsView:   view.NewReceiptsModel(receiptSvc),
		reportsView:    view.NewReportsModel(reportSvc),
		summaryView:    view.NewSummaryModel(summarySvc),
		exportView:     view.NewExportModel(exportSvc),
		importView:     view.NewImportModel(importSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAddReceipt
				m.receiptsView = view.NewAddReceiptModel(m.receiptService)

				return m, m.receiptsView.Init()
			case "2":
				m.currentView = ViewReceipts
				m.receiptsView = view.NewReceiptsModel(m.receiptService)

				return m, m.receiptsView.Init()
			case "3":
				m.currentView = ViewReports
				m.reportsView = view.NewReportsModel(m.reportService)

				return m, m.reportsView.Init()
			case "4":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.summaryService)

				return m, m.summaryView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			case "6":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewAddReceipt, ViewReceipts:
		var newModel tea.Model
		newModel, cmd = m.receiptsView.Update(msg)
		m.receiptsView = newModel.(view.ReceiptsModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportsModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Add Receipt\n" +
				"2. Browse Receipts\n" +
				"3. Expense Reports\n" +
				"4. Spending Summary\n" +
				"5. Export Receipts\n" +
				"6. Import Receipts from CSV\n\n" +
				"q. Quit",
		)
	case ViewAddReceipt, ViewReceipts:
		return m.receiptsView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
