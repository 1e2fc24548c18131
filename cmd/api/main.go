package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rfletch/opex/internal/config"
	"github.com/rfletch/opex/internal/export"
	opexHttp "github.com/rfletch/opex/internal/http"
	exportHandler "github.com/rfletch/opex/internal/http/export"
	importHandler "github.com/rfletch/opex/internal/http/importcsv"
	receiptHandler "github.com/rfletch/opex/internal/http/receipt"
	reportHandler "github.com/rfletch/opex/internal/http/report"
	summaryHandler "github.com/rfletch/opex/internal/http/summary"
	"github.com/rfletch/opex/internal/importer"
	"github.com/rfletch/opex/internal/receipt"
	receiptStore "github.com/rfletch/opex/internal/receipt/store"
	"github.com/rfletch/opex/internal/report"
	reportStore "github.com/rfletch/opex/internal/report/store"
	"github.com/rfletch/opex/internal/summary"
)

func main() {
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

	var (
		receiptService = receipt.NewService(receiptsDB)
		reportService  = report.NewService(reportsDB, receiptService)
		summaryService = summary.NewService(receiptService)
		exportService  = export.NewService(receiptService)
		importService  = importer.NewService(receiptService)
	)

	var (
		receiptH = receiptHandler.NewHandler(receiptService)
		reportH  = reportHandler.NewHandler(reportService)
		summaryH = summaryHandler.NewHandler(summaryService)
		exportH  = exportHandler.NewHandler(exportService)
		importH  = importHandler.NewHandler(importService)
	)

	router := opexHttp.New(receiptH, reportH, summaryH, exportH, importH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "port", cfg.App.Port, "data_dir", cfg.Data.Dir)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
