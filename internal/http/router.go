package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rfletch/opex/internal/http/export"
	"github.com/rfletch/opex/internal/http/importcsv"
	"github.com/rfletch/opex/internal/http/receipt"
	"github.com/rfletch/opex/internal/http/report"
	"github.com/rfletch/opex/internal/http/summary"
)

func New(
	receiptsV1 *receipt.Handler,
	reportsV1 *report.Handler,
	summaryV1 *summary.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/receipts", func(r chi.Router) {
			receiptsV1.Routes(r)
		})

		r.Route("/reports", func(r chi.Router) {
			reportsV1.Routes(r)
		})

		r.Route("/summary", summaryV1.Routes)
		r.Route("/export", exportV1.Routes)
		r.Route("/import", importV1.Routes)
	})

	return router
}
