package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rfletch/opex/internal/export"
	"github.com/rfletch/opex/internal/receipt"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.csv)
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	filter := receipt.ListFilter{}

	if s := r.URL.Query().Get("start_date"); s != "" {
		filter.StartDate = new(s)
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		filter.EndDate = new(s)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"receipts_%s.csv\"", time.Now().Format("20060102")))

	if _, err := h.svc.WriteCSV(r.Context(), w, filter); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("failed to stream csv export", "error", err)
	}
}
