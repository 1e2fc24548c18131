package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfletch/opex/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/submit", h.transition(h.svc.Submit))
	r.Post("/{id}/approve", h.transition(h.svc.Approve))
	r.Post("/{id}/reject", h.transition(h.svc.Reject))
}

type createReportRequest struct {
	Title        string   `json:"title"`
	EmployeeName string   `json:"employee_name"`
	Department   string   `json:"department"`
	PeriodStart  string   `json:"period_start"`
	PeriodEnd    string   `json:"period_end"`
	ReceiptIDs   []string `json:"receipt_ids"`
}

type createReportResponse struct {
	Report            *report.ExpenseReport `json:"report"`
	MissingReceiptIDs []string              `json:"missing_receipt_ids,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Create(r.Context(), report.CreateParams{
		Title:        req.Title,
		EmployeeName: req.EmployeeName,
		Department:   req.Department,
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		ReceiptIDs:   req.ReceiptIDs,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(createReportResponse{
		Report:            result.Report,
		MissingReceiptIDs: result.MissingReceiptIDs,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := report.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(report.Status(s))
	}

	reports, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(reports); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, report.ErrNotFound) {
			http.Error(w, "expense report not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rep); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// transition wraps the three status operations, which share an
// identical request shape.
func (h *Handler) transition(op func(ctx context.Context, id string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op(r.Context(), chi.URLParam(r, "id")); err != nil {
			if errors.Is(err, report.ErrNotFound) {
				http.Error(w, "expense report not found", http.StatusNotFound)
				return
			}

			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
