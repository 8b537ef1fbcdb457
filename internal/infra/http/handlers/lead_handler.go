package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

type LeadHandler struct {
	Leads  *usecase.ManageLeadsUseCase
	Logger *slog.Logger
}

func NewLeadHandler(leads *usecase.ManageLeadsUseCase, logger *slog.Logger) *LeadHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadHandler{Leads: leads, Logger: logger}
}

// List handles GET /leads?status=&sort=
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	leads, err := h.Leads.List(r.Context(), usecase.ListLeadsInput{
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
	})
	if err != nil {
		h.logFailure("listar leads", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// Create handles POST /leads
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Leads.Add(r.Context(), input)
	if err != nil {
		h.logFailure("criar lead", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// Stats handles GET /leads/stats
func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Leads.Stats(r.Context())
	if err != nil {
		h.logFailure("calcular estatísticas", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Get handles GET /leads/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "ID inválido")
		return
	}

	lead, err := h.Leads.Get(r.Context(), id)
	if err != nil {
		h.logFailure("buscar lead", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) logFailure(action string, err error) {
	if status, _ := statusFor(err); status >= http.StatusInternalServerError {
		h.Logger.Error("falha ao "+action, "error", err)
	}
}
