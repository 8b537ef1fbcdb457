package handlers

import (
	"log/slog"
	"net/http"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

const msgResultsRequired = "Resultados da busca são obrigatórios"

type ProspectHandler struct {
	Prospector *usecase.ProspectUseCase
	Logger     *slog.Logger
}

func NewProspectHandler(p *usecase.ProspectUseCase, logger *slog.Logger) *ProspectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProspectHandler{Prospector: p, Logger: logger}
}

// Search handles POST /prospect/search
func (h *ProspectHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProspectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.Prospector.Search(r.Context(), input)
	if err != nil {
		if !usecase.IsValidationError(err) {
			h.Logger.Error("falha na busca de leads", "city", input.City, "business_type", input.BusinessType, "error", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type extractRequest struct {
	SearchResults []entity.SearchResult `json:"searchResults"`
}

// Extract handles POST /prospect/extract
func (h *ProspectHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SearchResults == nil {
		writeJSON(w, http.StatusBadRequest, usecase.ExtractOutput{Success: false, Error: msgResultsRequired})
		return
	}

	out := h.Prospector.ExtractContract(r.Context(), req.SearchResults)
	if !out.Success {
		h.Logger.Error("falha na extração de leads", "error", out.Error)
		writeJSON(w, http.StatusBadGateway, out)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
