package handlers

import (
	"net/http"

	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

type AIHandler struct {
	AI *usecase.Orchestrator
}

func NewAIHandler(ai *usecase.Orchestrator) *AIHandler {
	return &AIHandler{AI: ai}
}

// Complete handles POST /ai/analysis. The body is {content} on success and
// {content:"", error} otherwise; the status reflects the failure kind.
func (h *AIHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req usecase.AIRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp := h.AI.Run(r.Context(), req)
	if resp.Failed() {
		status := http.StatusBadGateway
		if resp.Err != nil {
			status, _ = statusFor(resp.Err)
		}
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
