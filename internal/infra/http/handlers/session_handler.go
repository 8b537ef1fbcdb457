package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

type SessionHandler struct {
	Sessions *usecase.SessionUseCase
	Logger   *slog.Logger
}

func NewSessionHandler(sessions *usecase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{Sessions: sessions, Logger: logger}
}

type autoResponseRequest struct {
	Enabled *bool `json:"enabled"`
}

type selectLeadRequest struct {
	LeadID int `json:"leadId"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// AnalysisResponse is the session plus the raw completion outcome.
type AnalysisResponse struct {
	Session  usecase.SessionView `json:"session"`
	Analysis usecase.AIResponse  `json:"analysis"`
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	view := h.Sessions.Create()
	h.Logger.Info("sessão criada", "session_id", view.ID)
	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetAutoResponse handles PUT /sessions/{id}/auto-response
func (h *SessionHandler) SetAutoResponse(w http.ResponseWriter, r *http.Request) {
	var req autoResponseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		writeError(w, usecase.ValidationErrors{{Field: "enabled", Message: "Campo enabled é obrigatório"}})
		return
	}

	view, err := h.Sessions.SetAutoResponse(chi.URLParam(r, "id"), *req.Enabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SelectLead handles POST /sessions/{id}/select
func (h *SessionHandler) SelectLead(w http.ResponseWriter, r *http.Request) {
	var req selectLeadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.Sessions.SelectLead(r.Context(), chi.URLParam(r, "id"), req.LeadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Analyze handles POST /sessions/{id}/analysis
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, resp, err := h.Sessions.Analyze(r.Context(), id)
	if err != nil {
		if resp.Failed() {
			h.Logger.Error("falha na análise do lead", "session_id", id, "error", err)
			status, _ := statusFor(err)
			writeJSON(w, status, AnalysisResponse{Session: view, Analysis: resp})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalysisResponse{Session: view, Analysis: resp})
}

// SendMessage handles POST /sessions/{id}/messages
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	out, err := h.Sessions.SendMessage(r.Context(), id, req.Text)
	if err != nil {
		if usecase.IsServiceError(err) {
			h.Logger.Error("falha na resposta automática", "session_id", id, "error", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Suggest handles POST /sessions/{id}/suggest
func (h *SessionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resp, err := h.Sessions.SuggestResponse(r.Context(), id)
	if err != nil {
		if resp.Failed() {
			h.Logger.Error("falha na sugestão de resposta", "session_id", id, "error", err)
			status, _ := statusFor(err)
			writeJSON(w, status, resp)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Prospect handles POST /sessions/{id}/prospect
func (h *SessionHandler) Prospect(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProspectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	id := chi.URLParam(r, "id")
	out, err := h.Sessions.Prospect(r.Context(), id, input)
	if err != nil {
		if usecase.IsServiceError(err) {
			h.Logger.Error("falha na prospecção", "session_id", id, "error", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Promote handles POST /sessions/{id}/candidates/promote
func (h *SessionHandler) Promote(w http.ResponseWriter, r *http.Request) {
	var c entity.Candidate
	if !decodeJSON(w, r, &c) {
		return
	}

	out, err := h.Sessions.PromoteCandidate(r.Context(), chi.URLParam(r, "id"), c)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if out.AlreadyAdded {
		status = http.StatusOK
	}
	writeJSON(w, status, out)
}
