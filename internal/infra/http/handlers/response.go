package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

type ErrorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Details []usecase.ValidationError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// statusFor maps the usecase error taxonomy onto HTTP.
func statusFor(err error) (int, string) {
	var se *usecase.ServiceError
	switch {
	case usecase.IsValidationError(err):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, usecase.ErrLeadNotFound), errors.Is(err, usecase.ErrSessionNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, usecase.ErrNoLeadSelected):
		return http.StatusConflict, "NO_LEAD_SELECTED"
	case errors.Is(err, usecase.ErrRequestInFlight):
		return http.StatusConflict, "REQUEST_IN_FLIGHT"
	case errors.As(err, &se):
		switch se.StatusCode {
		case http.StatusTooManyRequests, http.StatusPaymentRequired, http.StatusGatewayTimeout:
			return se.StatusCode, "SERVICE_ERROR"
		}
		return http.StatusBadGateway, "SERVICE_ERROR"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// messageFor returns the text the dashboard shows for err.
func messageFor(err error) string {
	var se *usecase.ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if _, code := statusFor(err); code == "INTERNAL_ERROR" {
		return "Erro interno"
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	resp := ErrorResponse{Error: code, Message: messageFor(err)}

	var many usecase.ValidationErrors
	var single usecase.ValidationError
	switch {
	case errors.As(err, &many):
		resp.Details = many
	case errors.As(err, &single):
		resp.Details = []usecase.ValidationError{single}
	}

	writeJSON(w, status, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return false
	}
	return true
}
