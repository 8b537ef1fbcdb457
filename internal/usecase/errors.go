package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

var (
	ErrLeadNotFound    = entity.ErrLeadNotFound
	ErrSessionNotFound = errors.New("sessão não encontrada")
	ErrNoLeadSelected  = errors.New("nenhum lead selecionado")
	ErrRequestInFlight = errors.New("já existe uma requisição em andamento para esta ação")
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors carries every problem found in one input. Error() keeps
// only the first message, which is what the dashboard shows.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "dados inválidos"
	}
	return e[0].Message
}

func IsValidationError(err error) bool {
	var single ValidationError
	var many ValidationErrors
	return errors.As(err, &many) || errors.As(err, &single)
}

// ServiceError means an external collaborator (search, completion, extraction)
// failed or could not be reached.
type ServiceError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// ParseError means the model answered with something that holds no JSON object.
// It never reaches the caller: extraction degrades to an empty list.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	msg := "resposta da IA sem JSON válido"
	if e.Snippet != "" {
		msg += fmt.Sprintf(" (%q)", truncate(e.Snippet, 80))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}
