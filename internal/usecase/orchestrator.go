package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/infra/metrics"
)

type AIKind string

const (
	AIAnalysis AIKind = "analysis"
	AIChat     AIKind = "chat"
	AISuggest  AIKind = "suggest"
)

const (
	msgEmptyCompletion = "Não foi possível gerar uma resposta."
	msgRateLimited     = "Limite de requisições excedido. Tente novamente em alguns segundos."
	msgNoCredits       = "Créditos insuficientes. Adicione créditos ao seu workspace."
	msgAIUnavailable   = "Erro ao processar solicitação"
	msgAITimeout       = "A IA demorou demais para responder. Tente novamente."
)

// AIRequest is the completion contract: a lead, an operation kind and, for
// chat and suggest, the message (plus the visible transcript for chat).
type AIRequest struct {
	Lead       *entity.Lead         `json:"lead"`
	Type       AIKind               `json:"type"`
	Message    string               `json:"message,omitempty"`
	Transcript []entity.ChatMessage `json:"transcript,omitempty"`
}

// AIResponse is {content} on success or {content:"", error} on failure.
// Err keeps the typed cause for the HTTP layer and is never serialized.
type AIResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

func (r AIResponse) Failed() bool { return r.Error != "" }

type Orchestrator struct {
	Client  CompletionClient
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewOrchestrator(client CompletionClient, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{Client: client, Timeout: timeout, Logger: logger}
}

func (o *Orchestrator) Analyze(ctx context.Context, lead *entity.Lead) AIResponse {
	return o.Run(ctx, AIRequest{Lead: lead, Type: AIAnalysis})
}

func (o *Orchestrator) Chat(ctx context.Context, lead *entity.Lead, message string, transcript []entity.ChatMessage) AIResponse {
	return o.Run(ctx, AIRequest{Lead: lead, Type: AIChat, Message: message, Transcript: transcript})
}

func (o *Orchestrator) Suggest(ctx context.Context, lead *entity.Lead, lastMessage string) AIResponse {
	return o.Run(ctx, AIRequest{Lead: lead, Type: AISuggest, Message: lastMessage})
}

// Run validates the request, calls the completion service once and converts
// every failure, panics included, into the error field.
func (o *Orchestrator) Run(ctx context.Context, req AIRequest) (resp AIResponse) {
	defer func() {
		if r := recover(); r != nil {
			o.Logger.Error("panic na chamada de IA", "type", req.Type, "panic", r)
			resp = failure(&ServiceError{Service: "completion", Message: msgAIUnavailable, Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	if err := validateAIRequest(req); err != nil {
		metrics.RecordAIRequest(string(req.Type), "invalid")
		return failure(err)
	}

	system, prompt := o.buildPrompts(req)

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := o.Client.Complete(ctx, prompt, system)
	if err != nil {
		o.Logger.Error("falha na chamada de IA", "type", req.Type, "lead_id", req.Lead.ID, "duration", time.Since(start), "error", err)
		metrics.RecordAIRequest(string(req.Type), "error")
		return failure(classifyCompletionError(err))
	}

	content = strings.TrimSpace(content)
	if content == "" {
		content = msgEmptyCompletion
	}

	o.Logger.Info("resposta de IA gerada", "type", req.Type, "lead_id", req.Lead.ID, "duration", time.Since(start))
	metrics.RecordAIRequest(string(req.Type), "ok")
	return AIResponse{Content: content}
}

func (o *Orchestrator) buildPrompts(req AIRequest) (system, prompt string) {
	switch req.Type {
	case AIChat:
		return chatSystemPrompt, chatPrompt(*req.Lead, req.Message, req.Transcript)
	case AISuggest:
		return suggestSystemPrompt, suggestPrompt(*req.Lead, req.Message)
	default:
		return analysisSystemPrompt, analysisPrompt(*req.Lead)
	}
}

func validateAIRequest(req AIRequest) error {
	if req.Lead.IsZero() {
		return ValidationErrors{{Field: "lead", Message: "Lead é obrigatório"}}
	}

	switch req.Type {
	case AIAnalysis:
		return nil
	case AIChat, AISuggest:
		if strings.TrimSpace(req.Message) == "" {
			return ValidationErrors{{Field: "message", Message: "Mensagem é obrigatória"}}
		}
		return nil
	}
	return ValidationErrors{{Field: "type", Message: "Tipo de operação inválido"}}
}

// classifyCompletionError gives rate limits, exhausted credits and timeouts
// their own operator-facing messages.
func classifyCompletionError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusTooManyRequests:
			return &ServiceError{Service: se.Service, StatusCode: se.StatusCode, Message: msgRateLimited, Err: se}
		case http.StatusPaymentRequired:
			return &ServiceError{Service: se.Service, StatusCode: se.StatusCode, Message: msgNoCredits, Err: se}
		}
		return &ServiceError{Service: se.Service, StatusCode: se.StatusCode, Message: msgAIUnavailable, Err: se}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Service: "completion", StatusCode: http.StatusGatewayTimeout, Message: msgAITimeout, Err: err}
	}
	return &ServiceError{Service: "completion", Message: msgAIUnavailable, Err: err}
}

func failure(err error) AIResponse {
	msg := err.Error()
	var se *ServiceError
	if errors.As(err, &se) {
		msg = se.Message
	}
	return AIResponse{Content: "", Error: msg, Err: err}
}
