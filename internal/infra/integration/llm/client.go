package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

const (
	DefaultModel   = "google/gemini-2.5-flash"
	DefaultBaseURL = "https://ai.gateway.lovable.dev/v1"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Client talks to any OpenAI-compatible chat completions endpoint.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.BaseURL

	return &Client{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Complete sends the system prompt (when set) and the user prompt and returns
// the first choice verbatim. HTTP failures come back as *usecase.ServiceError
// carrying the upstream status.
func (c *Client) Complete(ctx context.Context, prompt, systemPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("falha na chamada ao modelo", "model", c.model, "duration", duration, "error", err)
		return "", toServiceError(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	c.logger.Debug("chamada ao modelo concluída", "model", c.model, "tokens", resp.Usage.TotalTokens, "duration", duration)
	return resp.Choices[0].Message.Content, nil
}

func toServiceError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &usecase.ServiceError{
			Service:    "completion",
			StatusCode: apiErr.HTTPStatusCode,
			Err:        err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &usecase.ServiceError{
			Service:    "completion",
			StatusCode: reqErr.HTTPStatusCode,
			Err:        err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	return &usecase.ServiceError{Service: "completion", Err: err}
}
