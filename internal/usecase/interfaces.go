package usecase

import (
	"context"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

// CompletionClient sends one system + user prompt pair to the text-completion
// service and returns the completion text verbatim.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

type SearchOptions struct {
	Limit   int    `json:"limit"`
	Lang    string `json:"lang,omitempty"`
	Country string `json:"country,omitempty"`
}

type SearchResponse struct {
	Success bool                  `json:"success"`
	Data    []entity.SearchResult `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

type SearchClient interface {
	Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
}

// EventPublisherInterface announces lead changes to the rest of the platform.
type EventPublisherInterface interface {
	PublishLeadCreated(ctx context.Context, lead entity.Lead) error
}

// MessageDelivery delivers operator chat messages to the lead's phone.
type MessageDelivery interface {
	SendText(ctx context.Context, phone, text string) error
}
