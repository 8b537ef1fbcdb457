package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

const DefaultBaseURL = "https://api.firecrawl.dev"

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(apiKey, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Search calls POST /v1/search. A non-2xx reply becomes a *usecase.ServiceError;
// a 2xx reply with success=false is returned as is.
func (c *Client) Search(ctx context.Context, query string, opts usecase.SearchOptions) (*usecase.SearchResponse, error) {
	if c.apiKey == "" {
		c.logger.Warn("firecrawl: FIRECRAWL_API_KEY não configurado")
		return nil, &usecase.ServiceError{Service: "search", Message: "Firecrawl não configurado"}
	}

	payload, err := json.Marshal(searchRequest{
		Query:   query,
		Limit:   opts.Limit,
		Lang:    opts.Lang,
		Country: opts.Country,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao montar busca: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result searchResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Error
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		}
		c.logger.Error("firecrawl: busca falhou", "status", resp.StatusCode, "body", string(body))
		return nil, &usecase.ServiceError{Service: "search", StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, &usecase.ServiceError{Service: "search", StatusCode: resp.StatusCode, Message: "resposta inválida do Firecrawl", Err: decodeErr}
	}

	out := &usecase.SearchResponse{
		Success: result.Success,
		Error:   result.Error,
		Data:    make([]entity.SearchResult, 0, len(result.Data)),
	}
	for _, r := range result.Data {
		out.Data = append(out.Data, entity.SearchResult(r))
	}

	c.logger.Info("firecrawl: busca concluída", "query", query, "results", len(out.Data))
	return out, nil
}
