package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/infra/metrics"
)

const (
	searchLimit     = 15
	searchLang      = "pt"
	searchCountry   = "br"
	msgNoResults    = "Não foram encontrados resultados para essa busca."
	msgSearchFailed = "Erro ao buscar leads"
	msgExtractFail  = "Erro ao extrair leads"
)

// BuildQuery is the web search query for one prospecting run.
func BuildQuery(city, businessType string) string {
	return fmt.Sprintf("%s em %s telefone contato", businessType, city)
}

type ProspectUseCase struct {
	Searcher      SearchClient
	Completion    CompletionClient
	SearchTimeout time.Duration
	AITimeout     time.Duration
	Logger        *slog.Logger
}

func NewProspectUseCase(
	searcher SearchClient,
	completion CompletionClient,
	searchTimeout, aiTimeout time.Duration,
	logger *slog.Logger,
) *ProspectUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProspectUseCase{
		Searcher:      searcher,
		Completion:    completion,
		SearchTimeout: searchTimeout,
		AITimeout:     aiTimeout,
		Logger:        logger,
	}
}

// Search validates the input and queries the search service. An empty result
// set is not an error.
func (uc *ProspectUseCase) Search(ctx context.Context, input ProspectInput) (*SearchOutput, error) {
	input.normalize()
	if err := ValidateProspectInput(input); err != nil {
		metrics.RecordProspectSearch("invalid")
		return nil, err
	}

	query := BuildQuery(input.City, input.BusinessType)
	out := &SearchOutput{Query: query, Results: []entity.SearchResult{}}

	if uc.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.SearchTimeout)
		defer cancel()
	}

	uc.Logger.Info("buscando leads", "query", query)
	resp, err := uc.Searcher.Search(ctx, query, SearchOptions{Limit: searchLimit, Lang: searchLang, Country: searchCountry})
	if err != nil {
		metrics.RecordProspectSearch("error")
		return nil, asServiceError("search", msgSearchFailed, err)
	}
	if !resp.Success {
		metrics.RecordProspectSearch("error")
		msg := resp.Error
		if msg == "" {
			msg = msgSearchFailed
		}
		return nil, &ServiceError{Service: "search", Message: msg}
	}

	if len(resp.Data) == 0 {
		metrics.RecordProspectSearch("empty")
		out.NoResults = true
		out.Message = msgNoResults
		return out, nil
	}

	metrics.RecordProspectSearch("ok")
	out.Results = resp.Data
	uc.Logger.Info("busca concluída", "query", query, "results", len(resp.Data))
	return out, nil
}

// Extract asks the model for candidates found in the search results. A reply
// without usable JSON yields an empty list.
func (uc *ProspectUseCase) Extract(ctx context.Context, results []entity.SearchResult) ([]entity.Candidate, error) {
	if len(results) == 0 {
		return []entity.Candidate{}, nil
	}

	prompt, err := extractionPrompt(results)
	if err != nil {
		return nil, err
	}

	if uc.AITimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.AITimeout)
		defer cancel()
	}

	content, err := uc.Completion.Complete(ctx, prompt, "")
	if err != nil {
		metrics.RecordAIRequest("extraction", "error")
		return nil, asServiceError("completion", msgExtractFail, err)
	}
	metrics.RecordAIRequest("extraction", "ok")

	candidates, err := ParseCandidates(content)
	if err != nil {
		uc.Logger.Warn("resposta de extração sem JSON, retornando lista vazia", "error", err)
		return []entity.Candidate{}, nil
	}

	metrics.RecordCandidatesExtracted(len(candidates))
	uc.Logger.Info("leads extraídos", "count", len(candidates))
	return candidates, nil
}

// ExtractContract is Extract behind the {success, leads?, error?} contract.
func (uc *ProspectUseCase) ExtractContract(ctx context.Context, results []entity.SearchResult) ExtractOutput {
	candidates, err := uc.Extract(ctx, results)
	if err != nil {
		msg := err.Error()
		var se *ServiceError
		if errors.As(err, &se) {
			msg = se.Message
		}
		return ExtractOutput{Success: false, Error: msg}
	}
	return ExtractOutput{Success: true, Leads: candidates}
}

// Run is the full pipeline: search, then extraction when there are results.
func (uc *ProspectUseCase) Run(ctx context.Context, input ProspectInput) (*ProspectOutput, error) {
	search, err := uc.Search(ctx, input)
	if err != nil {
		return nil, err
	}

	out := &ProspectOutput{
		Query:      search.Query,
		Searched:   len(search.Results),
		Candidates: []entity.Candidate{},
		NoResults:  search.NoResults,
		Message:    search.Message,
	}
	if search.NoResults {
		return out, nil
	}

	candidates, err := uc.Extract(ctx, search.Results)
	if err != nil {
		return nil, err
	}
	out.Candidates = candidates
	return out, nil
}

func asServiceError(service, message string, err error) error {
	var se *ServiceError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusTooManyRequests:
			return &ServiceError{Service: se.Service, StatusCode: se.StatusCode, Message: msgRateLimited, Err: se}
		case http.StatusPaymentRequired:
			return &ServiceError{Service: se.Service, StatusCode: se.StatusCode, Message: msgNoCredits, Err: se}
		}
		return se
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Service: service, StatusCode: http.StatusGatewayTimeout, Message: message, Err: err}
	}
	return &ServiceError{Service: service, Message: message, Err: err}
}
