package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

// fakeLeadRepository keeps leads newest first, like the real repositories.
type fakeLeadRepository struct {
	mu        sync.Mutex
	leads     []entity.Lead
	insertErr []error
	listErr   error
}

func newFakeLeadRepository(leads ...entity.Lead) *fakeLeadRepository {
	return &fakeLeadRepository{leads: append([]entity.Lead(nil), leads...)}
}

func (r *fakeLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]entity.Lead(nil), r.leads...), nil
}

func (r *fakeLeadRepository) FindByID(ctx context.Context, id int) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (r *fakeLeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.insertErr) > 0 {
		err := r.insertErr[0]
		r.insertErr = r.insertErr[1:]
		if err != nil {
			return err
		}
	}
	r.leads = append([]entity.Lead{*lead}, r.leads...)
	return nil
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadCreated(ctx context.Context, lead entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// MockCompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt, systemPrompt string) (string, error) {
	args := m.Called(ctx, prompt, systemPrompt)
	return args.String(0), args.Error(1)
}

// MockSearchClient
type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query string, opts usecase.SearchOptions) (*usecase.SearchResponse, error) {
	args := m.Called(ctx, query, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SearchResponse), args.Error(1)
}

// MockMessageDelivery
type MockMessageDelivery struct {
	mock.Mock
}

func (m *MockMessageDelivery) SendText(ctx context.Context, phone, text string) error {
	args := m.Called(ctx, phone, text)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
