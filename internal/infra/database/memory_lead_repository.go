package database

import (
	"context"
	"sync"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

// MemoryLeadRepository is the lead list used when no DATABASE_URL is set.
// New leads go to the front.
type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads []entity.Lead
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{leads: []entity.Lead{}}
}

func (r *MemoryLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Lead{}, r.leads...), nil
}

func (r *MemoryLeadRepository) FindByID(ctx context.Context, id int) (*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.leads {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (r *MemoryLeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.ID == lead.ID {
			return entity.ErrLeadIDTaken
		}
	}
	r.leads = append([]entity.Lead{*lead}, r.leads...)
	return nil
}

func (r *MemoryLeadRepository) Ping(ctx context.Context) error { return nil }
