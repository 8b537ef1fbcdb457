package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/infra/metrics"
)

// maxInsertAttempts bounds the retries when another writer took the id first.
const maxInsertAttempts = 3

type ManageLeadsUseCase struct {
	Repo           entity.LeadRepositoryInterface
	Events         EventPublisherInterface
	CardThresholds entity.Thresholds
	Logger         *slog.Logger
	Now            func() time.Time

	mu sync.Mutex
}

func NewManageLeadsUseCase(
	repo entity.LeadRepositoryInterface,
	events EventPublisherInterface,
	cardThresholds entity.Thresholds,
	logger *slog.Logger,
) *ManageLeadsUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManageLeadsUseCase{
		Repo:           repo,
		Events:         events,
		CardThresholds: cardThresholds,
		Logger:         logger,
		Now:            time.Now,
	}
}

// NextID returns max(existing ids, 0) + 1.
func NextID(leads []entity.Lead) int {
	highest := 0
	for _, l := range leads {
		if l.ID > highest {
			highest = l.ID
		}
	}
	return highest + 1
}

// Add validates the form input and puts the new lead at the top of the list.
func (uc *ManageLeadsUseCase) Add(ctx context.Context, input LeadInput) (*entity.Lead, error) {
	input.normalize()
	if err := ValidateLeadInput(input); err != nil {
		return nil, err
	}
	return uc.insert(ctx, input.toLead())
}

// AddCandidate stores a promoted prospecting candidate as a lead.
func (uc *ManageLeadsUseCase) AddCandidate(ctx context.Context, c entity.Candidate, t entity.Thresholds) (*entity.Lead, error) {
	c.Normalize()
	if c.Name == "" {
		return nil, ValidationErrors{{Field: "name", Message: "Candidato sem nome"}}
	}
	return uc.insert(ctx, CandidateToLead(c, t))
}

func (uc *ManageLeadsUseCase) insert(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var err error
	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		var leads []entity.Lead
		leads, err = uc.Repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar leads: %w", err)
		}

		lead.ID = NextID(leads)
		lead.CreatedAt = uc.Now()

		err = uc.Repo.Insert(ctx, lead)
		if err == nil {
			break
		}
		if !errors.Is(err, entity.ErrLeadIDTaken) {
			return nil, fmt.Errorf("falha ao salvar lead: %w", err)
		}
		uc.Logger.Warn("id de lead disputado, tentando novamente", "id", lead.ID, "attempt", attempt+1)
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao salvar lead: %w", err)
	}

	metrics.RecordLeadAdded(string(lead.Source))
	uc.Logger.Info("lead adicionado", "id", lead.ID, "status", lead.Status, "source", lead.Source)

	if uc.Events != nil {
		if err := uc.Events.PublishLeadCreated(ctx, *lead); err != nil {
			// O lead já está salvo; a sincronização externa fica para depois.
			uc.Logger.Error("falha ao publicar evento de lead", "id", lead.ID, "error", err)
			metrics.RecordIntegrationError("rabbitmq")
		}
	}

	return lead, nil
}

// List filters by status and then sorts, the way the dashboard list does.
func (uc *ManageLeadsUseCase) List(ctx context.Context, input ListLeadsInput) ([]LeadView, error) {
	key, err := ParseSortKey(input.Sort)
	if err != nil {
		return nil, err
	}

	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar leads: %w", err)
	}

	filtered, err := FilterByStatus(leads, input.Status)
	if err != nil {
		return nil, err
	}

	sorted := SortLeads(filtered, key)
	views := make([]LeadView, 0, len(sorted))
	for _, l := range sorted {
		views = append(views, LeadView{Lead: l, Visual: entity.CardVisual(l.Score, uc.CardThresholds)})
	}
	return views, nil
}

func (uc *ManageLeadsUseCase) Get(ctx context.Context, id int) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("falha ao buscar lead %d: %w", id, err)
	}
	return lead, nil
}

func (uc *ManageLeadsUseCase) Stats(ctx context.Context) (*LeadStats, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar leads: %w", err)
	}

	stats := &LeadStats{TotalLeads: len(leads)}
	if len(leads) == 0 {
		return stats, nil
	}

	sum := 0
	for _, l := range leads {
		sum += l.Score
		if l.Status == entity.StatusHot {
			stats.HotLeads++
		}
	}
	stats.AvgScore = int(math.Round(float64(sum) / float64(len(leads))))
	return stats, nil
}

var demoLeads = []entity.Lead{
	{
		Name: "João Silva", Phone: "85 99999-1234", Score: 85, Status: entity.StatusHot,
		LastContact: "2 horas atrás", Interest: "Kit Limpeza Profissional",
		History: "Perguntou sobre produtos para limpeza pesada e desengordurantes",
	},
	{
		Name: "Maria Santos", Phone: "85 98888-5678", Score: 65, Status: entity.StatusWarm,
		LastContact: "1 dia atrás", Interest: "Produtos Eco-Friendly",
		History: "Busca produtos sustentáveis para sua empresa de limpeza",
	},
	{
		Name: "Pedro Costa", Phone: "85 97777-9012", Score: 95, Status: entity.StatusHot,
		LastContact: "30 min atrás", Interest: "Equipamentos de Higienização",
		History: "Muito interessado em lavadoras e aspiradores industriais",
	},
	{
		Name: "Ana Oliveira", Phone: "85 96666-3456", Score: 45, Status: entity.StatusCold,
		LastContact: "3 dias atrás", Interest: "Desinfetantes Hospitalar",
		History: "Viu catálogo mas não respondeu sobre quantidades",
	},
}

// SeedDemoLeads fills an empty lead list with the demo leads. It returns how
// many were inserted (0 when the list already had data).
func (uc *ManageLeadsUseCase) SeedDemoLeads(ctx context.Context) (int, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("falha ao carregar leads: %w", err)
	}
	if len(leads) > 0 {
		return 0, nil
	}

	// Inserts prepend, so walk backwards to keep the demo order on screen.
	for i := len(demoLeads) - 1; i >= 0; i-- {
		l := demoLeads[i]
		l.Source = entity.SourceSeed
		if _, err := uc.insert(ctx, &l); err != nil {
			return 0, err
		}
	}
	return len(demoLeads), nil
}
