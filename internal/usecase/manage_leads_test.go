package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

func validLeadInput() usecase.LeadInput {
	return usecase.LeadInput{
		Name:     "Carlos Lima",
		Phone:    "(85) 99999-0000",
		Interest: "Desengordurantes",
		Status:   "hot",
	}
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, usecase.NextID(nil))
	assert.Equal(t, 5, usecase.NextID([]entity.Lead{{ID: 1}, {ID: 3}, {ID: 4}}))
	assert.Equal(t, 8, usecase.NextID([]entity.Lead{{ID: 7}, {ID: 2}}))
}

func TestAddLeadAssignsNextIDAndPrepends(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLeadRepository(
		entity.Lead{ID: 4, Name: "D"},
		entity.Lead{ID: 3, Name: "C"},
		entity.Lead{ID: 1, Name: "A"},
	)
	events := new(MockEventPublisher)
	events.On("PublishLeadCreated", mock.Anything, mock.MatchedBy(func(l entity.Lead) bool { return l.ID == 5 })).Return(nil)

	uc := usecase.NewManageLeadsUseCase(repo, events, entity.DefaultCardThresholds, nil)

	lead, err := uc.Add(ctx, validLeadInput())
	require.NoError(t, err)

	assert.Equal(t, 5, lead.ID)
	assert.Equal(t, entity.StatusHot, lead.Status)
	assert.Equal(t, 85, lead.Score)
	assert.Equal(t, "Agora", lead.LastContact)
	assert.Equal(t, "Lead criado manualmente", lead.History)
	assert.Equal(t, entity.SourceManual, lead.Source)

	all, _ := repo.List(ctx)
	require.Len(t, all, 4)
	assert.Equal(t, 5, all[0].ID)
	events.AssertExpectations(t)
}

func TestAddLeadKeepsExplicitScoreAndNotes(t *testing.T) {
	uc := usecase.NewManageLeadsUseCase(newFakeLeadRepository(), nil, entity.DefaultCardThresholds, nil)

	in := validLeadInput()
	in.Status = "frio"
	in.Score = intPtr(90)
	in.Notes = "  Pediu catálogo  "
	in.LastContact = "2 horas atrás"

	lead, err := uc.Add(context.Background(), in)
	require.NoError(t, err)

	// Status e score não são reconciliados.
	assert.Equal(t, entity.StatusCold, lead.Status)
	assert.Equal(t, 90, lead.Score)
	assert.Equal(t, "Pediu catálogo", lead.History)
	assert.Equal(t, "2 horas atrás", lead.LastContact)
	assert.Equal(t, 1, lead.ID)
}

func TestAddLeadValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*usecase.LeadInput)
		message string
	}{
		{"nome curto", func(in *usecase.LeadInput) { in.Name = " A " }, "Nome deve ter pelo menos 2 caracteres"},
		{"telefone curto", func(in *usecase.LeadInput) { in.Phone = "1234" }, "Telefone deve ter pelo menos 10 dígitos"},
		{"telefone com letras", func(in *usecase.LeadInput) { in.Phone = "85 9999-abcd" }, "Telefone deve conter apenas números, espaços e caracteres válidos"},
		{"interesse curto", func(in *usecase.LeadInput) { in.Interest = "ab" }, "Interesse deve ter pelo menos 3 caracteres"},
		{"sem status", func(in *usecase.LeadInput) { in.Status = "" }, "Selecione o nível de interesse"},
		{"status desconhecido", func(in *usecase.LeadInput) { in.Status = "fervendo" }, "Selecione o nível de interesse"},
		{"score fora da faixa", func(in *usecase.LeadInput) { in.Score = intPtr(101) }, "Score deve estar entre 0 e 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeLeadRepository()
			uc := usecase.NewManageLeadsUseCase(repo, nil, entity.DefaultCardThresholds, nil)

			in := validLeadInput()
			tt.mutate(&in)

			_, err := uc.Add(context.Background(), in)
			require.Error(t, err)
			assert.True(t, usecase.IsValidationError(err))
			assert.Equal(t, tt.message, err.Error())

			all, _ := repo.List(context.Background())
			assert.Empty(t, all)
		})
	}
}

func TestAddLeadRetriesTakenID(t *testing.T) {
	repo := newFakeLeadRepository()
	repo.insertErr = []error{entity.ErrLeadIDTaken, nil}

	uc := usecase.NewManageLeadsUseCase(repo, nil, entity.DefaultCardThresholds, nil)
	lead, err := uc.Add(context.Background(), validLeadInput())
	require.NoError(t, err)
	assert.Equal(t, 1, lead.ID)
}

func TestAddLeadGivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := newFakeLeadRepository()
	repo.insertErr = []error{entity.ErrLeadIDTaken, entity.ErrLeadIDTaken, entity.ErrLeadIDTaken}

	uc := usecase.NewManageLeadsUseCase(repo, nil, entity.DefaultCardThresholds, nil)
	_, err := uc.Add(context.Background(), validLeadInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrLeadIDTaken)
}

func TestAddLeadIgnoresPublishFailure(t *testing.T) {
	events := new(MockEventPublisher)
	events.On("PublishLeadCreated", mock.Anything, mock.Anything).Return(errors.New("broker offline"))

	uc := usecase.NewManageLeadsUseCase(newFakeLeadRepository(), events, entity.DefaultCardThresholds, nil)
	lead, err := uc.Add(context.Background(), validLeadInput())
	require.NoError(t, err)
	assert.Equal(t, 1, lead.ID)
	events.AssertExpectations(t)
}

func TestConcurrentAddsGetDistinctIDs(t *testing.T) {
	repo := newFakeLeadRepository()
	uc := usecase.NewManageLeadsUseCase(repo, nil, entity.DefaultCardThresholds, nil)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Add(context.Background(), validLeadInput())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, _ := repo.List(context.Background())
	seen := make(map[int]bool)
	for _, l := range all {
		assert.False(t, seen[l.ID], "id %d repetido", l.ID)
		seen[l.ID] = true
	}
	assert.Len(t, seen, n)
}

func sampleLeads() []entity.Lead {
	return []entity.Lead{
		{ID: 1, Name: "João Silva", Score: 85, Status: entity.StatusHot, LastContact: "2 horas atrás"},
		{ID: 2, Name: "Maria Santos", Score: 65, Status: entity.StatusWarm, LastContact: "1 dia atrás"},
		{ID: 3, Name: "Pedro Costa", Score: 95, Status: entity.StatusHot, LastContact: "30 min atrás"},
		{ID: 4, Name: "Ana Oliveira", Score: 45, Status: entity.StatusCold, LastContact: "3 dias atrás"},
	}
}

func TestListFiltersThenSorts(t *testing.T) {
	uc := usecase.NewManageLeadsUseCase(newFakeLeadRepository(sampleLeads()...), nil, entity.DefaultCardThresholds, nil)

	views, err := uc.List(context.Background(), usecase.ListLeadsInput{Status: "hot"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 3, views[0].ID)
	assert.Equal(t, 1, views[1].ID)
	assert.Equal(t, entity.VisualHot, views[0].Visual)
	assert.Equal(t, entity.VisualHot, views[1].Visual)

	views, err = uc.List(context.Background(), usecase.ListLeadsInput{Status: "all", Sort: "name-asc"})
	require.NoError(t, err)
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"Ana Oliveira", "João Silva", "Maria Santos", "Pedro Costa"}, names)
}

func TestListRejectsUnknownSort(t *testing.T) {
	uc := usecase.NewManageLeadsUseCase(newFakeLeadRepository(sampleLeads()...), nil, entity.DefaultCardThresholds, nil)

	_, err := uc.List(context.Background(), usecase.ListLeadsInput{Sort: "random"})
	require.Error(t, err)
	assert.True(t, usecase.IsValidationError(err))
}

func TestGetLead(t *testing.T) {
	uc := usecase.NewManageLeadsUseCase(newFakeLeadRepository(sampleLeads()...), nil, entity.DefaultCardThresholds, nil)

	lead, err := uc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", lead.Name)

	_, err = uc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, usecase.ErrLeadNotFound)
}

func TestStats(t *testing.T) {
	uc := usecase.NewManageLeadsUseCase(newFakeLeadRepository(sampleLeads()...), nil, entity.DefaultCardThresholds, nil)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalLeads)
	assert.Equal(t, 2, stats.HotLeads)
	assert.Equal(t, 73, stats.AvgScore) // 290 / 4 = 72.5

	empty := usecase.NewManageLeadsUseCase(newFakeLeadRepository(), nil, entity.DefaultCardThresholds, nil)
	stats, err = empty.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &usecase.LeadStats{}, stats)
}

func TestSeedDemoLeadsOnlyOnEmptyList(t *testing.T) {
	repo := newFakeLeadRepository()
	uc := usecase.NewManageLeadsUseCase(repo, nil, entity.DefaultCardThresholds, nil)

	n, err := uc.SeedDemoLeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, _ := repo.List(context.Background())
	require.Len(t, all, 4)
	names := make([]string, 0, len(all))
	for _, l := range all {
		assert.Equal(t, entity.SourceSeed, l.Source)
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"João Silva", "Maria Santos", "Pedro Costa", "Ana Oliveira"}, names)

	n, err = uc.SeedDemoLeads(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
