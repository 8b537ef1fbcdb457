package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/usecase"
)

func ids(leads []entity.Lead) []int {
	out := make([]int, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func scores(leads []entity.Lead) []int {
	out := make([]int, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.Score)
	}
	return out
}

func TestSortLeadsByScore(t *testing.T) {
	leads := []entity.Lead{{ID: 1, Score: 45}, {ID: 2, Score: 95}, {ID: 3, Score: 65}}

	assert.Equal(t, []int{95, 65, 45}, scores(usecase.SortLeads(leads, usecase.SortScoreDesc)))
	assert.Equal(t, []int{45, 65, 95}, scores(usecase.SortLeads(leads, usecase.SortScoreAsc)))
	// A entrada não é alterada.
	assert.Equal(t, []int{45, 95, 65}, scores(leads))
}

func TestSortLeadsIsStable(t *testing.T) {
	leads := []entity.Lead{{ID: 1, Score: 70}, {ID: 2, Score: 90}, {ID: 3, Score: 70}, {ID: 4, Score: 70}}
	assert.Equal(t, []int{2, 1, 3, 4}, ids(usecase.SortLeads(leads, usecase.SortScoreDesc)))
}

func TestSortLeadsByNameUsesPortugueseCollation(t *testing.T) {
	leads := []entity.Lead{
		{ID: 1, Name: "Órion Limpeza"},
		{ID: 2, Name: "abc Higiene"},
		{ID: 3, Name: "Ângela Produtos"},
		{ID: 4, Name: "Beto Distribuidora"},
	}

	assert.Equal(t, []int{2, 3, 4, 1}, ids(usecase.SortLeads(leads, usecase.SortNameAsc)))
	assert.Equal(t, []int{1, 4, 3, 2}, ids(usecase.SortLeads(leads, usecase.SortNameDesc)))
}

func TestSortLeadsByRecency(t *testing.T) {
	leads := []entity.Lead{
		{ID: 1, LastContact: "2 horas atrás"},
		{ID: 2, LastContact: "ontem"},
		{ID: 3, LastContact: "30 min atrás"},
		{ID: 4, LastContact: "1 dia atrás"},
	}

	assert.Equal(t, []int{3, 1, 4, 2}, ids(usecase.SortLeads(leads, usecase.SortDateDesc)))
	assert.Equal(t, []int{2, 4, 1, 3}, ids(usecase.SortLeads(leads, usecase.SortDateAsc)))
}

func TestSortLeadsUnknownKeyKeepsOrder(t *testing.T) {
	leads := []entity.Lead{{ID: 3, Score: 10}, {ID: 1, Score: 90}, {ID: 2, Score: 50}}
	assert.Equal(t, []int{3, 1, 2}, ids(usecase.SortLeads(leads, usecase.SortKey("random"))))
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]usecase.SortKey{
		"":             usecase.SortScoreDesc,
		"score-desc":   usecase.SortScoreDesc,
		"Name-Asc":     usecase.SortNameAsc,
		"recency-desc": usecase.SortDateDesc,
		"recency-asc":  usecase.SortDateAsc,
		"date-asc":     usecase.SortDateAsc,
	}
	for in, want := range tests {
		got, err := usecase.ParseSortKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := usecase.ParseSortKey("price-desc")
	assert.True(t, usecase.IsValidationError(err))
}

func TestFilterByStatusPreservesOrder(t *testing.T) {
	leads := []entity.Lead{
		{ID: 1, Status: entity.StatusHot},
		{ID: 2, Status: entity.StatusWarm},
		{ID: 3, Status: entity.StatusHot},
		{ID: 4, Status: entity.StatusCold},
	}

	hot, err := usecase.FilterByStatus(leads, "hot")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(hot))

	quente, err := usecase.FilterByStatus(leads, "quente")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(quente))

	all, err := usecase.FilterByStatus(leads, "all")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(all))

	_, err = usecase.FilterByStatus(leads, "morto")
	assert.True(t, usecase.IsValidationError(err))
}
