package usecase

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

type SortKey string

const (
	SortScoreDesc SortKey = "score-desc"
	SortScoreAsc  SortKey = "score-asc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortDateDesc  SortKey = "date-desc"
	SortDateAsc   SortKey = "date-asc"
)

const DefaultSort = SortScoreDesc

const FilterAll = "all"

// ParseSortKey accepts the dashboard keys plus recency-* aliases for date-*.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultSort, nil
	case "score-desc":
		return SortScoreDesc, nil
	case "score-asc":
		return SortScoreAsc, nil
	case "name-asc":
		return SortNameAsc, nil
	case "name-desc":
		return SortNameDesc, nil
	case "date-desc", "recency-desc":
		return SortDateDesc, nil
	case "date-asc", "recency-asc":
		return SortDateAsc, nil
	}
	return "", ValidationErrors{{Field: "sort", Message: "Ordenação inválida"}}
}

// FilterByStatus keeps the leads whose status matches exactly, in their
// original order. "all" (or empty) keeps everything.
func FilterByStatus(leads []entity.Lead, filter string) ([]entity.Lead, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, FilterAll) {
		return append([]entity.Lead(nil), leads...), nil
	}

	status, ok := entity.ParseStatus(filter)
	if !ok {
		return nil, ValidationErrors{{Field: "status", Message: "Filtro de status inválido"}}
	}

	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

// SortLeads returns a sorted copy. The sort is stable so ties keep list order,
// and unknown keys leave the order untouched.
func SortLeads(leads []entity.Lead, key SortKey) []entity.Lead {
	out := append([]entity.Lead(nil), leads...)

	var less func(a, b entity.Lead) bool
	switch key {
	case SortScoreDesc:
		less = func(a, b entity.Lead) bool { return a.Score > b.Score }
	case SortScoreAsc:
		less = func(a, b entity.Lead) bool { return a.Score < b.Score }
	case SortNameAsc, SortNameDesc:
		// Collator keeps internal buffers, one per call.
		col := collate.New(language.BrazilianPortuguese)
		if key == SortNameAsc {
			less = func(a, b entity.Lead) bool { return col.CompareString(a.Name, b.Name) < 0 }
		} else {
			less = func(a, b entity.Lead) bool { return col.CompareString(b.Name, a.Name) < 0 }
		}
	case SortDateDesc:
		less = func(a, b entity.Lead) bool {
			return entity.RecencyMinutes(a.LastContact) < entity.RecencyMinutes(b.LastContact)
		}
	case SortDateAsc:
		less = func(a, b entity.Lead) bool {
			return entity.RecencyMinutes(a.LastContact) > entity.RecencyMinutes(b.LastContact)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
