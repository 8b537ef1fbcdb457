package usecase

import (
	"strings"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

const phoneNotInformed = "Não informado"

// CandidateToLead builds the lead a promoted candidate turns into. Status comes
// from the promotion thresholds, not from the card thresholds.
func CandidateToLead(c entity.Candidate, t entity.Thresholds) *entity.Lead {
	phone := phoneNotInformed
	if c.Phone != nil {
		phone = *c.Phone
	}

	var history strings.Builder
	history.WriteString(c.Notes)
	if c.Address != nil {
		history.WriteString(" | Endereço: " + *c.Address)
	}
	if c.Website != nil {
		history.WriteString(" | Site: " + *c.Website)
	}

	return &entity.Lead{
		Name:        c.Name,
		Phone:       phone,
		Score:       c.Score,
		Status:      entity.PromotionStatus(c.Score, t),
		LastContact: "Agora",
		Interest:    c.BusinessType,
		History:     history.String(),
		Source:      entity.SourceProspecting,
	}
}
