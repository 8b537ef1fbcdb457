package usecase

import (
	"strings"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

// LeadInput is what the "Novo Lead" form sends.
type LeadInput struct {
	Name        string `json:"name" validate:"min=2,max=100"`
	Phone       string `json:"phone" validate:"min=10,max=20,phonechars"`
	Interest    string `json:"interest" validate:"min=3,max=100"`
	Status      string `json:"status" validate:"required,leadstatus"`
	Notes       string `json:"notes" validate:"max=500"`
	Score       *int   `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
	LastContact string `json:"lastContact,omitempty" validate:"max=50"`
}

func (in *LeadInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Interest = strings.TrimSpace(in.Interest)
	in.Status = strings.TrimSpace(in.Status)
	in.Notes = strings.TrimSpace(in.Notes)
	in.LastContact = strings.TrimSpace(in.LastContact)
}

func (in LeadInput) toLead() *entity.Lead {
	status, _ := entity.ParseStatus(in.Status)

	score := entity.DefaultScore(status)
	if in.Score != nil {
		score = *in.Score
	}

	lastContact := in.LastContact
	if lastContact == "" {
		lastContact = "Agora"
	}

	history := in.Notes
	if history == "" {
		history = "Lead criado manualmente"
	}

	return &entity.Lead{
		Name:        in.Name,
		Phone:       in.Phone,
		Score:       score,
		Status:      status,
		LastContact: lastContact,
		Interest:    in.Interest,
		History:     history,
		Source:      entity.SourceManual,
	}
}

type ListLeadsInput struct {
	Status string `json:"status"`
	Sort   string `json:"sort"`
}

// LeadView is a lead as the dashboard list shows it, with its card color.
type LeadView struct {
	entity.Lead
	Visual entity.Visual `json:"visual"`
}

type LeadStats struct {
	TotalLeads int `json:"totalLeads"`
	HotLeads   int `json:"hotLeads"`
	AvgScore   int `json:"avgScore"`
}

type ProspectInput struct {
	City         string `json:"city" validate:"min=2,max=100,city"`
	BusinessType string `json:"businessType" validate:"min=3,max=100"`
}

func (in *ProspectInput) normalize() {
	in.City = strings.TrimSpace(in.City)
	in.BusinessType = strings.TrimSpace(in.BusinessType)
}

type SearchOutput struct {
	Query     string                `json:"query"`
	Results   []entity.SearchResult `json:"results"`
	NoResults bool                  `json:"noResults"`
	Message   string                `json:"message,omitempty"`
}

type ProspectOutput struct {
	Query      string             `json:"query"`
	Searched   int                `json:"searched"`
	Candidates []entity.Candidate `json:"leads"`
	NoResults  bool               `json:"noResults"`
	Message    string             `json:"message,omitempty"`
}

// ExtractOutput mirrors the extraction service contract.
type ExtractOutput struct {
	Success bool               `json:"success"`
	Leads   []entity.Candidate `json:"leads,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type PromoteOutput struct {
	Lead         *entity.Lead `json:"lead,omitempty"`
	AlreadyAdded bool         `json:"alreadyAdded"`
}
