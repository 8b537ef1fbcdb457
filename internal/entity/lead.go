package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrLeadNotFound = errors.New("lead não encontrado")
	ErrLeadIDTaken  = errors.New("id de lead já utilizado")
)

type Status string

const (
	StatusHot  Status = "hot"
	StatusWarm Status = "warm"
	StatusCold Status = "cold"
)

// ParseStatus aceita os valores da API e os rótulos usados no dashboard (quente, morno, frio).
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hot", "quente":
		return StatusHot, true
	case "warm", "morno":
		return StatusWarm, true
	case "cold", "frio":
		return StatusCold, true
	}
	return "", false
}

type Source string

const (
	SourceManual      Source = "manual"
	SourceProspecting Source = "prospecting"
	SourceSeed        Source = "seed"
)

type Lead struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Score       int       `json:"score"`
	Status      Status    `json:"status"`
	LastContact string    `json:"lastContact"`
	Interest    string    `json:"interest"`
	History     string    `json:"history"`
	Source      Source    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsZero reports whether the lead carries no identity at all.
func (l *Lead) IsZero() bool {
	return l == nil || (l.ID == 0 && strings.TrimSpace(l.Name) == "")
}

// LeadRepositoryInterface guarda a lista ordenada de leads, mais recente primeiro.
type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]Lead, error)
	FindByID(ctx context.Context, id int) (*Lead, error)
	Insert(ctx context.Context, lead *Lead) error
}
