package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
	"github.com/xavierca1/vital-sales-pro/internal/infra/metrics"
)

const (
	msgAnalysisFailed = "Não foi possível gerar a análise. Tente novamente."
	operatorGreeting  = "Olá! Claro, temos ótimas opções para você. Qual é a sua necessidade principal?"
)

func leadGreeting(interest string) string {
	return fmt.Sprintf("Olá, tenho interesse em %s. Podem me ajudar?", interest)
}

// ChatOutput is the session after a message plus the AI reply, if any.
// Discarded is true when the reply arrived after another lead was selected.
type ChatOutput struct {
	Session   SessionView         `json:"session"`
	Reply     *entity.ChatMessage `json:"reply,omitempty"`
	Discarded bool                `json:"discarded,omitempty"`
}

type SessionUseCase struct {
	Store               *SessionStore
	Leads               *ManageLeadsUseCase
	AI                  *Orchestrator
	Prospector          *ProspectUseCase
	Delivery            MessageDelivery
	PromotionThresholds entity.Thresholds
	Logger              *slog.Logger
	Now                 func() time.Time
}

func NewSessionUseCase(
	store *SessionStore,
	leads *ManageLeadsUseCase,
	ai *Orchestrator,
	prospector *ProspectUseCase,
	delivery MessageDelivery,
	promotion entity.Thresholds,
	logger *slog.Logger,
) *SessionUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionUseCase{
		Store:               store,
		Leads:               leads,
		AI:                  ai,
		Prospector:          prospector,
		Delivery:            delivery,
		PromotionThresholds: promotion,
		Logger:              logger,
		Now:                 time.Now,
	}
}

func (uc *SessionUseCase) Create() SessionView {
	s := uc.Store.Create()
	uc.Logger.Info("sessão criada", "session_id", s.ID)
	return s.View()
}

func (uc *SessionUseCase) Get(id string) (SessionView, error) {
	s, err := uc.Store.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	return s.View(), nil
}

func (uc *SessionUseCase) SetAutoResponse(id string, enabled bool) (SessionView, error) {
	s, err := uc.Store.Get(id)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoResponse = enabled
	s.updatedAt = uc.Now()
	return s.viewLocked(), nil
}

// SelectLead switches the session to another lead. The analysis is cleared
// and the chat restarts from the two greeting messages.
func (uc *SessionUseCase) SelectLead(ctx context.Context, id string, leadID int) (SessionView, error) {
	s, err := uc.Store.Get(id)
	if err != nil {
		return SessionView{}, err
	}

	lead, err := uc.Leads.Get(ctx, leadID)
	if err != nil {
		return SessionView{}, err
	}

	now := uc.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = lead
	s.analysis = ""
	s.generation++
	s.transcript = []entity.ChatMessage{
		{From: entity.SenderLead, Text: leadGreeting(lead.Interest), Time: now.Format(entity.TimeLayout)},
		{From: entity.SenderOperator, Text: operatorGreeting, Time: now.Format(entity.TimeLayout)},
	}
	s.updatedAt = now
	return s.viewLocked(), nil
}

// selection returns a copy of the selected lead and the selection generation.
func (s *Session) selection() (*entity.Lead, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil, 0, ErrNoLeadSelected
	}
	lead := *s.selected
	return &lead, s.generation, nil
}

// Analyze stores the sales analysis of the selected lead on the session. On
// failure the panel shows a retry message and the error is returned.
func (uc *SessionUseCase) Analyze(ctx context.Context, id string) (SessionView, AIResponse, error) {
	s, err := uc.Store.Get(id)
	if err != nil {
		return SessionView{}, AIResponse{}, err
	}

	lead, gen, err := s.selection()
	if err != nil {
		return SessionView{}, AIResponse{}, err
	}

	release, err := s.acquire(ControlAnalysis, uc.Now())
	if err != nil {
		return SessionView{}, AIResponse{}, err
	}
	defer release()

	resp := uc.AI.Analyze(ctx, lead)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		uc.Logger.Info("análise descartada, lead trocado", "session_id", s.ID, "lead_id", lead.ID)
		return s.viewLocked(), resp, nil
	}
	if resp.Failed() {
		s.analysis = msgAnalysisFailed
	} else {
		s.analysis = resp.Content
	}
	s.updatedAt = uc.Now()
	return s.viewLocked(), resp, resp.Err
}

// SendMessage appends the operator message and, with auto-response on, the
// AI-generated lead reply.
func (uc *SessionUseCase) SendMessage(ctx context.Context, id, text string) (*ChatOutput, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ValidationErrors{{Field: "text", Message: "Mensagem é obrigatória"}}
	}

	s, err := uc.Store.Get(id)
	if err != nil {
		return nil, err
	}

	lead, gen, err := s.selection()
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ControlChat, uc.Now())
	if err != nil {
		return nil, err
	}
	defer release()

	s.mu.Lock()
	s.transcript = append(s.transcript, entity.ChatMessage{
		From: entity.SenderOperator,
		Text: text,
		Time: uc.Now().Format(entity.TimeLayout),
	})
	autoResponse := s.autoResponse
	transcript := append([]entity.ChatMessage(nil), s.transcript...)
	s.mu.Unlock()

	uc.deliver(ctx, lead, text)

	if !autoResponse {
		return &ChatOutput{Session: s.View()}, nil
	}

	resp := uc.AI.Chat(ctx, lead, text, transcript)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		uc.Logger.Info("resposta de IA descartada, lead trocado", "session_id", s.ID, "lead_id", lead.ID)
		return &ChatOutput{Session: s.viewLocked(), Discarded: true}, nil
	}
	if resp.Failed() {
		return nil, resp.Err
	}

	now := uc.Now()
	reply := entity.ChatMessage{
		From:          entity.SenderLead,
		Text:          resp.Content,
		Time:          now.Format(entity.TimeLayout),
		IsAIGenerated: true,
	}
	s.transcript = append(s.transcript, reply)
	s.updatedAt = now
	return &ChatOutput{Session: s.viewLocked(), Reply: &reply}, nil
}

func (uc *SessionUseCase) deliver(ctx context.Context, lead *entity.Lead, text string) {
	if uc.Delivery == nil || lead.Phone == "" || lead.Phone == phoneNotInformed {
		return
	}
	if err := uc.Delivery.SendText(ctx, lead.Phone, text); err != nil {
		uc.Logger.Error("falha ao entregar mensagem via WhatsApp", "lead_id", lead.ID, "error", err)
		metrics.RecordIntegrationError("whatsapp")
	}
}

// SuggestResponse asks for a reply to the last lead message. The transcript is
// left untouched.
func (uc *SessionUseCase) SuggestResponse(ctx context.Context, id string) (AIResponse, error) {
	s, err := uc.Store.Get(id)
	if err != nil {
		return AIResponse{}, err
	}

	lead, _, err := s.selection()
	if err != nil {
		return AIResponse{}, err
	}

	s.mu.Lock()
	last := ""
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].From == entity.SenderLead {
			last = s.transcript[i].Text
			break
		}
	}
	s.mu.Unlock()

	if last == "" {
		return AIResponse{}, ValidationErrors{{Field: "transcript", Message: "Nenhuma mensagem do lead para responder"}}
	}

	release, err := s.acquire(ControlSuggest, uc.Now())
	if err != nil {
		return AIResponse{}, err
	}
	defer release()

	resp := uc.AI.Suggest(ctx, lead, last)
	return resp, resp.Err
}

// Prospect runs the prospecting pipeline and keeps the candidates on the session.
func (uc *SessionUseCase) Prospect(ctx context.Context, id string, input ProspectInput) (*ProspectOutput, error) {
	s, err := uc.Store.Get(id)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ControlProspect, uc.Now())
	if err != nil {
		return nil, err
	}
	defer release()

	s.mu.Lock()
	s.candidates = []entity.Candidate{}
	s.mu.Unlock()

	out, err := uc.Prospector.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.candidates = append([]entity.Candidate(nil), out.Candidates...)
	s.updatedAt = uc.Now()
	s.mu.Unlock()
	return out, nil
}

// PromoteCandidate adds a candidate to the lead list once per name per session.
func (uc *SessionUseCase) PromoteCandidate(ctx context.Context, id string, c entity.Candidate) (*PromoteOutput, error) {
	s, err := uc.Store.Get(id)
	if err != nil {
		return nil, err
	}

	c.Normalize()
	if c.Name == "" {
		return nil, ValidationErrors{{Field: "name", Message: "Candidato sem nome"}}
	}

	if !s.markAdded(c.Name) {
		return &PromoteOutput{AlreadyAdded: true}, nil
	}

	lead, err := uc.Leads.AddCandidate(ctx, c, uc.PromotionThresholds)
	if err != nil {
		s.unmarkAdded(c.Name)
		return nil, err
	}

	s.mu.Lock()
	s.updatedAt = uc.Now()
	s.mu.Unlock()

	uc.Logger.Info("candidato promovido a lead", "session_id", s.ID, "lead_id", lead.ID, "name", c.Name)
	return &PromoteOutput{Lead: lead}, nil
}
