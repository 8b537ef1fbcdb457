package usecase

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/vital-sales-pro/internal/entity"
)

// Control names one dashboard action that can only have one request pending.
type Control string

const (
	ControlAnalysis Control = "analysis"
	ControlChat     Control = "chat"
	ControlSuggest  Control = "suggest"
	ControlProspect Control = "prospect"
)

// Session holds what one operator sees on the dashboard: the selected lead,
// its chat, the analysis panel and the prospecting results.
type Session struct {
	ID string

	mu           sync.Mutex
	selected     *entity.Lead
	transcript   []entity.ChatMessage
	analysis     string
	autoResponse bool
	candidates   []entity.Candidate
	added        map[string]struct{}
	inFlight     map[Control]bool
	generation   uint64
	createdAt    time.Time
	updatedAt    time.Time
}

// SessionView is a read-only copy of a session.
type SessionView struct {
	ID           string               `json:"id"`
	SelectedLead *entity.Lead         `json:"selectedLead"`
	Transcript   []entity.ChatMessage `json:"transcript"`
	Analysis     string               `json:"analysis"`
	AutoResponse bool                 `json:"autoResponse"`
	Candidates   []entity.Candidate   `json:"candidates"`
	AddedNames   []string             `json:"addedNames"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:           uuid.NewString(),
		autoResponse: true,
		transcript:   []entity.ChatMessage{},
		candidates:   []entity.Candidate{},
		added:        make(map[string]struct{}),
		inFlight:     make(map[Control]bool),
		createdAt:    now,
		updatedAt:    now,
	}
}

// View must be called without s.mu held.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() SessionView {
	v := SessionView{
		ID:           s.ID,
		Transcript:   append([]entity.ChatMessage(nil), s.transcript...),
		Analysis:     s.analysis,
		AutoResponse: s.autoResponse,
		Candidates:   append([]entity.Candidate(nil), s.candidates...),
		AddedNames:   make([]string, 0, len(s.added)),
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
	if v.Transcript == nil {
		v.Transcript = []entity.ChatMessage{}
	}
	if v.Candidates == nil {
		v.Candidates = []entity.Candidate{}
	}
	if s.selected != nil {
		lead := *s.selected
		v.SelectedLead = &lead
	}
	for name := range s.added {
		v.AddedNames = append(v.AddedNames, name)
	}
	sort.Strings(v.AddedNames)
	return v
}

// acquire marks control as busy. The returned func releases it.
func (s *Session) acquire(c Control, now time.Time) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[c] {
		return nil, ErrRequestInFlight
	}
	s.inFlight[c] = true
	s.updatedAt = now
	return func() {
		s.mu.Lock()
		delete(s.inFlight, c)
		s.mu.Unlock()
	}, nil
}

// markAdded reports false when name was already promoted in this session.
func (s *Session) markAdded(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.added[name]; ok {
		return false
	}
	s.added[name] = struct{}{}
	return true
}

func (s *Session) unmarkAdded(name string) {
	s.mu.Lock()
	delete(s.added, name)
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight) > 0
}

// SessionStore keeps sessions in memory, keyed by id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session), now: time.Now}
}

func (st *SessionStore) Create() *Session {
	s := newSession(st.now())
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[strings.TrimSpace(id)]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// ExpireIdle drops sessions untouched for longer than ttl and returns their ids.
// Sessions with a request in flight are kept.
func (st *SessionStore) ExpireIdle(ttl time.Duration) []string {
	cutoff := st.now().Add(-ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	var expired []string
	for id, s := range st.sessions {
		if s.busy() || !s.idleSince().Before(cutoff) {
			continue
		}
		delete(st.sessions, id)
		expired = append(expired, id)
	}
	sort.Strings(expired)
	return expired
}
