package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"propinsight/server/internal/database"
	"propinsight/server/internal/models"
)

const Greeting = "👋 Hello! I'm PropInsight, your property management assistant. How can I help you today?"

var ErrBusy = errors.New("a chat reply is still being generated")

// State of the chat exchange
type State int

const (
	Idle State = iota
	Awaiting
)

func (s State) String() string {
	if s == Awaiting {
		return "awaiting"
	}
	return "idle"
}

// Chatter produces the assistant's reply. It always returns displayable
// text, substituting a degraded message when the model is unavailable.
type Chatter interface {
	Chat(ctx context.Context, message string) string
}

// Session is one operator's interactive use of the dashboard: their chat
// history and their own copy of the sample catalog.
type Session struct {
	ID      string
	Catalog *database.Database

	mu       sync.Mutex
	state    State
	history  []models.ChatMessage
	lastSeen time.Time
}

func newSession(id string, catalog *database.Database) *Session {
	return &Session{
		ID:       id,
		Catalog:  catalog,
		lastSeen: time.Now(),
	}
}

// Submit sends text to the chatter and records the exchange. Blank text is
// ignored and returns no messages. A second submission while a reply is
// pending fails with ErrBusy. Both messages are appended only once the reply
// is known, user message first.
func (s *Session) Submit(ctx context.Context, chatter Chatter, text string) ([]models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	s.mu.Lock()
	if s.state == Awaiting {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.state = Awaiting
	s.lastSeen = time.Now()
	s.mu.Unlock()

	reply := chatter.Chat(ctx, text)

	exchange := []models.ChatMessage{
		{Role: models.RoleUser, Content: text},
		{Role: models.RoleAssistant, Content: reply},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, exchange...)
	s.state = Idle
	s.lastSeen = time.Now()
	return exchange, nil
}

// SeedGreeting adds the welcome message when the chat view opens on an empty history
func (s *Session) SeedGreeting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		s.history = append(s.history, models.ChatMessage{Role: models.RoleAssistant, Content: Greeting})
	}
}

func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// idleSince reports when the session was last used; a pending chat counts as in use
func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen, s.state == Idle
}
