package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"propinsight/server/internal/database"
	"propinsight/server/internal/metrics"
	"propinsight/server/internal/sampledata"
)

// Store holds the live sessions. Every new session gets a freshly seeded catalog.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	dataset  *sampledata.Dataset
	logger   *logrus.Logger
}

func NewStore(dataset *sampledata.Dataset, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if dataset == nil {
		dataset = sampledata.Default()
	}
	return &Store{
		sessions: make(map[string]*Session),
		dataset:  dataset,
		logger:   logger,
	}
}

// Get returns the session with the given id, or nil
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	s := st.sessions[id]
	st.mu.RUnlock()

	if s != nil {
		s.Touch()
	}
	return s
}

func (st *Store) Create() (*Session, error) {
	id := uuid.NewString()

	catalog, err := database.NewMemoryDatabase(id)
	if err != nil {
		return nil, fmt.Errorf("failed to open session catalog: %w", err)
	}
	if err := catalog.RunMigrations(); err != nil {
		catalog.Close()
		return nil, fmt.Errorf("failed to migrate session catalog: %w", err)
	}
	if err := catalog.Seed(st.dataset); err != nil {
		catalog.Close()
		return nil, fmt.Errorf("failed to seed session catalog: %w", err)
	}

	s := newSession(id, catalog)

	st.mu.Lock()
	st.sessions[id] = s
	count := len(st.sessions)
	st.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	st.logger.WithField("session_id", id).Info("Created session")
	return s, nil
}

// GetOrCreate returns the existing session for id, or a new one when id is unknown.
// The boolean reports whether a session was created.
func (st *Store) GetOrCreate(id string) (*Session, bool, error) {
	if id != "" {
		if s := st.Get(id); s != nil {
			return s, false, nil
		}
	}
	s, err := st.Create()
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (st *Store) Remove(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	count := len(st.sessions)
	st.mu.Unlock()

	if !ok {
		return nil
	}
	metrics.ActiveSessions.Set(float64(count))
	if err := s.Catalog.Close(); err != nil {
		return fmt.Errorf("failed to close catalog of session %s: %w", id, err)
	}
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// EvictIdle removes idle sessions not used for longer than maxIdle and returns how many were removed
func (st *Store) EvictIdle(maxIdle time.Duration, now time.Time) int {
	st.mu.RLock()
	var expired []string
	for id, s := range st.sessions {
		lastSeen, idle := s.idleSince()
		if idle && now.Sub(lastSeen) > maxIdle {
			expired = append(expired, id)
		}
	}
	st.mu.RUnlock()

	for _, id := range expired {
		if err := st.Remove(id); err != nil {
			st.logger.WithError(err).WithField("session_id", id).Error("Failed to remove idle session")
		}
	}
	return len(expired)
}

// Close removes every session
func (st *Store) Close() error {
	st.mu.RLock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	st.mu.RUnlock()

	var firstErr error
	for _, id := range ids {
		if err := st.Remove(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
