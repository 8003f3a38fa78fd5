// Package session manages live search sessions. Each session owns one
// controller; sessions belong to the user who created them and expire
// after a period of inactivity.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"later_backend/internal/search/controller"
	"later_backend/platform/apperr"
	"later_backend/platform/logger"
)

// idleTimeout is how long a session may go untouched before the janitor
// closes it.
const idleTimeout = 10 * time.Minute

// janitorInterval is how often expired sessions are swept.
const janitorInterval = time.Minute

// Session couples a controller to its owner.
type Session struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Controller *controller.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// Manager tracks live search sessions and sweeps idle ones.
type Manager struct {
	svc      controller.Searcher
	debounce time.Duration
	log      *logger.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a session manager and starts its janitor.
func NewManager(svc controller.Searcher, debounce time.Duration, log *logger.Logger) *Manager {
	m := &Manager{
		svc:      svc,
		debounce: debounce,
		log:      log,
		sessions: make(map[uuid.UUID]*Session),
		stop:     make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Create opens a new session owned by the given user.
func (m *Manager) Create(_ context.Context, userID uuid.UUID) *Session {
	s := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		Controller: controller.New(m.svc, userID, m.debounce),
		lastSeen:   time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get returns the session if it exists and belongs to the user. A session
// owned by someone else is reported as not found rather than forbidden so
// session ids are not probeable.
func (m *Manager) Get(id, userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok || s.UserID != userID {
		return nil, apperr.NotFound("search session not found")
	}
	s.touch()
	return s, nil
}

// Delete closes and removes the session.
func (m *Manager) Delete(id, userID uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok && s.UserID == userID {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok || s.UserID != userID {
		return apperr.NotFound("search session not found")
	}
	s.Controller.Close()
	return nil
}

// Shutdown stops the janitor and closes every session.
func (m *Manager) Shutdown() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Controller.Close()
	}
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep(time.Now().Add(-idleTimeout))
		}
	}
}

func (m *Manager) sweep(cutoff time.Time) {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Controller.Close()
		m.log.Info("search session expired", "session_id", s.ID.String())
	}
}
