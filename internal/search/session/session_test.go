package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"later_backend/internal/search/transport"
	"later_backend/platform/apperr"
	"later_backend/platform/logger"
)

type noopSearcher struct{}

func (noopSearcher) Search(ctx context.Context, userID uuid.UUID, req transport.SearchRequest) ([]transport.SearchResultResponse, error) {
	return []transport.SearchResultResponse{}, nil
}

func newTestManager() *Manager {
	return NewManager(noopSearcher{}, time.Millisecond, logger.New("test"))
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager()
	defer m.Shutdown()

	userID := uuid.New()
	s := m.Create(context.Background(), userID)

	got, err := m.Get(s.ID, userID)
	if err != nil {
		t.Fatalf("expected session to be found, got %v", err)
	}
	if got.ID != s.ID {
		t.Fatalf("expected session %v, got %v", s.ID, got.ID)
	}
}

func TestManager_GetByNonOwnerIsNotFound(t *testing.T) {
	m := newTestManager()
	defer m.Shutdown()

	s := m.Create(context.Background(), uuid.New())

	_, err := m.Get(s.ID, uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for foreign session, got %v", err)
	}
}

func TestManager_GetUnknownIDIsNotFound(t *testing.T) {
	m := newTestManager()
	defer m.Shutdown()

	_, err := m.Get(uuid.New(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestManager_DeleteClosesController(t *testing.T) {
	m := newTestManager()
	defer m.Shutdown()

	userID := uuid.New()
	s := m.Create(context.Background(), userID)

	if err := m.Delete(s.ID, userID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if _, err := m.Get(s.ID, userID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected session gone after delete, got %v", err)
	}
	if _, ok := <-s.Controller.Subscribe(); ok {
		t.Fatalf("expected controller closed after delete")
	}
}

func TestManager_DeleteByNonOwnerKeepsSession(t *testing.T) {
	m := newTestManager()
	defer m.Shutdown()

	userID := uuid.New()
	s := m.Create(context.Background(), userID)

	if err := m.Delete(s.ID, uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for foreign delete, got %v", err)
	}
	if _, err := m.Get(s.ID, userID); err != nil {
		t.Fatalf("expected session to survive a foreign delete, got %v", err)
	}
}

func TestManager_SweepClosesIdleSessions(t *testing.T) {
	m := newTestManager()
	defer m.Shutdown()

	userID := uuid.New()
	idle := m.Create(context.Background(), userID)

	// Only sessions last seen before the cutoff are swept.
	m.sweep(time.Now().Add(time.Minute))
	if _, err := m.Get(idle.ID, userID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected idle session swept, got %v", err)
	}
	if _, ok := <-idle.Controller.Subscribe(); ok {
		t.Fatalf("expected swept session's controller closed")
	}

	fresh := m.Create(context.Background(), userID)
	m.sweep(time.Now().Add(-time.Minute))
	if _, err := m.Get(fresh.ID, userID); err != nil {
		t.Fatalf("expected fresh session to survive the sweep, got %v", err)
	}
}

func TestManager_ShutdownClosesEverySession(t *testing.T) {
	m := newTestManager()

	userID := uuid.New()
	a := m.Create(context.Background(), userID)
	b := m.Create(context.Background(), userID)

	m.Shutdown()

	for _, s := range []*Session{a, b} {
		if _, ok := <-s.Controller.Subscribe(); ok {
			t.Fatalf("expected controller %v closed after shutdown", s.ID)
		}
	}
	if _, err := m.Get(a.ID, userID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected sessions cleared after shutdown, got %v", err)
	}
}
