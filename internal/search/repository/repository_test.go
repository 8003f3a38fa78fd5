package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"later_backend/internal/search/transport"
	"later_backend/platform/apperr"
)

func TestSortResults_NewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	results := []SearchResult{
		{ID: uuid.New(), Type: transport.ContentTypeNote, UpdatedAt: base},
		{ID: uuid.New(), Type: transport.ContentTypeList, UpdatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), Type: transport.ContentTypeTodoItem, UpdatedAt: base.Add(time.Hour)},
	}

	sortResults(results)

	for i := 1; i < len(results); i++ {
		if results[i].UpdatedAt.After(results[i-1].UpdatedAt) {
			t.Fatalf("results out of order at index %d", i)
		}
	}
	if results[0].Type != transport.ContentTypeList {
		t.Fatalf("expected the newest result first, got %v", results[0].Type)
	}
}

func TestSortResults_TiesBreakOnIDAscending(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	idA := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	idB := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	results := []SearchResult{
		{ID: idB, UpdatedAt: ts},
		{ID: idA, UpdatedAt: ts},
	}

	sortResults(results)

	if results[0].ID != idA || results[1].ID != idB {
		t.Fatalf("expected ties ordered by id ascending, got %v then %v", results[0].ID, results[1].ID)
	}
}

func TestTagsParam_EmptyFilterBecomesNil(t *testing.T) {
	if tagsParam(nil) != nil {
		t.Fatalf("expected nil for nil tags")
	}
	if tagsParam([]string{}) != nil {
		t.Fatalf("expected nil for empty tags")
	}
	tags := tagsParam([]string{"urgent"})
	if len(tags) != 1 || tags[0] != "urgent" {
		t.Fatalf("expected tags passed through, got %v", tags)
	}
}

func TestMapBackendError_DeadlineIsTimeout(t *testing.T) {
	err := mapBackendError("query notes", context.DeadlineExceeded)
	if !apperr.Is(err, apperr.KindTimeout) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
}

func TestMapBackendError_ConnectionClassIsUnavailable(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "08006"}
	err := mapBackendError("query notes", pgErr)
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable kind, got %v", err)
	}

	appErr := &apperr.Error{}
	if !errors.As(err, &appErr) {
		t.Fatalf("expected a typed error")
	}
	if !appErr.Retryable() {
		t.Fatalf("expected unavailable errors to be retryable")
	}
}

func TestMapBackendError_PermissionIsForbidden(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42501"}
	err := mapBackendError("query notes", pgErr)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden kind, got %v", err)
	}
}

func TestMapBackendError_UnclassifiedStaysUntyped(t *testing.T) {
	err := mapBackendError("query notes", errors.New("boom"))
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		t.Fatalf("expected unclassified errors left untyped, got kind %v", appErr.Kind)
	}
}
