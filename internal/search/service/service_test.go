package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"later_backend/internal/search/repository"
	"later_backend/internal/search/transport"
	"later_backend/platform/apperr"
	"later_backend/platform/logger"
)

type fakeSearcher struct {
	lastQuery *repository.Query
	results   []repository.SearchResult
	err       error
	calls     int
}

func (f *fakeSearcher) Search(ctx context.Context, q repository.Query) ([]repository.SearchResult, error) {
	f.calls++
	f.lastQuery = &q
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func newTestService(repo *fakeSearcher) *Service {
	return New(repo, logger.New("test"))
}

func TestSearch_BlankTextReturnsEmptyWithoutQuerying(t *testing.T) {
	repo := &fakeSearcher{}
	svc := newTestService(repo)

	results, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    "   \t  ",
		SpaceID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if results == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
	if repo.calls != 0 {
		t.Fatalf("expected repository untouched, got %d calls", repo.calls)
	}
}

func TestSearch_MissingSpaceIDIsValidationError(t *testing.T) {
	repo := &fakeSearcher{}
	svc := newTestService(repo)

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{Text: "groceries"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("expected repository untouched, got %d calls", repo.calls)
	}
}

func TestSearch_InvalidSpaceIDIsValidationError(t *testing.T) {
	svc := newTestService(&fakeSearcher{})

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    "groceries",
		SpaceID: "not-a-uuid",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSearch_OversizedTextIsOutOfRange(t *testing.T) {
	svc := newTestService(&fakeSearcher{})

	long := make([]rune, 501)
	for i := range long {
		long[i] = 'x'
	}

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    string(long),
		SpaceID: uuid.New().String(),
	})
	if !apperr.Is(err, apperr.KindOutOfRange) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
}

func TestSearch_TextAtLimitIsAccepted(t *testing.T) {
	repo := &fakeSearcher{}
	svc := newTestService(repo)

	long := make([]rune, 500)
	for i := range long {
		long[i] = 'x'
	}

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    string(long),
		SpaceID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("expected 500-rune text to pass, got %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected 1 repository call, got %d", repo.calls)
	}
}

func TestSearch_ExplicitEmptyTypeFilterReturnsEmpty(t *testing.T) {
	repo := &fakeSearcher{}
	svc := newTestService(repo)

	results, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:         "groceries",
		SpaceID:      uuid.New().String(),
		ContentTypes: []transport.ContentType{},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
	if repo.calls != 0 {
		t.Fatalf("expected repository untouched, got %d calls", repo.calls)
	}
}

func TestSearch_NilTypeFilterSearchesAllTypes(t *testing.T) {
	repo := &fakeSearcher{}
	svc := newTestService(repo)

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    "groceries",
		SpaceID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.lastQuery.Types) != len(transport.AllContentTypes()) {
		t.Fatalf("expected all %d types, got %d", len(transport.AllContentTypes()), len(repo.lastQuery.Types))
	}
}

func TestSearch_UnknownContentTypeIsBadRequest(t *testing.T) {
	svc := newTestService(&fakeSearcher{})

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:         "groceries",
		SpaceID:      uuid.New().String(),
		ContentTypes: []transport.ContentType{"bookmark"},
	})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestSearch_TrimsTextBeforeQuerying(t *testing.T) {
	repo := &fakeSearcher{}
	svc := newTestService(repo)

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    "  groceries  ",
		SpaceID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.lastQuery.Text != "groceries" {
		t.Fatalf("expected trimmed text, got %q", repo.lastQuery.Text)
	}
}

func TestSearch_TypedBackendErrorPassesThrough(t *testing.T) {
	backendErr := apperr.Unavailable("search backend unavailable")
	svc := newTestService(&fakeSearcher{err: backendErr})

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    "groceries",
		SpaceID: uuid.New().String(),
	})
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error passed through, got %v", err)
	}
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable kind, got %v", apperr.GetKind(err))
	}
}

func TestSearch_UnrecognizedErrorWrapsAsUnknown(t *testing.T) {
	svc := newTestService(&fakeSearcher{err: errors.New("connection reset")})

	_, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    "groceries",
		SpaceID: uuid.New().String(),
	})
	if !apperr.Is(err, apperr.KindUnknown) {
		t.Fatalf("expected unknown kind, got %v", apperr.GetKind(err))
	}
}

func TestSearch_ChildResultsGetParentSubtitle(t *testing.T) {
	parentID := uuid.New()
	parentName := "Weekend plans"
	repo := &fakeSearcher{
		results: []repository.SearchResult{
			{
				ID:         uuid.New(),
				Type:       transport.ContentTypeTodoItem,
				Title:      "buy milk",
				UpdatedAt:  time.Now(),
				ParentID:   &parentID,
				ParentName: &parentName,
			},
			{
				ID:        uuid.New(),
				Type:      transport.ContentTypeNote,
				Title:     "milk prices",
				UpdatedAt: time.Now(),
			},
		},
	}
	svc := newTestService(repo)

	results, err := svc.Search(context.Background(), uuid.New(), transport.SearchRequest{
		Text:    "milk",
		SpaceID: uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Subtitle == nil || *results[0].Subtitle != parentName {
		t.Fatalf("expected child subtitle %q, got %v", parentName, results[0].Subtitle)
	}
	if results[1].Subtitle != nil {
		t.Fatalf("expected no subtitle for top-level result, got %q", *results[1].Subtitle)
	}
}
