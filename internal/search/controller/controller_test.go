package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"later_backend/internal/search/transport"
	"later_backend/platform/apperr"
)

const testDebounce = 5 * time.Millisecond

// searchCall is one in-flight invocation of the stub service. The test
// decides when it completes by closing release.
type searchCall struct {
	req     transport.SearchRequest
	release chan struct{}
}

// stubSearcher hands every invocation to the test over the calls channel
// and blocks until the test releases it.
type stubSearcher struct {
	calls chan searchCall

	mu    sync.Mutex
	count int
	err   error
}

func newStubSearcher() *stubSearcher {
	return &stubSearcher{calls: make(chan searchCall, 4)}
}

func (s *stubSearcher) Search(ctx context.Context, userID uuid.UUID, req transport.SearchRequest) ([]transport.SearchResultResponse, error) {
	s.mu.Lock()
	s.count++
	err := s.err
	s.mu.Unlock()

	call := searchCall{req: req, release: make(chan struct{})}
	s.calls <- call
	<-call.release

	if err != nil {
		return nil, err
	}
	return []transport.SearchResultResponse{
		{ID: uuid.New(), Type: transport.ContentTypeNote, Title: req.Text},
	}, nil
}

func (s *stubSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func awaitCall(t *testing.T, s *stubSearcher) searchCall {
	t.Helper()
	select {
	case call := <-s.calls:
		return call
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for the service to be invoked")
		return searchCall{}
	}
}

func awaitState(t *testing.T, ch <-chan Snapshot, want State) Snapshot {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatalf("subscriber channel closed while waiting for state %v", want)
			}
			if snap.State == want {
				return snap
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state %v", want)
		}
	}
}

func TestSearch_EntersLoadingSynchronously(t *testing.T) {
	svc := newStubSearcher()
	c := New(svc, uuid.New(), testDebounce)
	defer c.Close()

	c.Search(transport.SearchRequest{Text: "milk"})

	if got := c.Snapshot().State; got != StateLoading {
		t.Fatalf("expected loading immediately after Search, got %v", got)
	}
}

func TestSearch_DebounceCoalescesBurst(t *testing.T) {
	svc := newStubSearcher()
	c := New(svc, uuid.New(), testDebounce)
	defer c.Close()

	sub := c.Subscribe()

	c.Search(transport.SearchRequest{Text: "m"})
	c.Search(transport.SearchRequest{Text: "mi"})
	c.Search(transport.SearchRequest{Text: "milk"})

	call := awaitCall(t, svc)
	if call.req.Text != "milk" {
		t.Fatalf("expected only the last query to dispatch, got %q", call.req.Text)
	}
	close(call.release)

	snap := awaitState(t, sub, StateReady)
	if len(snap.Results) != 1 || snap.Results[0].Title != "milk" {
		t.Fatalf("expected results for the last query, got %+v", snap.Results)
	}
	if svc.callCount() != 1 {
		t.Fatalf("expected exactly 1 service call, got %d", svc.callCount())
	}
}

func TestSearch_StaleResponseIsDiscarded(t *testing.T) {
	svc := newStubSearcher()
	c := New(svc, uuid.New(), testDebounce)
	defer c.Close()

	sub := c.Subscribe()

	c.Search(transport.SearchRequest{Text: "first"})
	firstCall := awaitCall(t, svc)

	c.Search(transport.SearchRequest{Text: "second"})
	secondCall := awaitCall(t, svc)

	// The newer query resolves first, then the stale one comes back.
	close(secondCall.release)
	snap := awaitState(t, sub, StateReady)
	if snap.Results[0].Title != "second" {
		t.Fatalf("expected results for the newer query, got %q", snap.Results[0].Title)
	}

	close(firstCall.release)
	time.Sleep(20 * time.Millisecond)

	final := c.Snapshot()
	if final.State != StateReady || final.Results[0].Title != "second" {
		t.Fatalf("stale response overwrote newer results: %+v", final)
	}
}

func TestClear_InvalidatesInFlightSearch(t *testing.T) {
	svc := newStubSearcher()
	c := New(svc, uuid.New(), testDebounce)
	defer c.Close()

	c.Search(transport.SearchRequest{Text: "milk"})
	call := awaitCall(t, svc)

	c.Clear()
	close(call.release)
	time.Sleep(20 * time.Millisecond)

	snap := c.Snapshot()
	if snap.State != StateIdle {
		t.Fatalf("expected idle after Clear, got %v", snap.State)
	}
	if len(snap.Results) != 0 {
		t.Fatalf("expected empty results after Clear, got %d", len(snap.Results))
	}
}

func TestClear_CancelsPendingQuery(t *testing.T) {
	svc := newStubSearcher()
	c := New(svc, uuid.New(), 50*time.Millisecond)
	defer c.Close()

	c.Search(transport.SearchRequest{Text: "milk"})
	c.Clear()

	time.Sleep(100 * time.Millisecond)
	if svc.callCount() != 0 {
		t.Fatalf("expected the pending query to never dispatch, got %d calls", svc.callCount())
	}
	if got := c.Snapshot().State; got != StateIdle {
		t.Fatalf("expected idle, got %v", got)
	}
}

func TestSearch_ServiceErrorEntersFailed(t *testing.T) {
	svc := newStubSearcher()
	svc.err = errors.New("connection reset")
	c := New(svc, uuid.New(), testDebounce)
	defer c.Close()

	sub := c.Subscribe()

	c.Search(transport.SearchRequest{Text: "milk"})
	call := awaitCall(t, svc)
	close(call.release)

	snap := awaitState(t, sub, StateFailed)
	if !apperr.Is(snap.Err, apperr.KindUnknown) {
		t.Fatalf("expected untyped errors normalized to unknown, got %v", snap.Err)
	}
}

func TestSearch_TypedServiceErrorIsPreserved(t *testing.T) {
	svc := newStubSearcher()
	svc.err = apperr.Unavailable("search backend unavailable")
	c := New(svc, uuid.New(), testDebounce)
	defer c.Close()

	sub := c.Subscribe()

	c.Search(transport.SearchRequest{Text: "milk"})
	call := awaitCall(t, svc)
	close(call.release)

	snap := awaitState(t, sub, StateFailed)
	if !apperr.Is(snap.Err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable kind preserved, got %v", snap.Err)
	}
}

func TestClose_DiscardsInFlightResponseAndClosesSubscribers(t *testing.T) {
	svc := newStubSearcher()
	c := New(svc, uuid.New(), testDebounce)

	sub := c.Subscribe()
	awaitState(t, sub, StateIdle)

	c.Search(transport.SearchRequest{Text: "milk"})
	call := awaitCall(t, svc)

	c.Close()
	close(call.release)
	time.Sleep(20 * time.Millisecond)

	for {
		snap, ok := <-sub
		if !ok {
			break
		}
		if snap.State == StateReady {
			t.Fatalf("response applied after Close")
		}
	}
}

func TestClose_FurtherCallsAreNoOps(t *testing.T) {
	svc := newStubSearcher()
	c := New(svc, uuid.New(), testDebounce)
	c.Close()

	c.Search(transport.SearchRequest{Text: "milk"})
	c.Clear()
	c.Close()

	time.Sleep(20 * time.Millisecond)
	if svc.callCount() != 0 {
		t.Fatalf("expected no dispatch after Close, got %d calls", svc.callCount())
	}
}

func TestSubscribe_AfterCloseReturnsClosedChannel(t *testing.T) {
	c := New(newStubSearcher(), uuid.New(), testDebounce)
	c.Close()

	ch := c.Subscribe()
	if _, ok := <-ch; ok {
		t.Fatalf("expected a closed channel from Subscribe after Close")
	}
}

func TestSubscribe_DeliversCurrentSnapshotFirst(t *testing.T) {
	c := New(newStubSearcher(), uuid.New(), testDebounce)
	defer c.Close()

	select {
	case snap := <-c.Subscribe():
		if snap.State != StateIdle {
			t.Fatalf("expected initial idle snapshot, got %v", snap.State)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for the initial snapshot")
	}
}
