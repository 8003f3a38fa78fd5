// Package controller coordinates bursty search input against the search
// service. It debounces rapid queries, guards against stale responses, and
// exposes a single observable state for consumers such as the live search
// SSE handler.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"later_backend/internal/search/transport"
	"later_backend/platform/apperr"
)

// DefaultDebounce is the quiet period a burst of queries must observe
// before one is dispatched.
const DefaultDebounce = 300 * time.Millisecond

// State is the controller's coarse lifecycle state.
type State int

const (
	// StateIdle holds no results and no error; nothing is in flight.
	StateIdle State = iota
	// StateLoading means a search has been accepted and not yet resolved.
	StateLoading
	// StateReady holds the latest successful result list.
	StateReady
	// StateFailed holds the latest error.
	StateFailed
)

// String implements fmt.Stringer for logging and SSE payloads.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the controller state.
type Snapshot struct {
	State   State
	Results []transport.SearchResultResponse
	Err     error
}

// Searcher is the service boundary the controller drives.
type Searcher interface {
	Search(ctx context.Context, userID uuid.UUID, req transport.SearchRequest) ([]transport.SearchResultResponse, error)
}

// Controller mediates between rapid user input and the search service.
//
// Invariants: at most one debounce timer is pending, and firing it is the
// only path that invokes the service. Each dispatched search carries a
// sequence number; a response is applied only while its sequence is still
// the latest, so a slow stale response never overwrites a newer one and
// Clear/Close invalidate anything in flight. After Close no state is
// mutated.
type Controller struct {
	svc      Searcher
	userID   uuid.UUID
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timer   *time.Timer
	pending *transport.SearchRequest
	seq     uint64
	alive   bool
	snap    Snapshot
	subs    []chan Snapshot
}

// New creates a controller for one logical search context (one user, one
// session). A non-positive debounce falls back to DefaultDebounce.
func New(svc Searcher, userID uuid.UUID, debounce time.Duration) *Controller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		svc:      svc,
		userID:   userID,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
		alive:    true,
		snap: Snapshot{
			State:   StateIdle,
			Results: []transport.SearchResultResponse{},
		},
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Subscribe registers an observer. The channel immediately receives the
// current snapshot, then every subsequent state change; it is closed by
// Close. Slow subscribers drop intermediate snapshots rather than block
// the controller.
func (c *Controller) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 8)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		close(ch)
		return ch
	}
	ch <- c.snap
	c.subs = append(c.subs, ch)
	return ch
}

// Search accepts a query, enters Loading synchronously, and (re)starts the
// debounce timer. A query superseded within the debounce window is
// discarded and never reaches the service.
func (c *Controller) Search(req transport.SearchRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}

	c.setSnapshotLocked(Snapshot{State: StateLoading, Results: c.snap.Results})

	if c.timer != nil {
		c.timer.Stop()
	}
	r := req
	c.pending = &r
	c.timer = time.AfterFunc(c.debounce, c.fire)
}

// Clear cancels any pending query, invalidates any in-flight search, and
// resets to Idle with an empty list.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = nil
	c.seq++ // orphan any in-flight response

	c.setSnapshotLocked(Snapshot{
		State:   StateIdle,
		Results: []transport.SearchResultResponse{},
	})
}

// Close tears the controller down: the pending timer is cancelled, the
// dispatch context is cancelled, and subscriber channels are closed. Any
// in-flight response arriving afterwards is discarded without mutating
// state.
func (c *Controller) Close() {
	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		return
	}
	c.alive = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pending = nil
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	c.cancel()
	for _, ch := range subs {
		close(ch)
	}
}

// fire runs when the debounce timer expires. It dispatches the pending
// query to the service and applies the outcome only if the controller is
// still alive and no newer dispatch (or Clear) happened meanwhile.
func (c *Controller) fire() {
	c.mu.Lock()
	if !c.alive || c.pending == nil {
		c.mu.Unlock()
		return
	}
	req := *c.pending
	c.pending = nil
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	results, err := c.svc.Search(c.ctx, c.userID, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.alive || seq != c.seq {
		return
	}

	if err != nil {
		if _, ok := err.(*apperr.Error); !ok {
			err = apperr.Unknown("search failed", err)
		}
		c.setSnapshotLocked(Snapshot{State: StateFailed, Results: c.snap.Results, Err: err})
		return
	}

	c.setSnapshotLocked(Snapshot{State: StateReady, Results: results})
}

// setSnapshotLocked replaces the current snapshot and notifies
// subscribers without blocking. Callers must hold c.mu.
func (c *Controller) setSnapshotLocked(snap Snapshot) {
	c.snap = snap
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
