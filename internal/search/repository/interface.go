package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"later_backend/internal/search/transport"
)

// Query is a validated, normalized search request. Text is already trimmed
// and Types is the effective, non-empty set of content types to search.
type Query struct {
	UserID         uuid.UUID
	SpaceID        uuid.UUID
	Text           string
	Types          []transport.ContentType
	Tags           []string
	IncludeContent bool
}

// SearchResult is one row from a per-type full-text query, in the shared
// shape that lets results from all five tables merge into one sequence.
type SearchResult struct {
	ID         uuid.UUID
	Type       transport.ContentType
	Title      string
	Preview    string
	Tags       []string
	UpdatedAt  time.Time
	Content    *string
	ParentID   *uuid.UUID
	ParentName *string
}

// Searcher executes full-text searches across the content tables.
type Searcher interface {
	// Search runs one full-text query per requested content type, merges
	// the per-type results, and returns them sorted by UpdatedAt descending
	// (id ascending on ties).
	Search(ctx context.Context, q Query) ([]SearchResult, error)
}
