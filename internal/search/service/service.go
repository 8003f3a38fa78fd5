package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"later_backend/internal/search/repository"
	"later_backend/internal/search/transport"
	"later_backend/platform/apperr"
	"later_backend/platform/logger"
)

// maxQueryLength bounds the trimmed search text.
const maxQueryLength = 500

// Service validates search requests, delegates to the repository, and
// normalizes failures so callers always see a typed error.
type Service struct {
	repo repository.Searcher
	log  *logger.Logger
}

// New creates a new search service.
func New(repo repository.Searcher, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Search runs a full-text search scoped to the user and space.
//
// Blank text (after trimming) and an explicitly empty content-type filter
// are not errors: both short-circuit to an empty result without touching
// the backend. Structural problems (missing space, oversized text) are
// rejected before any I/O.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, req transport.SearchRequest) ([]transport.SearchResultResponse, error) {
	q, empty, err := s.validate(userID, req)
	if err != nil {
		return nil, err
	}
	if empty {
		return []transport.SearchResultResponse{}, nil
	}

	start := time.Now()
	results, err := s.repo.Search(ctx, q)
	if err != nil {
		if appErr, ok := err.(*apperr.Error); ok {
			// Recognized backend kinds pass through unchanged so callers
			// can decide retryability.
			return nil, appErr
		}
		return nil, apperr.Unknown("search failed", err).WithOp("search.Search")
	}

	s.log.SearchEvent(q.SpaceID.String(), len(q.Types), len(results), float64(time.Since(start).Milliseconds()))

	return toResponses(results), nil
}

// validate normalizes the request into a repository query. The boolean is
// true when the request legitimately maps to an empty result (blank text
// or an explicit empty content-type filter).
func (s *Service) validate(userID uuid.UUID, req transport.SearchRequest) (repository.Query, bool, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return repository.Query{}, true, nil
	}

	if strings.TrimSpace(req.SpaceID) == "" {
		return repository.Query{}, false, apperr.Validation("space id is required")
	}
	if len([]rune(text)) > maxQueryLength {
		return repository.Query{}, false, apperr.OutOfRange("search text exceeds 500 characters")
	}

	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return repository.Query{}, false, apperr.Validation("invalid space id")
	}

	types := transport.AllContentTypes()
	if req.ContentTypes != nil {
		if len(req.ContentTypes) == 0 {
			// An explicitly empty filter means "search nothing".
			return repository.Query{}, true, nil
		}
		for _, ct := range req.ContentTypes {
			if !ct.Valid() {
				return repository.Query{}, false, apperr.BadRequest("unknown content type " + string(ct))
			}
		}
		types = req.ContentTypes
	}

	return repository.Query{
		UserID:         userID,
		SpaceID:        spaceID,
		Text:           text,
		Types:          types,
		Tags:           req.Tags,
		IncludeContent: req.IncludeContent,
	}, false, nil
}

// toResponses converts repository results to transport responses. Child
// results get their parent's name as the subtitle.
func toResponses(results []repository.SearchResult) []transport.SearchResultResponse {
	responses := make([]transport.SearchResultResponse, len(results))
	for i, r := range results {
		resp := transport.SearchResultResponse{
			ID:         r.ID,
			Type:       r.Type,
			Title:      r.Title,
			Preview:    r.Preview,
			Tags:       r.Tags,
			UpdatedAt:  r.UpdatedAt,
			Content:    r.Content,
			ParentID:   r.ParentID,
			ParentName: r.ParentName,
		}
		if r.ParentName != nil {
			subtitle := *r.ParentName
			resp.Subtitle = &subtitle
		}
		responses[i] = resp
	}
	return responses
}
