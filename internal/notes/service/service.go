package service

import (
	"context"

	"github.com/google/uuid"

	"later_backend/internal/notes/repository"
	"later_backend/internal/notes/transport"
	"later_backend/platform/apperr"
	"later_backend/platform/logger"
)

// Service provides business logic for notes.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new notes service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create creates a new note in a space.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateNoteRequest) (transport.NoteResponse, error) {
	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return transport.NoteResponse{}, apperr.Validation("invalid space id")
	}

	n, err := s.repo.Create(ctx, repository.CreateParams{
		UserID:  userID,
		SpaceID: spaceID,
		Title:   req.Title,
		Body:    req.Body,
		Tags:    req.Tags,
	})
	if err != nil {
		return transport.NoteResponse{}, err
	}

	s.log.Info("note created", "id", n.ID, "space_id", n.SpaceID)
	return toResponse(n), nil
}

// GetByID retrieves one of the user's notes.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (transport.NoteResponse, error) {
	n, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return transport.NoteResponse{}, err
	}
	return toResponse(n), nil
}

// ListBySpace retrieves all notes in a space.
func (s *Service) ListBySpace(ctx context.Context, userID, spaceID uuid.UUID) (transport.NoteListResponse, error) {
	items, err := s.repo.ListBySpace(ctx, userID, spaceID)
	if err != nil {
		return transport.NoteListResponse{}, err
	}

	responses := make([]transport.NoteResponse, len(items))
	for i, n := range items {
		responses[i] = toResponse(n)
	}
	return transport.NoteListResponse{Items: responses, Total: len(responses)}, nil
}

// Update updates one of the user's notes.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req transport.UpdateNoteRequest) (transport.NoteResponse, error) {
	n, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:     id,
		UserID: userID,
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
	})
	if err != nil {
		return transport.NoteResponse{}, err
	}

	s.log.Info("note updated", "id", n.ID)
	return toResponse(n), nil
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info("note deleted", "id", id)
	return nil
}

// toResponse converts a repository Note to a transport response.
func toResponse(n repository.Note) transport.NoteResponse {
	return transport.NoteResponse{
		ID:        n.ID,
		SpaceID:   n.SpaceID,
		Title:     n.Title,
		Body:      n.Body,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
