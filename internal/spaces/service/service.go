package service

import (
	"context"

	"github.com/google/uuid"

	domainevents "later_backend/internal/events"
	"later_backend/internal/spaces/repository"
	"later_backend/internal/spaces/transport"
	"later_backend/platform/events"
	"later_backend/platform/logger"
)

// Service provides business logic for spaces.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new spaces service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Create creates a new space for the user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req transport.CreateSpaceRequest) (transport.SpaceResponse, error) {
	sp, err := s.repo.Create(ctx, repository.CreateParams{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
	})
	if err != nil {
		return transport.SpaceResponse{}, err
	}

	s.log.Info("space created", "id", sp.ID, "name", sp.Name)
	return toResponse(sp), nil
}

// GetByID retrieves one of the user's spaces.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (transport.SpaceResponse, error) {
	sp, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return transport.SpaceResponse{}, err
	}
	return toResponse(sp), nil
}

// List retrieves all of the user's spaces.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (transport.SpaceListResponse, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return transport.SpaceListResponse{}, err
	}

	responses := make([]transport.SpaceResponse, len(items))
	for i, sp := range items {
		responses[i] = toResponse(sp)
	}
	return transport.SpaceListResponse{Items: responses, Total: len(responses)}, nil
}

// Update updates one of the user's spaces.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req transport.UpdateSpaceRequest) (transport.SpaceResponse, error) {
	sp, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:     id,
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
	})
	if err != nil {
		return transport.SpaceResponse{}, err
	}

	s.log.Info("space updated", "id", sp.ID)
	return toResponse(sp), nil
}

// Delete removes a space and everything in it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, domainevents.SpaceDeleted{
		BaseEvent: domainevents.NewBaseEvent(),
		SpaceID:   id,
		UserID:    userID,
	})

	s.log.Info("space deleted", "id", id)
	return nil
}

// toResponse converts a repository Space to a transport response.
func toResponse(sp repository.Space) transport.SpaceResponse {
	return transport.SpaceResponse{
		ID:        sp.ID,
		Name:      sp.Name,
		Icon:      sp.Icon,
		CreatedAt: sp.CreatedAt,
		UpdatedAt: sp.UpdatedAt,
	}
}
