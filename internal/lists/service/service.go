package service

import (
	"context"

	"github.com/google/uuid"

	"later_backend/internal/lists/repository"
	"later_backend/internal/lists/transport"
	"later_backend/platform/apperr"
	"later_backend/platform/logger"
)

// Service provides business logic for lists and their items.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new lists service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateList creates a new list in a space.
func (s *Service) CreateList(ctx context.Context, userID uuid.UUID, req transport.CreateListRequest) (transport.ListResponse, error) {
	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return transport.ListResponse{}, apperr.Validation("invalid space id")
	}

	l, err := s.repo.CreateList(ctx, repository.CreateListParams{
		UserID:      userID,
		SpaceID:     spaceID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return transport.ListResponse{}, err
	}

	s.log.Info("list created", "id", l.ID, "space_id", l.SpaceID)
	return toListResponse(l), nil
}

// GetListByID retrieves one of the user's lists.
func (s *Service) GetListByID(ctx context.Context, userID, id uuid.UUID) (transport.ListResponse, error) {
	l, err := s.repo.GetListByID(ctx, userID, id)
	if err != nil {
		return transport.ListResponse{}, err
	}
	return toListResponse(l), nil
}

// ListsBySpace retrieves all lists in a space.
func (s *Service) ListsBySpace(ctx context.Context, userID, spaceID uuid.UUID) (transport.ListListResponse, error) {
	items, err := s.repo.ListsBySpace(ctx, userID, spaceID)
	if err != nil {
		return transport.ListListResponse{}, err
	}

	responses := make([]transport.ListResponse, len(items))
	for i, l := range items {
		responses[i] = toListResponse(l)
	}
	return transport.ListListResponse{Items: responses, Total: len(responses)}, nil
}

// UpdateList updates one of the user's lists.
func (s *Service) UpdateList(ctx context.Context, userID, id uuid.UUID, req transport.UpdateListRequest) (transport.ListResponse, error) {
	l, err := s.repo.UpdateList(ctx, repository.UpdateListParams{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return transport.ListResponse{}, err
	}

	s.log.Info("list updated", "id", l.ID)
	return toListResponse(l), nil
}

// DeleteList removes a list and its items.
func (s *Service) DeleteList(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteList(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info("list deleted", "id", id)
	return nil
}

// CreateItem creates a new item in a list the user owns.
func (s *Service) CreateItem(ctx context.Context, userID, listID uuid.UUID, req transport.CreateListItemRequest) (transport.ListItemResponse, error) {
	// The list lookup doubles as the ownership check.
	if _, err := s.repo.GetListByID(ctx, userID, listID); err != nil {
		return transport.ListItemResponse{}, err
	}

	li, err := s.repo.CreateItem(ctx, repository.CreateItemParams{
		UserID: userID,
		ListID: listID,
		Title:  req.Title,
		Note:   req.Note,
	})
	if err != nil {
		return transport.ListItemResponse{}, err
	}

	s.log.Info("list item created", "id", li.ID, "list_id", li.ListID)
	return toItemResponse(li), nil
}

// GetItemByID retrieves one of the user's list items.
func (s *Service) GetItemByID(ctx context.Context, userID, id uuid.UUID) (transport.ListItemResponse, error) {
	li, err := s.repo.GetItemByID(ctx, userID, id)
	if err != nil {
		return transport.ListItemResponse{}, err
	}
	return toItemResponse(li), nil
}

// ItemsByList retrieves all items in a list.
func (s *Service) ItemsByList(ctx context.Context, userID, listID uuid.UUID) (transport.ListItemListResponse, error) {
	items, err := s.repo.ItemsByList(ctx, userID, listID)
	if err != nil {
		return transport.ListItemListResponse{}, err
	}

	responses := make([]transport.ListItemResponse, len(items))
	for i, li := range items {
		responses[i] = toItemResponse(li)
	}
	return transport.ListItemListResponse{Items: responses, Total: len(responses)}, nil
}

// UpdateItem updates one of the user's list items.
func (s *Service) UpdateItem(ctx context.Context, userID, id uuid.UUID, req transport.UpdateListItemRequest) (transport.ListItemResponse, error) {
	li, err := s.repo.UpdateItem(ctx, repository.UpdateItemParams{
		ID:     id,
		UserID: userID,
		Title:  req.Title,
		Note:   req.Note,
	})
	if err != nil {
		return transport.ListItemResponse{}, err
	}

	s.log.Info("list item updated", "id", li.ID)
	return toItemResponse(li), nil
}

// DeleteItem removes a list item.
func (s *Service) DeleteItem(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info("list item deleted", "id", id)
	return nil
}

// toListResponse converts a repository List to a transport response.
func toListResponse(l repository.List) transport.ListResponse {
	return transport.ListResponse{
		ID:          l.ID,
		SpaceID:     l.SpaceID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// toItemResponse converts a repository ListItem to a transport response.
func toItemResponse(li repository.ListItem) transport.ListItemResponse {
	return transport.ListItemResponse{
		ID:        li.ID,
		ListID:    li.ListID,
		Title:     li.Title,
		Note:      li.Note,
		CreatedAt: li.CreatedAt,
		UpdatedAt: li.UpdatedAt,
	}
}
