package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainevents "later_backend/internal/events"
	"later_backend/internal/tasks/repository"
	"later_backend/internal/tasks/transport"
	"later_backend/platform/apperr"
	"later_backend/platform/events"
	"later_backend/platform/logger"
)

// Service provides business logic for todo lists and items.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new tasks service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateList creates a new todo list in a space.
func (s *Service) CreateList(ctx context.Context, userID uuid.UUID, req transport.CreateTodoListRequest) (transport.TodoListResponse, error) {
	spaceID, err := uuid.Parse(req.SpaceID)
	if err != nil {
		return transport.TodoListResponse{}, apperr.Validation("invalid space id")
	}

	tl, err := s.repo.CreateList(ctx, repository.CreateListParams{
		UserID:      userID,
		SpaceID:     spaceID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return transport.TodoListResponse{}, err
	}

	s.log.Info("todo list created", "id", tl.ID, "space_id", tl.SpaceID)
	return toListResponse(tl), nil
}

// GetListByID retrieves one of the user's todo lists.
func (s *Service) GetListByID(ctx context.Context, userID, id uuid.UUID) (transport.TodoListResponse, error) {
	tl, err := s.repo.GetListByID(ctx, userID, id)
	if err != nil {
		return transport.TodoListResponse{}, err
	}
	return toListResponse(tl), nil
}

// ListsBySpace retrieves all todo lists in a space.
func (s *Service) ListsBySpace(ctx context.Context, userID, spaceID uuid.UUID) (transport.TodoListListResponse, error) {
	items, err := s.repo.ListsBySpace(ctx, userID, spaceID)
	if err != nil {
		return transport.TodoListListResponse{}, err
	}

	responses := make([]transport.TodoListResponse, len(items))
	for i, tl := range items {
		responses[i] = toListResponse(tl)
	}
	return transport.TodoListListResponse{Items: responses, Total: len(responses)}, nil
}

// UpdateList updates one of the user's todo lists.
func (s *Service) UpdateList(ctx context.Context, userID, id uuid.UUID, req transport.UpdateTodoListRequest) (transport.TodoListResponse, error) {
	tl, err := s.repo.UpdateList(ctx, repository.UpdateListParams{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return transport.TodoListResponse{}, err
	}

	s.log.Info("todo list updated", "id", tl.ID)
	return toListResponse(tl), nil
}

// DeleteList removes a todo list and its items.
func (s *Service) DeleteList(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteList(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info("todo list deleted", "id", id)
	return nil
}

// CreateItem creates a new todo item in a list the user owns. A reminder
// set at creation time is announced on the event bus.
func (s *Service) CreateItem(ctx context.Context, userID, listID uuid.UUID, req transport.CreateTodoItemRequest) (transport.TodoItemResponse, error) {
	if req.RemindAt != nil && req.RemindAt.Before(time.Now()) {
		return transport.TodoItemResponse{}, apperr.Validation("reminder must be in the future")
	}

	// The list lookup doubles as the ownership check.
	if _, err := s.repo.GetListByID(ctx, userID, listID); err != nil {
		return transport.TodoItemResponse{}, err
	}

	ti, err := s.repo.CreateItem(ctx, repository.CreateItemParams{
		UserID:   userID,
		ListID:   listID,
		Title:    req.Title,
		Note:     req.Note,
		Tags:     req.Tags,
		RemindAt: req.RemindAt,
	})
	if err != nil {
		return transport.TodoItemResponse{}, err
	}

	if ti.RemindAt != nil {
		s.publishReminder(ctx, ti)
	}

	s.log.Info("todo item created", "id", ti.ID, "list_id", ti.ListID)
	return toItemResponse(ti), nil
}

// GetItemByID retrieves one of the user's todo items.
func (s *Service) GetItemByID(ctx context.Context, userID, id uuid.UUID) (transport.TodoItemResponse, error) {
	ti, err := s.repo.GetItemByID(ctx, userID, id)
	if err != nil {
		return transport.TodoItemResponse{}, err
	}
	return toItemResponse(ti), nil
}

// ItemsByList retrieves all items in a todo list.
func (s *Service) ItemsByList(ctx context.Context, userID, listID uuid.UUID) (transport.TodoItemListResponse, error) {
	items, err := s.repo.ItemsByList(ctx, userID, listID)
	if err != nil {
		return transport.TodoItemListResponse{}, err
	}

	responses := make([]transport.TodoItemResponse, len(items))
	for i, ti := range items {
		responses[i] = toItemResponse(ti)
	}
	return transport.TodoItemListResponse{Items: responses, Total: len(responses)}, nil
}

// UpdateItem updates one of the user's todo items.
func (s *Service) UpdateItem(ctx context.Context, userID, id uuid.UUID, req transport.UpdateTodoItemRequest) (transport.TodoItemResponse, error) {
	ti, err := s.repo.UpdateItem(ctx, repository.UpdateItemParams{
		ID:     id,
		UserID: userID,
		Title:  req.Title,
		Note:   req.Note,
		Tags:   req.Tags,
	})
	if err != nil {
		return transport.TodoItemResponse{}, err
	}

	s.log.Info("todo item updated", "id", ti.ID)
	return toItemResponse(ti), nil
}

// CompleteItem marks a todo item done and announces the completion.
func (s *Service) CompleteItem(ctx context.Context, userID, id uuid.UUID) (transport.TodoItemResponse, error) {
	ti, err := s.repo.SetItemDone(ctx, userID, id, true)
	if err != nil {
		return transport.TodoItemResponse{}, err
	}

	s.bus.Publish(ctx, domainevents.TaskCompleted{
		BaseEvent: domainevents.NewBaseEvent(),
		ItemID:    ti.ID,
		UserID:    userID,
	})

	s.log.Info("todo item completed", "id", ti.ID)
	return toItemResponse(ti), nil
}

// ReopenItem marks a completed todo item open again.
func (s *Service) ReopenItem(ctx context.Context, userID, id uuid.UUID) (transport.TodoItemResponse, error) {
	ti, err := s.repo.SetItemDone(ctx, userID, id, false)
	if err != nil {
		return transport.TodoItemResponse{}, err
	}
	return toItemResponse(ti), nil
}

// SetReminder sets or replaces a todo item's reminder and announces it so
// the scheduler can enqueue delivery.
func (s *Service) SetReminder(ctx context.Context, userID, id uuid.UUID, req transport.SetReminderRequest) (transport.TodoItemResponse, error) {
	if req.RemindAt.Before(time.Now()) {
		return transport.TodoItemResponse{}, apperr.Validation("reminder must be in the future")
	}

	ti, err := s.repo.SetItemReminder(ctx, userID, id, &req.RemindAt)
	if err != nil {
		return transport.TodoItemResponse{}, err
	}

	s.publishReminder(ctx, ti)

	s.log.Info("todo item reminder set", "id", ti.ID, "remind_at", req.RemindAt)
	return toItemResponse(ti), nil
}

// ClearReminder removes a todo item's reminder.
func (s *Service) ClearReminder(ctx context.Context, userID, id uuid.UUID) (transport.TodoItemResponse, error) {
	ti, err := s.repo.SetItemReminder(ctx, userID, id, nil)
	if err != nil {
		return transport.TodoItemResponse{}, err
	}

	s.log.Info("todo item reminder cleared", "id", ti.ID)
	return toItemResponse(ti), nil
}

// DeleteItem removes a todo item.
func (s *Service) DeleteItem(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info("todo item deleted", "id", id)
	return nil
}

func (s *Service) publishReminder(ctx context.Context, ti repository.TodoItem) {
	s.bus.Publish(ctx, domainevents.TaskReminderRequested{
		BaseEvent: domainevents.NewBaseEvent(),
		ItemID:    ti.ID,
		ListID:    ti.ListID,
		UserID:    ti.UserID,
		Title:     ti.Title,
		RemindAt:  *ti.RemindAt,
	})
}

// toListResponse converts a repository TodoList to a transport response.
func toListResponse(tl repository.TodoList) transport.TodoListResponse {
	return transport.TodoListResponse{
		ID:          tl.ID,
		SpaceID:     tl.SpaceID,
		Name:        tl.Name,
		Description: tl.Description,
		CreatedAt:   tl.CreatedAt,
		UpdatedAt:   tl.UpdatedAt,
	}
}

// toItemResponse converts a repository TodoItem to a transport response.
func toItemResponse(ti repository.TodoItem) transport.TodoItemResponse {
	return transport.TodoItemResponse{
		ID:        ti.ID,
		ListID:    ti.ListID,
		Title:     ti.Title,
		Note:      ti.Note,
		Tags:      ti.Tags,
		Done:      ti.Done,
		RemindAt:  ti.RemindAt,
		CreatedAt: ti.CreatedAt,
		UpdatedAt: ti.UpdatedAt,
	}
}
