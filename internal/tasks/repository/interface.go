package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TodoList is a named collection of todo items in a space.
type TodoList struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SpaceID     uuid.UUID
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// TodoItem is a single actionable entry in a todo list.
type TodoItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ListID    uuid.UUID
	Title     string
	Note      string
	Tags      []string
	Done      bool
	RemindAt  *time.Time
	CreatedAt string
	UpdatedAt string
}

// CreateListParams holds the fields needed to create a todo list.
type CreateListParams struct {
	UserID      uuid.UUID
	SpaceID     uuid.UUID
	Name        string
	Description string
}

// UpdateListParams holds the fields to update on a todo list.
type UpdateListParams struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        *string
	Description *string
}

// CreateItemParams holds the fields needed to create a todo item.
type CreateItemParams struct {
	UserID   uuid.UUID
	ListID   uuid.UUID
	Title    string
	Note     string
	Tags     []string
	RemindAt *time.Time
}

// UpdateItemParams holds the fields to update on a todo item.
type UpdateItemParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Title  *string
	Note   *string
	Tags   *[]string
}

// Repository defines data access for todo lists and their items.
type Repository interface {
	CreateList(ctx context.Context, params CreateListParams) (TodoList, error)
	GetListByID(ctx context.Context, userID, id uuid.UUID) (TodoList, error)
	ListsBySpace(ctx context.Context, userID, spaceID uuid.UUID) ([]TodoList, error)
	UpdateList(ctx context.Context, params UpdateListParams) (TodoList, error)
	DeleteList(ctx context.Context, userID, id uuid.UUID) error

	CreateItem(ctx context.Context, params CreateItemParams) (TodoItem, error)
	GetItemByID(ctx context.Context, userID, id uuid.UUID) (TodoItem, error)
	ItemsByList(ctx context.Context, userID, listID uuid.UUID) ([]TodoItem, error)
	UpdateItem(ctx context.Context, params UpdateItemParams) (TodoItem, error)
	SetItemDone(ctx context.Context, userID, id uuid.UUID, done bool) (TodoItem, error)
	SetItemReminder(ctx context.Context, userID, id uuid.UUID, remindAt *time.Time) (TodoItem, error)
	DeleteItem(ctx context.Context, userID, id uuid.UUID) error
}
