package repository

import (
	"context"

	"github.com/google/uuid"
)

// List is a named collection of reference items in a space, for content
// that is collected rather than completed (books, links, ideas).
type List struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SpaceID     uuid.UUID
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// ListItem is a single entry in a list.
type ListItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ListID    uuid.UUID
	Title     string
	Note      string
	CreatedAt string
	UpdatedAt string
}

// CreateListParams holds the fields needed to create a list.
type CreateListParams struct {
	UserID      uuid.UUID
	SpaceID     uuid.UUID
	Name        string
	Description string
}

// UpdateListParams holds the fields to update on a list.
type UpdateListParams struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        *string
	Description *string
}

// CreateItemParams holds the fields needed to create a list item.
type CreateItemParams struct {
	UserID uuid.UUID
	ListID uuid.UUID
	Title  string
	Note   string
}

// UpdateItemParams holds the fields to update on a list item.
type UpdateItemParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Title  *string
	Note   *string
}

// Repository defines data access for lists and their items.
type Repository interface {
	CreateList(ctx context.Context, params CreateListParams) (List, error)
	GetListByID(ctx context.Context, userID, id uuid.UUID) (List, error)
	ListsBySpace(ctx context.Context, userID, spaceID uuid.UUID) ([]List, error)
	UpdateList(ctx context.Context, params UpdateListParams) (List, error)
	DeleteList(ctx context.Context, userID, id uuid.UUID) error

	CreateItem(ctx context.Context, params CreateItemParams) (ListItem, error)
	GetItemByID(ctx context.Context, userID, id uuid.UUID) (ListItem, error)
	ItemsByList(ctx context.Context, userID, listID uuid.UUID) ([]ListItem, error)
	UpdateItem(ctx context.Context, params UpdateItemParams) (ListItem, error)
	DeleteItem(ctx context.Context, userID, id uuid.UUID) error
}
