package repository

import (
	"context"

	"github.com/google/uuid"
)

// Space is a user-defined grouping of notes, todo lists, and lists.
type Space struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Icon      string
	CreatedAt string
	UpdatedAt string
}

// CreateParams holds the fields needed to create a space.
type CreateParams struct {
	UserID uuid.UUID
	Name   string
	Icon   string
}

// UpdateParams holds the fields to update on a space. Nil pointers leave
// the column unchanged.
type UpdateParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   *string
	Icon   *string
}

// Repository defines data access for spaces.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Space, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (Space, error)
	List(ctx context.Context, userID uuid.UUID) ([]Space, error)
	Update(ctx context.Context, params UpdateParams) (Space, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
