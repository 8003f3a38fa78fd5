package repository

import (
	"context"

	"github.com/google/uuid"
)

// Note is a free-form piece of text with tags, living in a space.
type Note struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SpaceID   uuid.UUID
	Title     string
	Body      string
	Tags      []string
	CreatedAt string
	UpdatedAt string
}

// CreateParams holds the fields needed to create a note.
type CreateParams struct {
	UserID  uuid.UUID
	SpaceID uuid.UUID
	Title   string
	Body    string
	Tags    []string
}

// UpdateParams holds the fields to update on a note. Nil pointers leave
// the column unchanged.
type UpdateParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Title  *string
	Body   *string
	Tags   *[]string
}

// Repository defines data access for notes.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Note, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (Note, error)
	ListBySpace(ctx context.Context, userID, spaceID uuid.UUID) ([]Note, error)
	Update(ctx context.Context, params UpdateParams) (Note, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
