package transport

import "github.com/google/uuid"

// CreateNoteRequest creates a new note in a space.
type CreateNoteRequest struct {
	SpaceID string   `json:"spaceId" validate:"required,uuid"`
	Title   string   `json:"title" validate:"required,min=1,max=200"`
	Body    string   `json:"body"`
	Tags    []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
}

// UpdateNoteRequest updates an existing note. Nil fields are unchanged.
type UpdateNoteRequest struct {
	Title *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Body  *string   `json:"body"`
	Tags  *[]string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// NoteResponse is a note in API responses.
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	SpaceID   uuid.UUID `json:"spaceId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// NoteListResponse wraps a list of notes.
type NoteListResponse struct {
	Items []NoteResponse `json:"items"`
	Total int            `json:"total"`
}
