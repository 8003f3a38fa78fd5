package transport

import "github.com/google/uuid"

// CreateSpaceRequest creates a new space.
type CreateSpaceRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Icon string `json:"icon" validate:"max=50"`
}

// UpdateSpaceRequest updates an existing space. Nil fields are unchanged.
type UpdateSpaceRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon" validate:"omitempty,max=50"`
}

// SpaceResponse is a space in API responses.
type SpaceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// SpaceListResponse wraps a list of spaces.
type SpaceListResponse struct {
	Items []SpaceResponse `json:"items"`
	Total int             `json:"total"`
}
