package transport

import "github.com/google/uuid"

// CreateListRequest creates a new list in a space.
type CreateListRequest struct {
	SpaceID     string `json:"spaceId" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateListRequest updates a list. Nil fields are unchanged.
type UpdateListRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// ListResponse is a list in API responses.
type ListResponse struct {
	ID          uuid.UUID `json:"id"`
	SpaceID     uuid.UUID `json:"spaceId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ListListResponse wraps a list of lists.
type ListListResponse struct {
	Items []ListResponse `json:"items"`
	Total int            `json:"total"`
}

// CreateListItemRequest creates a new item in a list.
type CreateListItemRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Note  string `json:"note" validate:"max=5000"`
}

// UpdateListItemRequest updates a list item. Nil fields are unchanged.
type UpdateListItemRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Note  *string `json:"note" validate:"omitempty,max=5000"`
}

// ListItemResponse is a list item in API responses.
type ListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ListID    uuid.UUID `json:"listId"`
	Title     string    `json:"title"`
	Note      string    `json:"note"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// ListItemListResponse wraps a list of list items.
type ListItemListResponse struct {
	Items []ListItemResponse `json:"items"`
	Total int                `json:"total"`
}
