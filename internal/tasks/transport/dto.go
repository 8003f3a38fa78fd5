package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateTodoListRequest creates a new todo list in a space.
type CreateTodoListRequest struct {
	SpaceID     string `json:"spaceId" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateTodoListRequest updates a todo list. Nil fields are unchanged.
type UpdateTodoListRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// TodoListResponse is a todo list in API responses.
type TodoListResponse struct {
	ID          uuid.UUID `json:"id"`
	SpaceID     uuid.UUID `json:"spaceId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// TodoListListResponse wraps a list of todo lists.
type TodoListListResponse struct {
	Items []TodoListResponse `json:"items"`
	Total int                `json:"total"`
}

// CreateTodoItemRequest creates a new item in a todo list.
type CreateTodoItemRequest struct {
	Title    string     `json:"title" validate:"required,min=1,max=200"`
	Note     string     `json:"note" validate:"max=5000"`
	Tags     []string   `json:"tags" validate:"max=20,dive,min=1,max=50"`
	RemindAt *time.Time `json:"remindAt"`
}

// UpdateTodoItemRequest updates a todo item. Nil fields are unchanged.
type UpdateTodoItemRequest struct {
	Title *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Note  *string   `json:"note" validate:"omitempty,max=5000"`
	Tags  *[]string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// SetReminderRequest sets or replaces a todo item's reminder.
type SetReminderRequest struct {
	RemindAt time.Time `json:"remindAt" validate:"required"`
}

// TodoItemResponse is a todo item in API responses.
type TodoItemResponse struct {
	ID        uuid.UUID  `json:"id"`
	ListID    uuid.UUID  `json:"listId"`
	Title     string     `json:"title"`
	Note      string     `json:"note"`
	Tags      []string   `json:"tags"`
	Done      bool       `json:"done"`
	RemindAt  *time.Time `json:"remindAt,omitempty"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// TodoItemListResponse wraps a list of todo items.
type TodoItemListResponse struct {
	Items []TodoItemResponse `json:"items"`
	Total int                `json:"total"`
}
