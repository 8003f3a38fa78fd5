// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"later_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserSignedUp is published when a new user successfully registers.
type UserSignedUp struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// =============================================================================
// Tasks Domain Events
// =============================================================================

// TaskReminderRequested is published when a todo item gains or changes a
// reminder time. The scheduler module subscribes and enqueues delivery.
type TaskReminderRequested struct {
	BaseEvent
	ItemID   uuid.UUID `json:"itemId"`
	ListID   uuid.UUID `json:"listId"`
	UserID   uuid.UUID `json:"userId"`
	Title    string    `json:"title"`
	RemindAt time.Time `json:"remindAt"`
}

func (e TaskReminderRequested) EventName() string { return "tasks.item.reminder_requested" }

// TaskCompleted is published when a todo item is marked complete.
type TaskCompleted struct {
	BaseEvent
	ItemID uuid.UUID `json:"itemId"`
	UserID uuid.UUID `json:"userId"`
}

func (e TaskCompleted) EventName() string { return "tasks.item.completed" }

// =============================================================================
// Spaces Domain Events
// =============================================================================

// SpaceDeleted is published when a space and all its content are removed.
type SpaceDeleted struct {
	BaseEvent
	SpaceID uuid.UUID `json:"spaceId"`
	UserID  uuid.UUID `json:"userId"`
}

func (e SpaceDeleted) EventName() string { return "spaces.space.deleted" }
