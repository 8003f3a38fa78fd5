package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskReminderDue is the asynq task type for a todo item reminder coming
// due.
const TaskReminderDue = "tasks.reminder.due"

// ReminderDuePayload is the JSON payload carried by a reminder task.
type ReminderDuePayload struct {
	ItemID   string    `json:"itemId"`
	UserID   string    `json:"userId"`
	Title    string    `json:"title"`
	RemindAt time.Time `json:"remindAt"`
}

// NewReminderDueTask builds the asynq task for a reminder.
func NewReminderDueTask(payload ReminderDuePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal reminder payload: %w", err)
	}
	return asynq.NewTask(TaskReminderDue, data), nil
}

// ParseReminderDuePayload decodes a reminder task payload.
func ParseReminderDuePayload(task *asynq.Task) (ReminderDuePayload, error) {
	var payload ReminderDuePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReminderDuePayload{}, fmt.Errorf("unmarshal reminder payload: %w", err)
	}
	return payload, nil
}
