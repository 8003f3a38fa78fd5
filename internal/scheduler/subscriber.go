package scheduler

import (
	"context"

	domainevents "later_backend/internal/events"
	"later_backend/platform/events"
	"later_backend/platform/logger"
)

// Subscriber bridges the in-process event bus to the job queue: reminder
// requests published by the tasks module become scheduled asynq tasks.
type Subscriber struct {
	scheduler ReminderScheduler
	log       *logger.Logger
}

// NewSubscriber creates a subscriber that enqueues reminders.
func NewSubscriber(scheduler ReminderScheduler, log *logger.Logger) *Subscriber {
	return &Subscriber{scheduler: scheduler, log: log}
}

// Register subscribes to the reminder request event.
func (s *Subscriber) Register(bus events.Bus) {
	bus.Subscribe(domainevents.TaskReminderRequested{}.EventName(), s)
}

// Handle routes events to the scheduler.
func (s *Subscriber) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(domainevents.TaskReminderRequested)
	if !ok {
		return nil
	}

	payload := ReminderDuePayload{
		ItemID:   e.ItemID.String(),
		UserID:   e.UserID.String(),
		Title:    e.Title,
		RemindAt: e.RemindAt,
	}

	if err := s.scheduler.ScheduleReminder(ctx, payload, e.RemindAt); err != nil {
		s.log.ReminderEvent("schedule_failed", payload.ItemID, err)
		return err
	}

	s.log.ReminderEvent("scheduled", payload.ItemID, nil)
	return nil
}

var _ events.Handler = (*Subscriber)(nil)
