package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type stubSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c stubSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c stubSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }
func (c stubSchedulerConfig) GetRedisTLSInsecure() bool { return false }

func TestReminderDueTask_RoundTrip(t *testing.T) {
	remindAt := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	payload := ReminderDuePayload{
		ItemID:   "0ec7a6f2-9a2f-4a40-9c96-2f7a32f21f3d",
		UserID:   "b7b7cdb3-4f35-47f1-8a9e-7a4f8e2d1c00",
		Title:    "water the plants",
		RemindAt: remindAt,
	}

	task, err := NewReminderDueTask(payload)
	if err != nil {
		t.Fatalf("expected task to build, got %v", err)
	}
	if task.Type() != TaskReminderDue {
		t.Fatalf("expected task type %q, got %q", TaskReminderDue, task.Type())
	}

	decoded, err := ParseReminderDuePayload(task)
	if err != nil {
		t.Fatalf("expected payload to decode, got %v", err)
	}
	if decoded.ItemID != payload.ItemID || decoded.UserID != payload.UserID || decoded.Title != payload.Title {
		t.Fatalf("payload changed in transit: %+v", decoded)
	}
	if !decoded.RemindAt.Equal(remindAt) {
		t.Fatalf("expected remind time %v, got %v", remindAt, decoded.RemindAt)
	}
}

func TestParseReminderDuePayload_RejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskReminderDue, []byte("not json"))
	if _, err := ParseReminderDuePayload(task); err == nil {
		t.Fatalf("expected an error for a malformed payload")
	}
}

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubSchedulerConfig{}); err == nil {
		t.Fatalf("expected an error when the redis url is missing")
	}
}

func TestClient_ScheduleReminderEnqueues(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := stubSchedulerConfig{redisURL: "redis://" + srv.Addr(), queue: "reminders"}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("expected client to connect, got %v", err)
	}
	defer client.Close()

	runAt := time.Now().Add(time.Hour)
	payload := ReminderDuePayload{ItemID: "item-1", UserID: "user-1", Title: "water the plants", RemindAt: runAt}
	if err := client.ScheduleReminder(context.Background(), payload, runAt); err != nil {
		t.Fatalf("expected reminder to enqueue, got %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	scheduled, err := inspector.ListScheduledTasks("reminders")
	if err != nil {
		t.Fatalf("expected to list scheduled tasks, got %v", err)
	}
	if len(scheduled) != 1 {
		t.Fatalf("expected 1 scheduled task, got %d", len(scheduled))
	}
	if scheduled[0].Type != TaskReminderDue {
		t.Fatalf("expected task type %q, got %q", TaskReminderDue, scheduled[0].Type)
	}

	decoded, err := ParseReminderDuePayload(asynq.NewTask(scheduled[0].Type, scheduled[0].Payload))
	if err != nil {
		t.Fatalf("expected payload to decode, got %v", err)
	}
	if decoded.ItemID != "item-1" {
		t.Fatalf("expected item id preserved, got %q", decoded.ItemID)
	}
}

func TestNilClient_ScheduleReminderIsNoOp(t *testing.T) {
	var c *Client
	if err := c.ScheduleReminder(context.Background(), ReminderDuePayload{}, time.Now()); err != nil {
		t.Fatalf("expected nil client to be a no-op, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil client close to be a no-op, got %v", err)
	}
}
