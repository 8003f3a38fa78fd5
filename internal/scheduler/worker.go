package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	authrepo "later_backend/internal/auth/repository"
	"later_backend/internal/email"
	tasksrepo "later_backend/internal/tasks/repository"
	"later_backend/platform/apperr"
	"later_backend/platform/config"
	"later_backend/platform/logger"
)

// Worker consumes scheduled reminder tasks and delivers them by email.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	tasks  tasksrepo.Repository
	users  authrepo.Repository
	mail   email.Sender
	log    *logger.Logger
}

// NewWorker creates an asynq worker bound to the reminder queue.
func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, mail email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		tasks:  tasksrepo.New(pool),
		users:  authrepo.New(pool),
		mail:   mail,
		log:    log,
	}

	mux.HandleFunc(TaskReminderDue, w.handleReminderDue)

	return w, nil
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleReminderDue delivers one reminder. A reminder that was cleared,
// rescheduled, or whose item was completed or deleted in the meantime is
// dropped silently.
func (w *Worker) handleReminderDue(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReminderDuePayload(task)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(payload.ItemID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return err
	}

	item, err := w.tasks.GetItemByID(ctx, userID, itemID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.ReminderEvent("skipped_deleted", payload.ItemID, nil)
			return nil
		}
		return err
	}

	if item.Done || item.RemindAt == nil || !item.RemindAt.Equal(payload.RemindAt) {
		w.log.ReminderEvent("skipped_stale", payload.ItemID, nil)
		return nil
	}

	user, err := w.users.GetUserByID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}

	if err := w.mail.SendReminderEmail(ctx, user.Email, item.Title, *item.RemindAt); err != nil {
		w.log.ReminderEvent("delivery_failed", payload.ItemID, err)
		return err
	}

	w.log.ReminderEvent("delivered", payload.ItemID, nil)
	return nil
}
