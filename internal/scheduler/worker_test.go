package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	authrepo "later_backend/internal/auth/repository"
	tasksrepo "later_backend/internal/tasks/repository"
	"later_backend/platform/apperr"
	"later_backend/platform/logger"
)

type fakeTasksRepo struct {
	tasksrepo.Repository

	items map[uuid.UUID]tasksrepo.TodoItem
}

func (f *fakeTasksRepo) GetItemByID(ctx context.Context, userID, id uuid.UUID) (tasksrepo.TodoItem, error) {
	item, ok := f.items[id]
	if !ok || item.UserID != userID {
		return tasksrepo.TodoItem{}, apperr.NotFound("todo item not found")
	}
	return item, nil
}

type fakeUsersRepo struct {
	authrepo.Repository

	users map[uuid.UUID]authrepo.User
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id uuid.UUID) (authrepo.User, error) {
	user, ok := f.users[id]
	if !ok {
		return authrepo.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

type recordingSender struct {
	sent []string
}

func (s *recordingSender) SendWelcomeEmail(ctx context.Context, toEmail string) error {
	return nil
}

func (s *recordingSender) SendReminderEmail(ctx context.Context, toEmail, itemTitle string, remindAt time.Time) error {
	s.sent = append(s.sent, toEmail+": "+itemTitle)
	return nil
}

type workerFixture struct {
	worker *Worker
	tasks  *fakeTasksRepo
	users  *fakeUsersRepo
	mail   *recordingSender
}

func newWorkerFixture() workerFixture {
	tasks := &fakeTasksRepo{items: make(map[uuid.UUID]tasksrepo.TodoItem)}
	users := &fakeUsersRepo{users: make(map[uuid.UUID]authrepo.User)}
	mail := &recordingSender{}
	return workerFixture{
		worker: &Worker{tasks: tasks, users: users, mail: mail, log: logger.New("test")},
		tasks:  tasks,
		users:  users,
		mail:   mail,
	}
}

func (f workerFixture) seed(remindAt time.Time, done bool) (tasksrepo.TodoItem, authrepo.User) {
	user := authrepo.User{ID: uuid.New(), Email: "reader@example.com"}
	f.users.users[user.ID] = user

	item := tasksrepo.TodoItem{
		ID:       uuid.New(),
		UserID:   user.ID,
		ListID:   uuid.New(),
		Title:    "water the plants",
		Done:     done,
		RemindAt: &remindAt,
	}
	f.tasks.items[item.ID] = item
	return item, user
}

func TestHandleReminderDue_DeliversCurrentReminder(t *testing.T) {
	f := newWorkerFixture()
	remindAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	item, user := f.seed(remindAt, false)

	task, err := NewReminderDueTask(ReminderDuePayload{
		ItemID: item.ID.String(), UserID: item.UserID.String(), Title: item.Title, RemindAt: remindAt,
	})
	if err != nil {
		t.Fatalf("expected task to build, got %v", err)
	}

	if err := f.worker.handleReminderDue(context.Background(), task); err != nil {
		t.Fatalf("expected delivery to succeed, got %v", err)
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != user.Email+": "+item.Title {
		t.Fatalf("expected one reminder email, got %v", f.mail.sent)
	}
}

func TestHandleReminderDue_DeletedItemIsDroppedSilently(t *testing.T) {
	f := newWorkerFixture()
	remindAt := time.Now().Add(time.Hour)

	task, err := NewReminderDueTask(ReminderDuePayload{
		ItemID: uuid.NewString(), UserID: uuid.NewString(), Title: "gone", RemindAt: remindAt,
	})
	if err != nil {
		t.Fatalf("expected task to build, got %v", err)
	}

	if err := f.worker.handleReminderDue(context.Background(), task); err != nil {
		t.Fatalf("expected a deleted item to be skipped without error, got %v", err)
	}
	if len(f.mail.sent) != 0 {
		t.Fatalf("expected no email for a deleted item, got %v", f.mail.sent)
	}
}

func TestHandleReminderDue_CompletedItemIsSkipped(t *testing.T) {
	f := newWorkerFixture()
	remindAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	item, _ := f.seed(remindAt, true)

	task, err := NewReminderDueTask(ReminderDuePayload{
		ItemID: item.ID.String(), UserID: item.UserID.String(), Title: item.Title, RemindAt: remindAt,
	})
	if err != nil {
		t.Fatalf("expected task to build, got %v", err)
	}

	if err := f.worker.handleReminderDue(context.Background(), task); err != nil {
		t.Fatalf("expected a completed item to be skipped without error, got %v", err)
	}
	if len(f.mail.sent) != 0 {
		t.Fatalf("expected no email for a completed item, got %v", f.mail.sent)
	}
}

func TestHandleReminderDue_RescheduledReminderIsStale(t *testing.T) {
	f := newWorkerFixture()
	current := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	item, _ := f.seed(current, false)

	// The enqueued payload carries the old time; the item has moved on.
	stale := current.Add(-time.Hour)
	task, err := NewReminderDueTask(ReminderDuePayload{
		ItemID: item.ID.String(), UserID: item.UserID.String(), Title: item.Title, RemindAt: stale,
	})
	if err != nil {
		t.Fatalf("expected task to build, got %v", err)
	}

	if err := f.worker.handleReminderDue(context.Background(), task); err != nil {
		t.Fatalf("expected a stale reminder to be skipped without error, got %v", err)
	}
	if len(f.mail.sent) != 0 {
		t.Fatalf("expected no email for a stale reminder, got %v", f.mail.sent)
	}
}

func TestHandleReminderDue_MalformedPayloadErrors(t *testing.T) {
	f := newWorkerFixture()

	task, err := NewReminderDueTask(ReminderDuePayload{ItemID: "not-a-uuid", UserID: uuid.NewString()})
	if err != nil {
		t.Fatalf("expected task to build, got %v", err)
	}
	if err := f.worker.handleReminderDue(context.Background(), task); err == nil {
		t.Fatalf("expected an error for a malformed item id")
	}
}
