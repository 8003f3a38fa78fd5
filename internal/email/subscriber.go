package email

import (
	"context"

	domainevents "later_backend/internal/events"
	"later_backend/platform/events"
	"later_backend/platform/logger"
)

// Subscriber sends transactional mail in response to domain events.
type Subscriber struct {
	sender Sender
	log    *logger.Logger
}

// NewSubscriber creates an event subscriber around a sender.
func NewSubscriber(sender Sender, log *logger.Logger) *Subscriber {
	return &Subscriber{sender: sender, log: log}
}

// Register subscribes to the events that trigger mail.
func (s *Subscriber) Register(bus events.Bus) {
	bus.Subscribe(domainevents.UserSignedUp{}.EventName(), s)
}

// Handle routes events to the sender.
func (s *Subscriber) Handle(ctx context.Context, event events.Event) error {
	e, ok := event.(domainevents.UserSignedUp)
	if !ok {
		return nil
	}

	if err := s.sender.SendWelcomeEmail(ctx, e.Email); err != nil {
		s.log.Error("welcome email failed", "email", e.Email, "error", err)
		return err
	}
	return nil
}

var _ events.Handler = (*Subscriber)(nil)
