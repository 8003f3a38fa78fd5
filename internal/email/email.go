// Package email delivers transactional mail for the application. The
// SMTP sender is the production implementation; a noop sender stands in
// when email is disabled.
package email

import (
	"context"
	"time"
)

// Sender delivers application email.
type Sender interface {
	SendWelcomeEmail(ctx context.Context, toEmail string) error
	SendReminderEmail(ctx context.Context, toEmail, itemTitle string, remindAt time.Time) error
}

// NoopSender drops all mail. Used when EMAIL_ENABLED is false.
type NoopSender struct{}

func (NoopSender) SendWelcomeEmail(ctx context.Context, toEmail string) error {
	return nil
}

func (NoopSender) SendReminderEmail(ctx context.Context, toEmail, itemTitle string, remindAt time.Time) error {
	return nil
}

var _ Sender = NoopSender{}
