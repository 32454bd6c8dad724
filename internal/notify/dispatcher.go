// Package notify is the best-effort side channel for status changes.
// Delivery failures are logged and swallowed; nothing here ever fails or
// delays the request that triggered it.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jiseti/jiseti-api/internal/models"
)

// Mailer sends one email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender sends one text message.
type SMSSender interface {
	Send(ctx context.Context, to, message string) error
}

// DeliveryResult records the outcome of one channel attempt.
type DeliveryResult struct {
	Channel   string
	Recipient string
	Delivered bool
	Err       error
}

// Dispatcher fans a status change out to the owner's registered channels.
// Each attempt gets its own timeout so slow providers cannot stall the
// process.
type Dispatcher struct {
	mailer  Mailer
	sms     SMSSender
	timeout time.Duration
}

// NewDispatcher builds a dispatcher. The sms sender may be nil when no
// SMS provider is configured.
func NewDispatcher(mailer Mailer, sms SMSSender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{mailer: mailer, sms: sms, timeout: timeout}
}

// StatusChanged fires delivery in the background and returns immediately.
func (d *Dispatcher) StatusChanged(user *models.User, record *models.Record, oldStatus, newStatus string) {
	go func() {
		for _, res := range d.Dispatch(user, record, oldStatus, newStatus) {
			if res.Delivered {
				slog.Info("notification delivered",
					"channel", res.Channel, "record_id", record.ID, "user_id", user.ID)
			} else {
				slog.Error("notification delivery failed",
					"action", "notify",
					"channel", res.Channel, "record_id", record.ID.String(),
					"user_id", user.ID.String(), "error", res.Err)
			}
		}
	}()
}

// Dispatch attempts every configured channel synchronously and reports
// per-channel outcomes. At most one attempt per channel, no retries.
func (d *Dispatcher) Dispatch(user *models.User, record *models.Record, oldStatus, newStatus string) []DeliveryResult {
	subject := fmt.Sprintf("Status update for your %s record", record.Type)
	body := fmt.Sprintf(
		"Hello %s,\n\nThe status of your record %q has been updated:\n - Old status: %s\n - New status: %s\n",
		user.Username, record.Title, oldStatus, newStatus)

	var results []DeliveryResult

	if d.mailer != nil && user.Email != "" {
		results = append(results, d.attempt("email", user.Email, func(ctx context.Context) error {
			return d.mailer.Send(ctx, user.Email, subject, body)
		}))
	}

	if d.sms != nil && user.Phone != nil && *user.Phone != "" {
		text := fmt.Sprintf("Your record %q is now %s", record.Title, newStatus)
		results = append(results, d.attempt("sms", *user.Phone, func(ctx context.Context) error {
			return d.sms.Send(ctx, *user.Phone, text)
		}))
	}

	return results
}

func (d *Dispatcher) attempt(channel, recipient string, send func(context.Context) error) DeliveryResult {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err := send(ctx)
	return DeliveryResult{
		Channel:   channel,
		Recipient: recipient,
		Delivered: err == nil,
		Err:       err,
	}
}
