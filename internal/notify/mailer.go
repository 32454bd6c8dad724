package notify

import (
	"context"
	"errors"

	"github.com/jiseti/jiseti-api/internal/config"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends plain-text mail through a single SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns nil when SMTP credentials are not configured, so
// the dispatcher simply skips the channel.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		return nil
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	// gomail has no context support; bound the send with the caller's
	// deadline instead.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.Join(errors.New("smtp send timed out"), ctx.Err())
	}
}
