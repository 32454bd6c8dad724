package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jiseti/jiseti-api/internal/config"
)

// TwilioSMS sends text messages through the Twilio REST API.
type TwilioSMS struct {
	client *resty.Client
	sid    string
	from   string
}

// NewTwilioSMS returns nil when Twilio is not configured.
func NewTwilioSMS(cfg *config.Config) *TwilioSMS {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		return nil
	}
	client := resty.New().
		SetBaseURL("https://api.twilio.com").
		SetBasicAuth(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	return &TwilioSMS{
		client: client,
		sid:    cfg.TwilioAccountSID,
		from:   cfg.TwilioFromNumber,
	}
}

func (t *TwilioSMS) Send(ctx context.Context, to, message string) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   to,
			"From": t.from,
			"Body": message,
		}).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", t.sid))
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("twilio rejected message: %s", resp.Status())
	}
	return nil
}
