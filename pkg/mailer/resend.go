package mailer

import (
	"context"
	"errors"

	"github.com/resend/resend-go/v3"
)

// Config holds Resend delivery settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey    string `env:"RESEND_API_KEY"`
	FromEmail string `env:"RESEND_FROM_EMAIL" envDefault:"noreply@bookingkit.live"`
	FromName  string `env:"RESEND_FROM_NAME" envDefault:"BookingKit"`
}

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a Sender backed by Resend.
func NewResendSender(cfg Config) (*ResendSender, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &ResendSender{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.FromName + " <" + cfg.FromEmail + ">",
	}, nil
}

func (s *ResendSender) Send(ctx context.Context, to, subject, html, text string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// Noop discards all email. Use it when no Resend API key is configured.
type Noop struct{}

func (Noop) Send(context.Context, string, string, string, string) error { return nil }
