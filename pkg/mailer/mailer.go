package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Email is a single outbound message. BodyMarkdown is rendered to HTML
// before sending; recipients without HTML clients get the markdown
// source as the plain-text part.
type Email struct {
	To           string
	Subject      string
	BodyMarkdown string
}

// Sender delivers a rendered email. Implementations: Resend for
// production, Noop for environments without an API key.
type Sender interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// Mailer renders markdown emails and hands them to a Sender.
type Mailer struct {
	sender Sender
	md     goldmark.Markdown
}

// New creates a Mailer delivering through sender.
func New(sender Sender) *Mailer {
	return &Mailer{
		sender: sender,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}
}

// Send renders and delivers the email.
func (m *Mailer) Send(ctx context.Context, email Email) error {
	if email.To == "" {
		return ErrMissingRecipient
	}

	html, err := m.renderHTML(email.BodyMarkdown)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}
	if err := m.sender.Send(ctx, email.To, email.Subject, html, email.BodyMarkdown); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func (m *Mailer) renderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return fmt.Sprintf(htmlLayout, buf.String()), nil
}

// Minimal responsive layout shared by all transactional emails.
const htmlLayout = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:24px;background:#f6f6f6;font-family:-apple-system,Segoe UI,Roboto,sans-serif;color:#222;">
<div style="max-width:560px;margin:0 auto;background:#fff;border-radius:8px;padding:32px;">
%s
</div>
</body>
</html>`
