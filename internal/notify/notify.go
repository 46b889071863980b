// Package notify sends tenant-facing emails for domain lifecycle events.
package notify

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/bookingkit/pkg/mailer"
	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

// EmailNotifier implements tenant.Notifier on top of the mailer.
type EmailNotifier struct {
	mailer *mailer.Mailer
}

// NewEmailNotifier creates an EmailNotifier.
func NewEmailNotifier(m *mailer.Mailer) *EmailNotifier {
	return &EmailNotifier{mailer: m}
}

// DomainVerified tells the tenant their custom domain is live.
func (n *EmailNotifier) DomainVerified(ctx context.Context, t *tenant.Tenant) error {
	if t.Email == "" {
		return nil
	}
	return n.mailer.Send(ctx, mailer.Email{
		To:           t.Email,
		Subject:      fmt.Sprintf("%s is now live", t.CustomDomain),
		BodyMarkdown: fmt.Sprintf(domainVerifiedBody, t.Name, t.CustomDomain, t.CustomDomain, t.BookingPath()),
	})
}

const domainVerifiedBody = `# Your domain is verified

Hi %s,

Your custom domain **%s** passed DNS verification and now serves your
booking page:

https://%s%s

Visitors hitting the root of your domain are redirected there
automatically. If you change your DNS records later, we recheck them
periodically and will notify you if verification is lost.
`
