package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookingkit/internal/notify"
	"github.com/dmitrymomot/bookingkit/pkg/mailer"
	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

type captureSender struct {
	to, subject, html string
	calls             int
}

func (c *captureSender) Send(_ context.Context, to, subject, html, _ string) error {
	c.to, c.subject, c.html = to, subject, html
	c.calls++
	return nil
}

func TestDomainVerified(t *testing.T) {
	t.Parallel()

	t.Run("sends to tenant email", func(t *testing.T) {
		t.Parallel()
		sender := &captureSender{}
		n := notify.NewEmailNotifier(mailer.New(sender))

		err := n.DomainVerified(context.Background(), &tenant.Tenant{
			Name:         "Acme Cuts",
			Email:        "owner@acme.com",
			BookingSlug:  "acme-cuts",
			CustomDomain: "booking.acme.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "owner@acme.com", sender.to)
		assert.Equal(t, "booking.acme.com is now live", sender.subject)
		assert.Contains(t, sender.html, "booking.acme.com")
		assert.Contains(t, sender.html, "/book/acme-cuts/")
	})

	t.Run("skips tenants without email", func(t *testing.T) {
		t.Parallel()
		sender := &captureSender{}
		n := notify.NewEmailNotifier(mailer.New(sender))

		err := n.DomainVerified(context.Background(), &tenant.Tenant{CustomDomain: "booking.acme.com"})
		require.NoError(t, err)
		assert.Zero(t, sender.calls)
	})
}
