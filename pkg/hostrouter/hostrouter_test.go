package hostrouter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bookingkit/pkg/hostrouter"
)

func tagHandler(tag string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(tag))
	})
}

func serve(t *testing.T, r *hostrouter.Router, host string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://placeholder/", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestRouter(t *testing.T) {
	t.Parallel()

	r := hostrouter.New(tagHandler("tenant"))
	r.Map("bookingkit.live", tagHandler("platform"))
	r.Map("www.bookingkit.live", tagHandler("platform"))
	r.Map("*.apps.bookingkit.live", tagHandler("apps"))

	t.Run("exact match", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "platform", serve(t, r, "bookingkit.live"))
		assert.Equal(t, "platform", serve(t, r, "www.bookingkit.live"))
	})

	t.Run("case and port insensitive", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "platform", serve(t, r, "BookingKit.Live:8080"))
	})

	t.Run("wildcard matches subdomains", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "apps", serve(t, r, "acme.apps.bookingkit.live"))
		assert.Equal(t, "apps", serve(t, r, "deep.acme.apps.bookingkit.live"))
	})

	t.Run("wildcard excludes bare domain", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "tenant", serve(t, r, "apps.bookingkit.live"))
	})

	t.Run("unknown host falls back", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "tenant", serve(t, r, "booking.example.com"))
	})
}
