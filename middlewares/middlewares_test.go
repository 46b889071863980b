package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookingkit/middlewares"
	"github.com/dmitrymomot/bookingkit/pkg/logger"
	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

const (
	testHostingDomain = "apps.bookingkit.live"
	testDefaultDomain = "bookingkit.live"
)

// stubStore serves a single tenant by custom domain.
type stubStore struct {
	tenant tenant.Tenant
}

func (s *stubStore) FindByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	if id == s.tenant.ID {
		t := s.tenant
		return &t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *stubStore) FindByCustomDomain(_ context.Context, domain string) (*tenant.Tenant, error) {
	if strings.EqualFold(domain, s.tenant.CustomDomain) {
		t := s.tenant
		return &t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *stubStore) FindByCustomDomainAndType(ctx context.Context, domain string, dt tenant.DomainType) (*tenant.Tenant, error) {
	t, err := s.FindByCustomDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	if t.CustomDomainType != dt {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (s *stubStore) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	if slug == s.tenant.BookingSlug {
		t := s.tenant
		return &t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *stubStore) FindWithVerifiedDomain(context.Context) ([]tenant.Tenant, error) {
	return []tenant.Tenant{s.tenant}, nil
}

func (s *stubStore) Save(_ context.Context, t *tenant.Tenant) error {
	s.tenant = *t
	return nil
}

func newResolver(t *testing.T) *tenant.Resolver {
	t.Helper()
	now := time.Now()
	store := &stubStore{tenant: tenant.Tenant{
		ID:               uuid.New(),
		Name:             "Acme Cuts",
		BookingSlug:      "acme-cuts",
		CustomDomain:     "booking.acme.com",
		CustomDomainType: tenant.DomainTypeSubdomain,
		DomainVerified:   true,
		SSLEnabled:       true,
		DomainAddedAt:    &now,
		Active:           true,
	}}
	return tenant.NewResolver(store, testHostingDomain, testDefaultDomain)
}

func echoTenant() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if res, ok := middlewares.TenantFromContext(r.Context()); ok {
			_, _ = w.Write([]byte(res.Tenant.BookingSlug))
			return
		}
		_, _ = w.Write([]byte("platform"))
	})
}

func TestResolveTenant(t *testing.T) {
	t.Parallel()

	handler := middlewares.ResolveTenant(newResolver(t))(echoTenant())

	do := func(target, host string, secure bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Host = host
		if secure {
			req.Header.Set("X-Forwarded-Proto", "https")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("custom domain reaches handler with tenant", func(t *testing.T) {
		t.Parallel()
		rec := do("http://x/book/acme-cuts/", "booking.acme.com", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "acme-cuts", rec.Body.String())
	})

	t.Run("platform host passes without tenant", func(t *testing.T) {
		t.Parallel()
		rec := do("http://x/pricing", testDefaultDomain, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "platform", rec.Body.String())
	})

	t.Run("root path redirects to booking page", func(t *testing.T) {
		t.Parallel()
		rec := do("http://x/", "booking.acme.com", true)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/book/acme-cuts/", rec.Header().Get("Location"))
	})

	t.Run("plain http upgrades when ssl enabled", func(t *testing.T) {
		t.Parallel()
		rec := do("http://x/book/acme-cuts/", "booking.acme.com", false)
		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "https://booking.acme.com/book/acme-cuts/", rec.Header().Get("Location"))
	})

	t.Run("bypass prefix skips resolution", func(t *testing.T) {
		t.Parallel()
		rec := do("http://x/static/app.css", "booking.acme.com", false)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "platform", rec.Body.String())
	})
}

func TestOriginTrust(t *testing.T) {
	t.Parallel()

	resolver := newResolver(t)
	handler := middlewares.OriginTrust(resolver.IsOriginTrusted,
		middlewares.WithTrustedOrigins("https://"+testDefaultDomain),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(method, origin string) int {
		req := httptest.NewRequest(method, "http://x/api/bookings", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("verified custom domain allowed", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusNoContent, do(http.MethodPost, "https://booking.acme.com"))
	})

	t.Run("static allow-list", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusNoContent, do(http.MethodPost, "https://"+testDefaultDomain))
	})

	t.Run("unknown origin rejected", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "https://evil.example.com"))
	})

	t.Run("opaque null origin rejected", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "null"))
	})

	t.Run("safe methods skip the check", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusNoContent, do(http.MethodGet, "https://evil.example.com"))
	})

	t.Run("missing origin passes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusNoContent, do(http.MethodPost, ""))
	})

	t.Run("trust check failure yields 500", func(t *testing.T) {
		t.Parallel()
		broken := middlewares.OriginTrust(func(context.Context, string) (bool, error) {
			return false, errors.New("store unavailable")
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodPost, "http://x/api/bookings", nil)
		req.Header.Set("Origin", "https://booking.acme.com")
		rec := httptest.NewRecorder()
		broken.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	handler := middlewares.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(middlewares.RequestIDFromContext(r.Context())))
	}))

	t.Run("generates when missing", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get("X-Request-ID"))
	})

	t.Run("preserves inbound header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "req-123", rec.Body.String())
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	handler := middlewares.Recover(logger.NewNope())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
