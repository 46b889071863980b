package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

const (
	hostingDomain = "apps.bookingkit.live"
	defaultDomain = "bookingkit.live"
)

func verifiedTenant(domain string, dt tenant.DomainType) tenant.Tenant {
	return tenant.Tenant{
		ID:               uuid.New(),
		Name:             "Salon",
		BookingSlug:      "salon",
		CustomDomain:     domain,
		CustomDomainType: dt,
		DomainVerified:   true,
		SSLEnabled:       true,
		Active:           true,
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("exact match mixed case with port", func(t *testing.T) {
		t.Parallel()

		salon := verifiedTenant("salon.example.com", tenant.DomainTypeSubdomain)
		r := tenant.NewResolver(newFakeStore(salon), hostingDomain, defaultDomain)

		res, err := r.Resolve(context.Background(), "SALON.example.com:443")
		require.NoError(t, err)

		assert.True(t, res.IsCustomDomain)
		require.NotNil(t, res.Tenant)
		assert.Equal(t, salon.ID, res.Tenant.ID)
	})

	t.Run("platform hosts short-circuit", func(t *testing.T) {
		t.Parallel()

		// A tenant claiming a platform host must never be resolved.
		squatter := verifiedTenant(hostingDomain, tenant.DomainTypeSubdomain)
		r := tenant.NewResolver(newFakeStore(squatter), hostingDomain, defaultDomain)

		for _, host := range []string{
			hostingDomain,
			"web-1." + hostingDomain,
			defaultDomain,
			"www." + defaultDomain,
			"localhost",
			"localhost:8080",
			"127.0.0.1",
			"::1",
			"[::1]:8080",
		} {
			res, err := r.Resolve(context.Background(), host)
			require.NoError(t, err)
			assert.False(t, res.IsCustomDomain, "host %s must not resolve to a tenant", host)
			assert.Nil(t, res.Tenant)
		}
	})

	t.Run("unverified domain does not route", func(t *testing.T) {
		t.Parallel()

		pending := verifiedTenant("salon.example.com", tenant.DomainTypeSubdomain)
		pending.DomainVerified = false
		r := tenant.NewResolver(newFakeStore(pending), hostingDomain, defaultDomain)

		res, err := r.Resolve(context.Background(), "salon.example.com")
		require.NoError(t, err)
		assert.False(t, res.IsCustomDomain)
	})

	t.Run("inactive tenant does not route", func(t *testing.T) {
		t.Parallel()

		inactive := verifiedTenant("salon.example.com", tenant.DomainTypeSubdomain)
		inactive.Active = false
		r := tenant.NewResolver(newFakeStore(inactive), hostingDomain, defaultDomain)

		res, err := r.Resolve(context.Background(), "salon.example.com")
		require.NoError(t, err)
		assert.False(t, res.IsCustomDomain)
	})

	t.Run("www request falls back to bare registration", func(t *testing.T) {
		t.Parallel()

		bare := verifiedTenant("example.com", tenant.DomainTypeRootDomain)
		r := tenant.NewResolver(newFakeStore(bare), hostingDomain, defaultDomain)

		res, err := r.Resolve(context.Background(), "www.example.com")
		require.NoError(t, err)

		assert.True(t, res.IsCustomDomain)
		require.NotNil(t, res.Tenant)
		assert.Equal(t, bare.ID, res.Tenant.ID)
	})

	t.Run("bare request falls back to www registration", func(t *testing.T) {
		t.Parallel()

		www := verifiedTenant("www.example.com", tenant.DomainTypeSubdomain)
		r := tenant.NewResolver(newFakeStore(www), hostingDomain, defaultDomain)

		res, err := r.Resolve(context.Background(), "example.com")
		require.NoError(t, err)

		assert.True(t, res.IsCustomDomain)
		require.NotNil(t, res.Tenant)
		assert.Equal(t, www.ID, res.Tenant.ID)
	})

	t.Run("no match falls through to default routing", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewResolver(newFakeStore(), hostingDomain, defaultDomain)

		res, err := r.Resolve(context.Background(), "unknown.example.net")
		require.NoError(t, err)
		assert.False(t, res.IsCustomDomain)
		assert.Nil(t, res.Tenant)
	})

	t.Run("idempotent over unchanged store", func(t *testing.T) {
		t.Parallel()

		salon := verifiedTenant("salon.example.com", tenant.DomainTypeSubdomain)
		r := tenant.NewResolver(newFakeStore(salon), hostingDomain, defaultDomain)

		first, err := r.Resolve(context.Background(), "salon.example.com")
		require.NoError(t, err)
		second, err := r.Resolve(context.Background(), "salon.example.com")
		require.NoError(t, err)

		assert.Equal(t, first.IsCustomDomain, second.IsCustomDomain)
		assert.Equal(t, first.Tenant.ID, second.Tenant.ID)
	})
}

// typeOnlyStore hides a tenant from plain domain lookups but reveals it to
// the type-narrowed one, to exercise the final step of the fallback chain
// in isolation.
type typeOnlyStore struct {
	*fakeStore
	hidden string
}

func (s *typeOnlyStore) FindByCustomDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	if domain == s.hidden {
		return nil, tenant.ErrTenantNotFound
	}
	return s.fakeStore.FindByCustomDomain(ctx, domain)
}

func TestResolver_Resolve_DefaultDomainSubdomainFallback(t *testing.T) {
	t.Parallel()

	sub := verifiedTenant("salon."+defaultDomain, tenant.DomainTypeSubdomain)
	store := &typeOnlyStore{fakeStore: newFakeStore(sub), hidden: sub.CustomDomain}
	r := tenant.NewResolver(store, hostingDomain, defaultDomain)

	res, err := r.Resolve(context.Background(), "salon."+defaultDomain)
	require.NoError(t, err)

	assert.True(t, res.IsCustomDomain)
	require.NotNil(t, res.Tenant)
	assert.Equal(t, sub.ID, res.Tenant.ID)
}

func TestResolver_IsOriginTrusted(t *testing.T) {
	t.Parallel()

	salon := verifiedTenant("salon.example.com", tenant.DomainTypeSubdomain)
	pending := verifiedTenant("pending.example.org", tenant.DomainTypeSubdomain)
	pending.DomainVerified = false

	r := tenant.NewResolver(newFakeStore(salon, pending), hostingDomain, defaultDomain)

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"full origin of verified domain", "https://salon.example.com", true},
		{"www variant of verified domain", "https://www.salon.example.com", true},
		{"origin with port", "https://salon.example.com:8443", true},
		{"unverified domain", "https://pending.example.org", false},
		{"unknown origin", "https://evil.example.net", false},
		{"platform origin not extended here", "https://" + defaultDomain, false},
		{"null origin", "null", false},
		{"empty origin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := r.IsOriginTrusted(context.Background(), tt.origin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("store failure surfaces as error", func(t *testing.T) {
		t.Parallel()
		broken := tenant.NewResolver(failingStore{}, hostingDomain, defaultDomain)
		got, err := broken.IsOriginTrusted(context.Background(), "https://salon.example.com")
		require.Error(t, err)
		assert.False(t, got)
	})
}

// failingStore simulates an unavailable backing store.
type failingStore struct {
	tenant.Store
}

func (failingStore) FindByCustomDomain(context.Context, string) (*tenant.Tenant, error) {
	return nil, errors.New("connection refused")
}

func TestNormalizeHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Example.COM", "example.com"},
		{"example.com:8080", "example.com"},
		{"  example.com  ", "example.com"},
		{"[::1]:8080", "::1"},
		{"[::1]", "::1"},
		{"::1", "::1"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tenant.NormalizeHost(tt.in), "input %q", tt.in)
	}
}
