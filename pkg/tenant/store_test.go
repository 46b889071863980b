package tenant_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

// fakeStore is an in-memory Store for tests. Lookups copy the stored value
// so tests can assert that failed operations leave the store untouched.
type fakeStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]tenant.Tenant
	lookups int
}

func newFakeStore(tenants ...tenant.Tenant) *fakeStore {
	s := &fakeStore{tenants: make(map[uuid.UUID]tenant.Tenant, len(tenants))}
	for _, t := range tenants {
		s.tenants[t.ID] = t
	}
	return s
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tenants[id]; ok {
		return &t, nil
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *fakeStore) FindByCustomDomain(_ context.Context, domain string) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	for _, t := range s.tenants {
		if strings.EqualFold(t.CustomDomain, domain) && t.CustomDomain != "" {
			return &t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *fakeStore) FindByCustomDomainAndType(ctx context.Context, domain string, dt tenant.DomainType) (*tenant.Tenant, error) {
	t, err := s.FindByCustomDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	if t.CustomDomainType != dt {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (s *fakeStore) FindBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tenants {
		if t.BookingSlug == slug {
			return &t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (s *fakeStore) FindWithVerifiedDomain(_ context.Context) ([]tenant.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []tenant.Tenant
	for _, t := range s.tenants {
		if t.Active && t.DomainVerified && t.CustomDomain != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) Save(_ context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tenants {
		if existing.ID != t.ID && existing.CustomDomain != "" && strings.EqualFold(existing.CustomDomain, t.CustomDomain) {
			return tenant.ErrDomainAlreadyClaimed
		}
	}
	s.tenants[t.ID] = *t
	return nil
}

func (s *fakeStore) get(id uuid.UUID) tenant.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenants[id]
}
