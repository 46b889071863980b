package tenant

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence interface the custom-domain subsystem consumes.
// The canonical implementation lives in the postgres subpackage; tests use
// in-memory fakes.
//
// Domain lookups must be case-insensitive exact matches backed by an index:
// they run on the hot path of every request.
type Store interface {
	// FindByID returns the tenant with the given ID or ErrTenantNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByCustomDomain returns the tenant whose custom domain equals
	// domain (case-insensitive) or ErrTenantNotFound.
	FindByCustomDomain(ctx context.Context, domain string) (*Tenant, error)

	// FindByCustomDomainAndType is FindByCustomDomain narrowed to a
	// specific domain type.
	FindByCustomDomainAndType(ctx context.Context, domain string, dt DomainType) (*Tenant, error)

	// FindBySlug returns the tenant with the given booking slug or
	// ErrTenantNotFound.
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindWithVerifiedDomain returns all active tenants whose custom
	// domain is currently verified. Used by the periodic recheck task.
	FindWithVerifiedDomain(ctx context.Context) ([]Tenant, error)

	// Save persists the tenant. Implementations must surface a duplicate
	// custom-domain constraint violation as ErrDomainAlreadyClaimed.
	Save(ctx context.Context, t *Tenant) error
}
