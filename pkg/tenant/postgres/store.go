package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

// Store is the postgres implementation of tenant.Store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store on the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const tenantColumns = `id, name, email, booking_slug, custom_domain, custom_domain_type,
	domain_verified, domain_verification_code, ssl_enabled, domain_added_at,
	active, created_at, updated_at`

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.findOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
}

func (s *Store) FindByCustomDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	return s.findOne(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE lower(custom_domain) = lower($1)`,
		domain,
	)
}

func (s *Store) FindByCustomDomainAndType(ctx context.Context, domain string, dt tenant.DomainType) (*tenant.Tenant, error) {
	return s.findOne(ctx,
		`SELECT `+tenantColumns+` FROM tenants
		 WHERE lower(custom_domain) = lower($1) AND custom_domain_type = $2`,
		domain, string(dt),
	)
}

func (s *Store) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return s.findOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE booking_slug = $1`, slug)
}

func (s *Store) FindWithVerifiedDomain(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants
		 WHERE active AND domain_verified AND custom_domain <> ''
		 ORDER BY domain_added_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

func (s *Store) Save(ctx context.Context, t *tenant.Tenant) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tenants (`+tenantColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			booking_slug = EXCLUDED.booking_slug,
			custom_domain = EXCLUDED.custom_domain,
			custom_domain_type = EXCLUDED.custom_domain_type,
			domain_verified = EXCLUDED.domain_verified,
			domain_verification_code = EXCLUDED.domain_verification_code,
			ssl_enabled = EXCLUDED.ssl_enabled,
			domain_added_at = EXCLUDED.domain_added_at,
			active = EXCLUDED.active,
			updated_at = now()`,
		t.ID, t.Name, t.Email, t.BookingSlug, t.CustomDomain, string(t.CustomDomainType),
		t.DomainVerified, t.DomainVerificationCode, t.SSLEnabled, t.DomainAddedAt, t.Active,
	)
	if isUniqueViolation(err) {
		return tenant.ErrDomainAlreadyClaimed
	}
	return err
}

func (s *Store) findOne(ctx context.Context, query string, args ...any) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx, query, args...)
	t, err := scanTenant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tenant.ErrTenantNotFound
	}
	return t, err
}

func scanTenant(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var domainType string
	if err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.BookingSlug, &t.CustomDomain, &domainType,
		&t.DomainVerified, &t.DomainVerificationCode, &t.SSLEnabled, &t.DomainAddedAt,
		&t.Active, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.CustomDomainType = tenant.DomainType(domainType)
	return &t, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
