package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/bookingkit/pkg/dnsverify"
	"github.com/dmitrymomot/bookingkit/pkg/domainconfig"
)

// VerifyFunc performs a DNS verification pass. The default wraps
// [dnsverify.Verify]; tests and the recheck task inject their own.
type VerifyFunc func(ctx context.Context, domain, expectedCNAME, expectedTXT string) (*dnsverify.Result, error)

// AttemptLimiter throttles verification attempts per tenant. DNS lookups
// are slow and externally visible, so the platform bounds how often a
// tenant can trigger them.
type AttemptLimiter interface {
	// Allow reports whether another attempt is permitted for key.
	Allow(ctx context.Context, key string) (bool, error)
}

// Notifier delivers out-of-band notifications about domain lifecycle
// events. Failures are logged, never surfaced to the tenant.
type Notifier interface {
	DomainVerified(ctx context.Context, t *Tenant) error
}

// Service owns the custom-domain lifecycle: claiming a domain, producing
// its DNS configuration, and verifying ownership. Concurrent operations on
// the same tenant are safe; verification outcomes are idempotent given the
// same DNS state, so last-writer-wins on the verified flag is acceptable.
type Service struct {
	store         Store
	gen           *domainconfig.Generator
	hostingDomain string

	verify   VerifyFunc
	limiter  AttemptLimiter
	notifier Notifier
	log      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithVerifier replaces the DNS verification function.
func WithVerifier(fn VerifyFunc) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.verify = fn
		}
	}
}

// WithAttemptLimiter sets the verification attempt limiter.
func WithAttemptLimiter(l AttemptLimiter) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithNotifier sets the notifier for domain lifecycle events.
func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a Service. hostingDomain is the expected CNAME target
// for tenant domains.
func NewService(store Store, gen *domainconfig.Generator, hostingDomain string, opts ...ServiceOption) *Service {
	s := &Service{
		store:         store,
		gen:           gen,
		hostingDomain: hostingDomain,
		verify: func(ctx context.Context, domain, cname, txt string) (*dnsverify.Result, error) {
			return dnsverify.Verify(ctx, domain, cname, txt)
		},
		limiter:  allowAll{},
		notifier: noopNotifier{},
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetupDomain claims a custom domain for a tenant. It validates the domain
// type against the domain's label count, refuses domains owned by another
// active tenant, mints a fresh verification code, and clears the verified
// flag. Re-running setup for the same tenant replaces the previous claim.
func (s *Service) SetupDomain(ctx context.Context, tenantID uuid.UUID, domain string, domainType DomainType) (*Tenant, error) {
	if _, err := ParseDomainType(string(domainType)); err != nil {
		return nil, err
	}

	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, domainconfig.ErrEmptyDomain
	}
	if got := DomainTypeOf(domain); got != domainType {
		return nil, fmt.Errorf("%w: %s is a %s", ErrDomainTypeMismatch, domain, got)
	}

	t, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if owner, err := s.store.FindByCustomDomain(ctx, domain); err == nil {
		if owner.ID != t.ID && owner.Active {
			return nil, ErrDomainAlreadyClaimed
		}
	} else if !errors.Is(err, ErrTenantNotFound) {
		return nil, err
	}

	code, err := domainconfig.NewVerificationCode(s.gen.UniqueID(t.ID.String()))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t.CustomDomain = domain
	t.CustomDomainType = domainType
	t.DomainVerified = false
	t.DomainVerificationCode = code
	t.DomainAddedAt = &now

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "custom domain claimed",
		slog.String("tenant_id", t.ID.String()),
		slog.String("domain", domain),
		slog.String("domain_type", string(domainType)),
	)
	return t, nil
}

// DNSConfig returns the DNS records the tenant must publish for their
// pending or verified claim.
func (s *Service) DNSConfig(ctx context.Context, tenantID uuid.UUID) (*domainconfig.Config, error) {
	t, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t.CustomDomain == "" || t.DomainVerificationCode == "" {
		return nil, ErrNoDomainConfigured
	}

	cfg, err := s.gen.Config(t.ID.String(), t.CustomDomain)
	if err != nil {
		return nil, err
	}
	return cfg.WithVerificationCode(t.DomainVerificationCode), nil
}

// VerifyDomain runs a DNS verification pass for the tenant's pending claim.
// On success the tenant is marked verified with SSL enabled and a
// notification is sent. The returned Result carries the per-check outcome
// and messages regardless of success; DNS failures never surface as errors.
func (s *Service) VerifyDomain(ctx context.Context, tenantID uuid.UUID) (*dnsverify.Result, error) {
	t, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t.CustomDomain == "" || t.DomainVerificationCode == "" {
		return nil, ErrNoDomainConfigured
	}

	ok, err := s.limiter.Allow(ctx, "domain-verify:"+t.ID.String())
	if err != nil {
		// A broken limiter must not block verification.
		s.log.WarnContext(ctx, "attempt limiter failed", slog.Any("error", err))
	} else if !ok {
		return nil, ErrTooManyAttempts
	}

	res, err := s.verify(ctx, t.CustomDomain, s.hostingDomain, t.DomainVerificationCode)
	if err != nil {
		return nil, err
	}

	if res.Success {
		t.DomainVerified = true
		t.SSLEnabled = true
		if err := s.store.Save(ctx, t); err != nil {
			return nil, err
		}

		s.log.InfoContext(ctx, "custom domain verified",
			slog.String("tenant_id", t.ID.String()),
			slog.String("domain", t.CustomDomain),
		)
		if err := s.notifier.DomainVerified(ctx, t); err != nil {
			s.log.ErrorContext(ctx, "domain verified notification failed",
				slog.String("tenant_id", t.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	return res, nil
}

// RemoveDomain releases the tenant's custom-domain claim. Administrative
// action; routing for the domain stops on the next request.
func (s *Service) RemoveDomain(ctx context.Context, tenantID uuid.UUID) error {
	t, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.CustomDomain == "" {
		return ErrNoDomainConfigured
	}

	domain := t.CustomDomain
	t.CustomDomain = ""
	t.CustomDomainType = ""
	t.DomainVerified = false
	t.DomainVerificationCode = ""
	t.SSLEnabled = false
	t.DomainAddedAt = nil

	if err := s.store.Save(ctx, t); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "custom domain removed",
		slog.String("tenant_id", t.ID.String()),
		slog.String("domain", domain),
	)
	return nil
}

// RecheckVerifiedDomains re-runs verification for every verified domain and
// demotes claims whose DNS records have disappeared. Invoked by a periodic
// background task; user-triggered verification stays the primary path.
func (s *Service) RecheckVerifiedDomains(ctx context.Context) error {
	tenants, err := s.store.FindWithVerifiedDomain(ctx)
	if err != nil {
		return err
	}

	var demoted int
	for i := range tenants {
		t := &tenants[i]

		res, err := s.verify(ctx, t.CustomDomain, s.hostingDomain, t.DomainVerificationCode)
		if err != nil {
			s.log.WarnContext(ctx, "domain recheck skipped",
				slog.String("tenant_id", t.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		if res.Success {
			continue
		}

		t.DomainVerified = false
		t.SSLEnabled = false
		if err := s.store.Save(ctx, t); err != nil {
			s.log.ErrorContext(ctx, "domain demotion failed",
				slog.String("tenant_id", t.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		demoted++
		s.log.WarnContext(ctx, "custom domain demoted, records no longer resolve",
			slog.String("tenant_id", t.ID.String()),
			slog.String("domain", t.CustomDomain),
		)
	}

	if demoted > 0 {
		s.log.InfoContext(ctx, "domain recheck completed",
			slog.Int("checked", len(tenants)),
			slog.Int("demoted", demoted),
		)
	}
	return nil
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (bool, error) { return true, nil }

type noopNotifier struct{}

func (noopNotifier) DomainVerified(context.Context, *Tenant) error { return nil }
