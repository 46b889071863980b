package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/bookingkit/pkg/domainconfig"
)

// DomainType classifies a claimed custom domain by its label count.
type DomainType string

const (
	// DomainTypeSubdomain is a hostname with three or more labels
	// (e.g. "book.example.com").
	DomainTypeSubdomain DomainType = "subdomain"

	// DomainTypeRootDomain is a hostname with exactly two labels
	// (e.g. "example.com").
	DomainTypeRootDomain DomainType = "root_domain"
)

// ParseDomainType validates a caller-supplied domain type value.
func ParseDomainType(s string) (DomainType, error) {
	switch DomainType(s) {
	case DomainTypeSubdomain:
		return DomainTypeSubdomain, nil
	case DomainTypeRootDomain:
		return DomainTypeRootDomain, nil
	default:
		return "", ErrInvalidDomainType
	}
}

// DomainTypeOf computes the domain type from the label count. It is the
// single source of truth: a claimed type that disagrees with it is rejected
// at setup.
func DomainTypeOf(domain string) DomainType {
	if domainconfig.IsRootDomain(domain) {
		return DomainTypeRootDomain
	}
	return DomainTypeSubdomain
}

// Tenant is a service provider account. The booking CRUD surface around it
// lives outside this module; the fields here are the ones the custom-domain
// subsystem owns or reads.
type Tenant struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`

	// BookingSlug is the stable public path segment of the tenant's
	// booking page, used as the fallback routing key.
	BookingSlug string `json:"booking_slug"`

	// CustomDomain is the fully-qualified hostname the tenant claimed,
	// empty when none. Unique across tenants, case-insensitive.
	CustomDomain           string     `json:"custom_domain,omitempty"`
	CustomDomainType       DomainType `json:"custom_domain_type,omitempty"`
	DomainVerified         bool       `json:"domain_verified"`
	DomainVerificationCode string     `json:"-"`
	SSLEnabled             bool       `json:"ssl_enabled"`
	DomainAddedAt          *time.Time `json:"domain_added_at,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingPath is the canonical path of the tenant's public booking page.
func (t *Tenant) BookingPath() string {
	return "/book/" + t.BookingSlug + "/"
}

// Routable reports whether requests may be routed to this tenant's custom
// domain: the claim must be verified and the account active.
func (t *Tenant) Routable() bool {
	return t != nil && t.Active && t.DomainVerified && t.CustomDomain != ""
}
