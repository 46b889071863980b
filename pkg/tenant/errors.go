package tenant

import "errors"

var (
	// ErrTenantNotFound indicates no tenant matched the lookup.
	ErrTenantNotFound = errors.New("tenant: not found")

	// ErrDomainAlreadyClaimed indicates another active tenant already owns
	// the requested custom domain.
	ErrDomainAlreadyClaimed = errors.New("tenant: domain already claimed by another account")

	// ErrInvalidDomainType indicates a domain type outside {subdomain, root_domain}.
	ErrInvalidDomainType = errors.New("tenant: invalid domain type")

	// ErrDomainTypeMismatch indicates the claimed domain type disagrees
	// with the domain's label count.
	ErrDomainTypeMismatch = errors.New("tenant: domain type does not match domain")

	// ErrNoDomainConfigured indicates verification was requested before a
	// domain claim was set up.
	ErrNoDomainConfigured = errors.New("tenant: no custom domain configured")

	// ErrTooManyAttempts indicates the verification attempt limit was hit.
	ErrTooManyAttempts = errors.New("tenant: too many verification attempts, try again later")
)
