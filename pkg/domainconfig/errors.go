package domainconfig

import "errors"

var (
	// ErrEmptyHostingDomain indicates the generator was created without a hosting target.
	ErrEmptyHostingDomain = errors.New("domainconfig: hosting domain is required")

	// ErrEmptySecret indicates the generator was created without a platform secret.
	ErrEmptySecret = errors.New("domainconfig: secret is required")

	// ErrEmptyDomain indicates a config was requested for an empty domain.
	ErrEmptyDomain = errors.New("domainconfig: domain is required")

	// ErrInvalidDomain indicates the domain has fewer than two labels.
	ErrInvalidDomain = errors.New("domainconfig: invalid domain")
)
