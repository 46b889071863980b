package dnsverify

import "errors"

// ErrEmptyDomain indicates verification was requested for an empty domain.
// It is the only error Verify returns: resolver failures are downgraded to
// messages on the Result instead.
var ErrEmptyDomain = errors.New("dnsverify: domain is required")
