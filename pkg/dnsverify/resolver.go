package dnsverify

import (
	"context"
	"errors"
	"net"
	"time"
)

// Resolver issues the DNS queries the verifier needs. Implementations must
// be safe for concurrent use. The production implementation wraps
// [net.Resolver]; tests supply a fake.
type Resolver interface {
	// LookupCNAME returns the canonical name for host.
	LookupCNAME(ctx context.Context, host string) (string, error)

	// LookupHost returns the A/AAAA addresses for host.
	LookupHost(ctx context.Context, host string) ([]string, error)

	// LookupTXT returns the TXT record values for name.
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// DefaultQueryTimeout bounds each individual DNS query. Registrar DNS can be
// slow right after records are created; 5 seconds keeps the whole pass under
// half a minute in the worst case.
const DefaultQueryTimeout = 5 * time.Second

// systemResolver adapts net.Resolver with a per-query timeout.
type systemResolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

// NewSystemResolver returns a Resolver backed by the operating system's
// resolver. A non-positive timeout falls back to DefaultQueryTimeout.
func NewSystemResolver(timeout time.Duration) Resolver {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &systemResolver{resolver: &net.Resolver{}, timeout: timeout}
}

func (r *systemResolver) LookupCNAME(ctx context.Context, host string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.resolver.LookupCNAME(ctx, host)
}

func (r *systemResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.resolver.LookupHost(ctx, host)
}

func (r *systemResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.resolver.LookupTXT(ctx, name)
}

// isNoAnswer reports whether err means the name exists without the requested
// record, or does not exist at all. Both cases trigger the A-record fallback
// rather than a hard failure.
func isNoAnswer(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}
