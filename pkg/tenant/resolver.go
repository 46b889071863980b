package tenant

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

// Resolution is the outcome of resolving an inbound host to a tenant.
// A zero Resolution means "no tenant, proceed with default routing".
// The value is immutable: middlewares thread it through the request
// context instead of mutating shared state.
type Resolution struct {
	Tenant         *Tenant
	IsCustomDomain bool
}

// Resolver decides which tenant, if any, owns an inbound request host.
// It is a pure lookup over store state: repeated calls with the same host
// and unchanged store return identical results.
type Resolver struct {
	store         Store
	hostingDomain string
	defaultDomain string
}

// NewResolver creates a Resolver.
//
// hostingDomain is the platform's hosting target (requests arriving there
// or on its subdomains are platform traffic, never tenant traffic).
// defaultDomain is the platform's public domain; hosts under it resolve to
// tenants of type subdomain only.
func NewResolver(store Store, hostingDomain, defaultDomain string) *Resolver {
	return &Resolver{
		store:         store,
		hostingDomain: strings.ToLower(hostingDomain),
		defaultDomain: strings.ToLower(defaultDomain),
	}
}

// Resolve maps a raw Host header value to a tenant. The lookup chain, in
// order: exact custom-domain match, the bare host for "www."-prefixed
// requests, the "www."-prefixed form of the bare host, and finally a
// subdomain-typed match for hosts under the default platform domain.
// Only verified, active tenants are routable; anything else falls through
// to (Resolution{}, nil).
func (r *Resolver) Resolve(ctx context.Context, rawHost string) (Resolution, error) {
	host := NormalizeHost(rawHost)
	if host == "" || r.skip(host) {
		return Resolution{}, nil
	}

	bare := strings.TrimPrefix(host, "www.")
	candidates := []string{host}
	if bare != host {
		candidates = append(candidates, bare)
	} else {
		candidates = append(candidates, "www."+bare)
	}

	for _, candidate := range candidates {
		t, err := r.lookup(ctx, candidate)
		if err != nil {
			return Resolution{}, err
		}
		if t.Routable() {
			return Resolution{Tenant: t, IsCustomDomain: true}, nil
		}
	}

	if r.defaultDomain != "" && strings.HasSuffix(host, "."+r.defaultDomain) {
		t, err := r.store.FindByCustomDomainAndType(ctx, host, DomainTypeSubdomain)
		if err != nil && !errors.Is(err, ErrTenantNotFound) {
			return Resolution{}, err
		}
		if t.Routable() {
			return Resolution{Tenant: t, IsCustomDomain: true}, nil
		}
	}

	return Resolution{}, nil
}

// IsOriginTrusted reports whether an Origin header value belongs to a
// verified, active tenant's custom domain. The origin host is normalized
// by stripping any "www." prefix; both the bare and "www."-prefixed forms
// are checked against the store so the trust decision matches the routing
// fallback chain. The check hits the store on every call deliberately:
// verification status can change between requests, so the answer must
// never be cached beyond a single request.
//
// Store failures surface as errors so callers can distinguish "origin
// untrusted" from "store unavailable".
func (r *Resolver) IsOriginTrusted(ctx context.Context, origin string) (bool, error) {
	host := originHost(origin)
	if host == "" || r.skip(host) {
		return false, nil
	}

	bare := strings.TrimPrefix(host, "www.")
	for _, candidate := range []string{bare, "www." + bare} {
		t, err := r.lookup(ctx, candidate)
		if err != nil {
			return false, err
		}
		if t.Routable() {
			return true, nil
		}
	}
	return false, nil
}

// skip reports hosts that are platform infrastructure and never belong to
// a tenant: the hosting domain and its subdomains, the default public
// domain and its www variant, and loopback.
func (r *Resolver) skip(host string) bool {
	if r.hostingDomain != "" && (host == r.hostingDomain || strings.HasSuffix(host, "."+r.hostingDomain)) {
		return true
	}
	if r.defaultDomain != "" && (host == r.defaultDomain || host == "www."+r.defaultDomain) {
		return true
	}
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// lookup wraps the store call, mapping ErrTenantNotFound to a nil tenant.
func (r *Resolver) lookup(ctx context.Context, domain string) (*Tenant, error) {
	t, err := r.store.FindByCustomDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// NormalizeHost strips the port from a Host header value, lowercases it,
// and trims whitespace. IPv6 literals lose their brackets, so "[::1]:8080"
// and "::1" normalize to the same host.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}

// originHost extracts the normalized host from an Origin header value.
// Accepts both full origins ("https://book.example.com") and bare hosts.
func originHost(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" || origin == "null" {
		return ""
	}
	if strings.Contains(origin, "://") {
		u, err := url.Parse(origin)
		if err != nil {
			return ""
		}
		return NormalizeHost(u.Host)
	}
	return NormalizeHost(origin)
}
