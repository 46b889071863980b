package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

type tenantCtxKey struct{}

// Paths served identically on every host. Resolution is skipped for
// them so asset and admin traffic never pays a store lookup.
var defaultBypassPrefixes = []string{"/static/", "/media/", "/admin/", "/healthz", "/readyz"}

// ResolveTenantOption configures the ResolveTenant middleware.
type ResolveTenantOption func(*resolveTenantOptions)

type resolveTenantOptions struct {
	bypassPrefixes []string
}

// WithBypassPrefixes replaces the default set of path prefixes that skip
// tenant resolution.
func WithBypassPrefixes(prefixes ...string) ResolveTenantOption {
	return func(o *resolveTenantOptions) {
		o.bypassPrefixes = prefixes
	}
}

// ResolveTenant resolves the request's Host header to a tenant and
// stores the result in the context.
//
// When a custom domain matches, the middleware also enforces the
// tenant's transport and entry-point policy: requests over plain HTTP
// are upgraded with a permanent redirect if the tenant has SSL enabled,
// and the root path redirects to the tenant's booking page.
func ResolveTenant(resolver *tenant.Resolver, opts ...ResolveTenantOption) func(http.Handler) http.Handler {
	options := resolveTenantOptions{bypassPrefixes: defaultBypassPrefixes}
	for _, opt := range opts {
		opt(&options)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range options.bypassPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			res, err := resolver.Resolve(r.Context(), r.Host)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !res.IsCustomDomain {
				next.ServeHTTP(w, r)
				return
			}

			if res.Tenant.SSLEnabled && !isSecure(r) {
				target := "https://" + r.Host + r.URL.RequestURI()
				http.Redirect(w, r, target, http.StatusMovedPermanently)
				return
			}
			if r.URL.Path == "/" {
				http.Redirect(w, r, res.Tenant.BookingPath(), http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), tenantCtxKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromContext returns the resolution stored by ResolveTenant. The
// second return is false on platform hosts and bypassed paths.
func TenantFromContext(ctx context.Context) (tenant.Resolution, bool) {
	res, ok := ctx.Value(tenantCtxKey{}).(tenant.Resolution)
	return res, ok
}

// isSecure reports whether the request arrived over TLS, either
// directly or via a terminating proxy.
func isSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
