package middlewares

import (
	"context"
	"net/http"
)

// TrustFunc decides whether an Origin header value may perform
// state-changing requests. tenant.Resolver.IsOriginTrusted satisfies it.
type TrustFunc func(ctx context.Context, origin string) (bool, error)

// OriginTrustOption configures the OriginTrust middleware.
type OriginTrustOption func(*originTrustOptions)

type originTrustOptions struct {
	allowed map[string]struct{}
}

// WithTrustedOrigins adds a static allow-list checked before the trust
// function, typically the platform's own origins.
func WithTrustedOrigins(origins ...string) OriginTrustOption {
	return func(o *originTrustOptions) {
		for _, origin := range origins {
			o.allowed[origin] = struct{}{}
		}
	}
}

// OriginTrust rejects state-changing cross-origin requests unless the
// Origin header is on the static allow-list or accepted by trust. The
// trust function is consulted per request, so a domain that loses its
// verified status stops being trusted immediately.
//
// Requests without an Origin header pass through; same-origin requests
// and non-browser clients do not send one.
func OriginTrust(trust TrustFunc, opts ...OriginTrustOption) func(http.Handler) http.Handler {
	options := originTrustOptions{allowed: make(map[string]struct{})}
	for _, opt := range opts {
		opt(&options)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isStateChanging(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := options.allowed[origin]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ok, err := trust(r.Context(), origin)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, "origin not allowed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}
