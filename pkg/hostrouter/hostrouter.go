package hostrouter

import (
	"net"
	"net/http"
	"strings"
)

// Router dispatches requests to different handlers by Host header. It is
// the outermost routing layer: platform hosts (landing page, API, admin)
// map to static handlers, everything else falls through to the tenant
// handler which resolves custom domains dynamically.
type Router struct {
	exact    map[string]http.Handler
	wildcard map[string]http.Handler
	fallback http.Handler
}

// New creates a Router with a fallback handler for unmatched hosts.
func New(fallback http.Handler) *Router {
	return &Router{
		exact:    make(map[string]http.Handler),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}
}

// Map routes requests for host to h. A "*." prefix registers a wildcard
// that matches any direct or nested subdomain, not the bare domain.
func (r *Router) Map(host string, h http.Handler) {
	host = strings.ToLower(strings.TrimSpace(host))
	if suffix, ok := strings.CutPrefix(host, "*."); ok {
		r.wildcard[suffix] = h
		return
	}
	r.exact[host] = h
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler(req.Host).ServeHTTP(w, req)
}

func (r *Router) handler(rawHost string) http.Handler {
	host := normalizeHost(rawHost)

	if h, ok := r.exact[host]; ok {
		return h
	}
	for suffix, h := range r.wildcard {
		if strings.HasSuffix(host, "."+suffix) {
			return h
		}
	}
	return r.fallback
}

// normalizeHost lowercases and strips the port, handling bracketed IPv6
// literals.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}
