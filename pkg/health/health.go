package health

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// CheckFunc probes a single dependency and returns nil when healthy.
type CheckFunc func(ctx context.Context) error

// defaultTimeout caps a probe run so a hung dependency cannot stall the
// load balancer's health cycle.
const defaultTimeout = 5 * time.Second

// LivenessHandler reports process liveness. It never runs dependency
// checks; a live process that lost its database should be restarted by
// readiness gating, not killed.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// ReadinessHandler runs all checks and reports 503 if any fail.
func ReadinessHandler(checks ...CheckFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), defaultTimeout)
		defer cancel()

		var errs []error
		for _, check := range checks {
			if err := check(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			http.Error(w, errors.Join(errs...).Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
