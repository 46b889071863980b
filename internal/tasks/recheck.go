// Package tasks defines the background jobs run by the river manager.
package tasks

import (
	"context"

	"github.com/riverqueue/river"

	"github.com/dmitrymomot/bookingkit/pkg/tenant"
)

// RecheckDomainsArgs triggers a sweep over all verified custom domains.
type RecheckDomainsArgs struct{}

func (RecheckDomainsArgs) Kind() string { return "domain:recheck" }

// RecheckDomainsWorker re-verifies DNS for every verified domain and
// demotes the ones whose records no longer resolve.
type RecheckDomainsWorker struct {
	river.WorkerDefaults[RecheckDomainsArgs]

	Service *tenant.Service
}

func (w *RecheckDomainsWorker) Work(ctx context.Context, _ *river.Job[RecheckDomainsArgs]) error {
	return w.Service.RecheckVerifiedDomains(ctx)
}
