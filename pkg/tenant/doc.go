// Package tenant owns the custom-domain subsystem of the booking platform:
// the tenant model, the store interface, the request-host resolution engine,
// and the domain lifecycle service.
//
// # Resolution
//
// Resolver maps an inbound Host header to the tenant that owns it. The
// lookup chain tolerates the usual "www." mismatches between what the
// tenant registered and what traffic actually arrives with:
//
//	r := tenant.NewResolver(store, "apps.bookingkit.live", "bookingkit.live")
//	res, err := r.Resolve(ctx, req.Host)
//	if res.IsCustomDomain {
//	    // res.Tenant owns this request
//	}
//
// Resolution is pure and idempotent over store state; each pass performs a
// small constant number of indexed lookups.
//
// # Domain Lifecycle
//
// Service drives a claim from setup to verification:
//
//	svc := tenant.NewService(store, gen, "apps.bookingkit.live",
//	    tenant.WithAttemptLimiter(limiter),
//	    tenant.WithNotifier(notifier),
//	    tenant.WithLogger(log),
//	)
//
//	// 1. Claim the domain; the tenant receives DNS instructions.
//	_, err := svc.SetupDomain(ctx, tenantID, "book.example.com", tenant.DomainTypeSubdomain)
//
//	// 2. Tenant publishes records, then triggers verification.
//	result, err := svc.VerifyDomain(ctx, tenantID)
//
// Setup always mints a fresh verification code and clears the verified
// flag: a verified state is only ever valid for the code it was verified
// with.
//
// # Origin Trust
//
// Resolver.IsOriginTrusted extends CSRF origin checking to dynamically
// verified domains. It is a pure predicate over store state and must be
// evaluated per request, never cached, since verification status can
// change at any time.
package tenant
