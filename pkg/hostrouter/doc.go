// Package hostrouter dispatches HTTP requests by Host header.
//
// It handles the first routing decision in a multi-domain deployment:
// known platform hosts go to their dedicated handlers, and anything
// else falls through to a catch-all that resolves tenant custom
// domains.
//
//	hr := hostrouter.New(tenantHandler)
//	hr.Map("bookingkit.live", platformHandler)
//	hr.Map("www.bookingkit.live", platformHandler)
//	hr.Map("*.bookingkit.live", tenantHandler)
//
// Matching is case-insensitive and ignores ports. Wildcards match any
// subdomain depth but never the bare domain.
package hostrouter
