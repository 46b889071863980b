// Package middlewares provides HTTP middleware for the tenant routing
// pipeline.
//
// The middlewares compose with chi or any stdlib-compatible router:
//
//	r.Use(middlewares.RequestID())
//	r.Use(middlewares.Recover(log))
//	r.Use(middlewares.ResolveTenant(resolver))
//	r.Use(middlewares.OriginTrust(resolver.IsOriginTrusted))
//
// ResolveTenant attaches the tenant matched by the request's Host header
// to the context; downstream handlers read it with TenantFromContext.
// OriginTrust extends cross-origin request forgery protection to
// verified custom domains, which a static origin allow-list cannot
// cover.
package middlewares
