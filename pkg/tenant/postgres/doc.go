// Package postgres implements tenant.Store on pgx.
//
// Domain lookups use the functional index on lower(custom_domain), and
// duplicate domain claims surface as tenant.ErrDomainAlreadyClaimed via
// the partial unique index.
package postgres
