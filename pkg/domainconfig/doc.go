// Package domainconfig derives the DNS records a tenant must publish to
// connect a custom domain to their public booking page.
//
// The package is pure computation: no network access, no clock, no global
// state. Given the same tenant ID, domain, and platform secret it always
// produces the same record set, which makes it trivially testable and safe
// to call on every page render.
//
// # Basic Usage
//
//	gen, err := domainconfig.New("apps.bookingkit.live", cfg.AppSecret)
//	if err != nil {
//	    return err
//	}
//
//	dns, err := gen.Config(tenantID, "book.example.com")
//	if err != nil {
//	    return err
//	}
//	dns = dns.WithVerificationCode(tenant.DomainVerificationCode)
//
// The resulting Config carries the CNAME record pointing at the hosting
// target, the primary "_booking-verify" TXT record, a tenant-scoped
// alternative TXT record ("_bv-{uniqueID}"), and a human-readable step
// sequence for the setup page.
//
// # Root Domains
//
// A domain with exactly two labels ("example.com") is a root domain. DNS
// forbids literal CNAME records at the apex, so the generated CNAME record
// is flagged as flattened and the instructions tell the tenant to enable
// their provider's proxy so the CNAME is converted to A records.
//
// # Verification Codes
//
// NewVerificationCode mints the random token published as the TXT record
// value. A fresh code is issued on every domain-setup attempt; the code is
// the actual ownership credential, while UniqueID only disambiguates record
// names between tenants.
package domainconfig
