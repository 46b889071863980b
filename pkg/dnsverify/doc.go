// Package dnsverify proves custom-domain ownership by checking published
// DNS records against the values the platform asked the tenant to create.
//
// A verification pass queries the CNAME (falling back to A records for
// proxy-flattened setups) and probes four candidate TXT locations for the
// tenant's verification code. Every resolver failure is recorded as a
// human-readable message rather than raised, so a partially-configured
// domain still yields a useful Result.
//
// # Basic Usage
//
//	res, err := dnsverify.Verify(ctx,
//	    tenant.CustomDomain,
//	    "apps.bookingkit.live",            // expected CNAME target
//	    tenant.DomainVerificationCode,     // expected TXT value
//	)
//	if err != nil {
//	    return err // invalid input only
//	}
//	if res.Success {
//	    // mark the domain verified
//	}
//
// # TXT Candidate Locations
//
// The verification code may legitimately live at several names depending on
// how the tenant's DNS provider handles underscored records. The verifier
// checks, in order, and stops at the first match:
//
//	_booking-verify.<root>     most common
//	_booking-verify.<domain>   providers that scope records to the full name
//	<root>                     apex TXT
//	<domain>                   full-name TXT
//
// # Security Notes
//
// Root domains (exactly two labels) succeed on a matching TXT record alone,
// without a confirmed CNAME or A answer. This is intentional: apex CNAME
// flattening can make the CNAME check unreliable, and the TXT code is the
// actual ownership credential. Callers that want stricter behavior should
// additionally require Result.CNAMEVerified.
//
// # Testing
//
// Inject a fake through WithResolver to exercise the decision table without
// network access.
package dnsverify
