package dnsverify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// TXTRecordName is the fixed name of the primary verification TXT record.
// It matches the record the domainconfig package tells tenants to create.
const TXTRecordName = "_booking-verify"

// Result is the outcome of a verification pass. Messages are ordered for
// display to the tenant; they explain partial failures without exposing
// resolver internals.
type Result struct {
	Success       bool     `json:"success"`
	CNAMEVerified bool     `json:"cname_verified"`
	TXTVerified   bool     `json:"txt_verified"`
	ARecordFound  bool     `json:"a_record_found"`
	IsRootDomain  bool     `json:"is_root_domain"`
	Messages      []string `json:"messages"`
}

// Option configures a verification pass.
type Option func(*config)

type config struct {
	resolver Resolver
	timeout  time.Duration
}

// WithResolver replaces the system resolver. Used by tests and by callers
// that want to pin a specific upstream.
func WithResolver(r Resolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithQueryTimeout sets the per-query timeout for the system resolver.
// Ignored when WithResolver is also provided.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// Verify checks the DNS records published for domain against the expected
// CNAME target and TXT verification code.
//
// Resolver failures never abort the pass: every failed query downgrades to
// a message on the Result so the tenant sees partial progress (for example
// "CNAME correct, TXT record still missing"). The returned error is non-nil
// only for invalid input.
//
// The success decision is an ordered table; the first matching rule wins:
//
//  1. CNAME verified and TXT verified.
//  2. A record found (proxy-flattened CNAME) and TXT verified.
//  3. TXT verified on a root domain. Flattening can mask the CNAME answer
//     at the apex, so ownership proof via TXT alone is accepted; a message
//     reminds the tenant to confirm the CNAME.
//  4. CNAME verified and no TXT value was requested.
//
// Anything else is a failure with all collected messages preserved in order.
func Verify(ctx context.Context, domain, expectedCNAME, expectedTXT string, opts ...Option) (*Result, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	cfg := &config{timeout: DefaultQueryTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.resolver == nil {
		cfg.resolver = NewSystemResolver(cfg.timeout)
	}

	labels := strings.Split(domain, ".")
	res := &Result{IsRootDomain: len(labels) == 2}

	// Root domain = last two labels; equals the domain itself for roots.
	root := domain
	if len(labels) > 2 {
		root = strings.Join(labels[len(labels)-2:], ".")
	}

	if expectedCNAME != "" {
		verifyCNAME(ctx, cfg.resolver, domain, expectedCNAME, res)
	}
	if expectedTXT != "" {
		verifyTXT(ctx, cfg.resolver, domain, root, expectedTXT, res)
	}

	switch {
	case res.CNAMEVerified && res.TXTVerified:
		res.Success = true
	case res.ARecordFound && res.TXTVerified:
		res.Success = true
		res.Messages = append(res.Messages, "Verified via proxied A records with TXT record.")
	case res.TXTVerified && res.IsRootDomain:
		// Deliberate leniency: apex flattening can hide the CNAME answer,
		// so a matching TXT record alone proves ownership for root domains.
		res.Success = true
		res.Messages = append(res.Messages, "Root domain verified via TXT record. Please ensure the CNAME is configured with your provider's proxy enabled.")
	case res.CNAMEVerified && expectedTXT == "":
		res.Success = true
	}

	return res, nil
}

// verifyCNAME checks the CNAME answer for domain, falling back to an
// A-record query when no CNAME exists. Proxying DNS providers flatten
// CNAMEs into A records, so any A answer counts as an acceptable
// equivalent.
func verifyCNAME(ctx context.Context, resolver Resolver, domain, expected string, res *Result) {
	expected = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(expected), "."))

	target, err := resolver.LookupCNAME(ctx, domain)
	if err == nil {
		target = strings.ToLower(strings.TrimSuffix(target, "."))
		// net.Resolver reports the queried name itself when the chain ends
		// without a CNAME; treat that the same as "no answer".
		if target != "" && target != domain {
			if target == expected || strings.Contains(target, expected) {
				res.CNAMEVerified = true
				res.Messages = append(res.Messages, "CNAME record is correctly configured.")
			} else {
				res.Messages = append(res.Messages, fmt.Sprintf("CNAME points to %s, expected %s.", target, expected))
			}
			return
		}
	} else if !isNoAnswer(err) {
		// Resolver infrastructure failure: record and stop, the fallback
		// query would hit the same broken path.
		res.Messages = append(res.Messages, "DNS servers are not responding for the CNAME lookup.")
		return
	}

	addrs, err := resolver.LookupHost(ctx, domain)
	if err == nil && len(addrs) > 0 {
		res.ARecordFound = true
		res.CNAMEVerified = true
		res.Messages = append(res.Messages, fmt.Sprintf("A record found: %s (proxied CNAME detected).", strings.Join(addrs, ", ")))
		return
	}

	if res.IsRootDomain {
		res.Messages = append(res.Messages, fmt.Sprintf("No A record found for root domain %s. Add a CNAME with Name=%q and Target=%q with your provider's proxy enabled.", domain, "@", expected))
	} else {
		res.Messages = append(res.Messages, "No CNAME or A record found for "+domain+".")
	}
}

// verifyTXT probes the candidate record locations in order and stops at the
// first whose value set contains the expected code exactly. Lookup errors at
// any location are swallowed and the next candidate tried.
func verifyTXT(ctx context.Context, resolver Resolver, domain, root, expected string, res *Result) {
	candidates := []string{
		TXTRecordName + "." + root,
		TXTRecordName + "." + domain,
		root,
		domain,
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		values, err := resolver.LookupTXT(ctx, name)
		if err != nil {
			continue
		}
		for _, v := range values {
			if v == expected {
				res.TXTVerified = true
				res.Messages = append(res.Messages, fmt.Sprintf("TXT verification record found at %s.", name))
				return
			}
		}
	}

	res.Messages = append(res.Messages, fmt.Sprintf("TXT record not found. Create a TXT record named %q at %s.", TXTRecordName, root))
}
