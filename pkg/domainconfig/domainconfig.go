package domainconfig

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const (
	// TXTRecordName is the fixed name of the primary verification TXT record.
	TXTRecordName = "_booking-verify"

	// altTXTPrefix prefixes the tenant-scoped alternative TXT record name.
	altTXTPrefix = "_bv-"

	// uniqueIDLength is the length of the derived tenant identifier.
	uniqueIDLength = 12

	// codeSuffixLength is the length of the random part of a verification code.
	codeSuffixLength = 8

	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RecordType identifies the DNS record type a tenant must publish.
type RecordType string

const (
	RecordTypeCNAME          RecordType = "CNAME"
	RecordTypeCNAMEFlattened RecordType = "CNAME (Flattened)"
	RecordTypeTXT            RecordType = "TXT"
)

// Record describes a single DNS record the tenant must create.
type Record struct {
	Type  RecordType `json:"type"`
	Name  string     `json:"name"`
	Value string     `json:"value"`
	Note  string     `json:"note,omitempty"`
}

// Config is the complete DNS configuration for a tenant's custom domain.
// It is pure data: callers render it as a setup page or API payload.
type Config struct {
	FullDomain     string   `json:"full_domain"`
	Subdomain      string   `json:"subdomain"`
	RootDomain     string   `json:"root_domain"`
	IsRootDomain   bool     `json:"is_root_domain"`
	TenantUniqueID string   `json:"tenant_unique_id"`
	CNAME          Record   `json:"cname"`
	TXT            Record   `json:"txt"`
	TXTAlternative Record   `json:"txt_alternative"`
	Instructions   []string `json:"instructions"`
}

// Generator derives the per-tenant DNS configuration from platform constants.
// It performs no I/O and its output is fully determined by its inputs.
type Generator struct {
	hostingDomain string
	secret        string
}

// New creates a Generator.
//
// hostingDomain is the platform's hosting target (where CNAME records point).
// secret seeds tenant-unique record names; only its first 10 bytes are used,
// so rotating the tail of a shared application secret does not invalidate
// already-published records.
func New(hostingDomain, secret string) (*Generator, error) {
	if hostingDomain == "" {
		return nil, ErrEmptyHostingDomain
	}
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Generator{hostingDomain: hostingDomain, secret: secret}, nil
}

// IsRootDomain reports whether domain consists of exactly two labels
// (e.g. "example.com"). Root domains cannot carry literal CNAME records,
// so they require provider-side CNAME flattening.
func IsRootDomain(domain string) bool {
	return len(splitLabels(domain)) == 2
}

// Split separates a domain into its subdomain label and root domain.
// For root domains the subdomain is "@" (the DNS apex placeholder).
//
//	Split("book.example.com") // "book", "example.com"
//	Split("example.com")      // "@", "example.com"
func Split(domain string) (subdomain, root string) {
	labels := splitLabels(domain)
	if len(labels) > 2 {
		return labels[0], strings.Join(labels[1:], ".")
	}
	return "@", strings.Join(labels, ".")
}

// UniqueID derives a stable 12-character identifier for a tenant.
// It names the alternative TXT record so that several tenants managed under
// one registrar account publish non-colliding records. It is never used as
// a verification credential by itself.
func (g *Generator) UniqueID(tenantID string) string {
	seed := g.secret
	if len(seed) > 10 {
		seed = seed[:10]
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "provider-%s-%s", tenantID, seed))
	return hex.EncodeToString(sum[:])[:uniqueIDLength]
}

// Config builds the DNS configuration a tenant must publish for customDomain.
func (g *Generator) Config(tenantID, customDomain string) (*Config, error) {
	domain := strings.ToLower(strings.TrimSpace(customDomain))
	if domain == "" {
		return nil, ErrEmptyDomain
	}
	if len(splitLabels(domain)) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, customDomain)
	}

	subdomain, root := Split(domain)
	isRoot := IsRootDomain(domain)
	uniqueID := g.UniqueID(tenantID)

	cname := Record{
		Type:  RecordTypeCNAME,
		Name:  subdomain,
		Value: g.hostingDomain,
		Note:  "Standard CNAME record",
	}
	if isRoot {
		// The apex cannot hold a literal CNAME; the DNS provider must
		// flatten it into A records.
		cname.Type = RecordTypeCNAMEFlattened
		cname.Note = "Your DNS provider will automatically flatten this CNAME to A records"
	}

	return &Config{
		FullDomain:     domain,
		Subdomain:      subdomain,
		RootDomain:     root,
		IsRootDomain:   isRoot,
		TenantUniqueID: uniqueID,
		CNAME:          cname,
		TXT: Record{
			Type:  RecordTypeTXT,
			Name:  TXTRecordName,
			Value: "", // filled by WithVerificationCode or by the caller
			Note:  "Verifies domain ownership",
		},
		TXTAlternative: Record{
			Type:  RecordTypeTXT,
			Name:  altTXTPrefix + uniqueID,
			Value: "",
			Note:  "Alternative verification record (tenant-specific)",
		},
		Instructions: instructions(subdomain, g.hostingDomain, isRoot),
	}, nil
}

// WithVerificationCode returns a copy of the config with both TXT record
// values set to code.
func (c *Config) WithVerificationCode(code string) *Config {
	out := *c
	out.TXT.Value = code
	out.TXTAlternative.Value = code
	out.Instructions = append([]string(nil), c.Instructions...)
	return &out
}

// NewVerificationCode mints a fresh domain verification code bound to the
// given tenant unique ID. The format is "bv-{uniqueID}-{random}".
func NewVerificationCode(uniqueID string) (string, error) {
	suffix := make([]byte, codeSuffixLength)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("domainconfig: generate verification code: %w", err)
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("bv-%s-%s", uniqueID, suffix), nil
}

func splitLabels(domain string) []string {
	domain = strings.Trim(strings.TrimSpace(domain), ".")
	if domain == "" {
		return nil
	}
	return strings.Split(domain, ".")
}

func instructions(subdomain, target string, isRoot bool) []string {
	if isRoot {
		return []string{
			"Go to your DNS provider dashboard and select your domain",
			fmt.Sprintf("Add CNAME record: Name=%q, Target=%q", "@", target),
			"Your provider will flatten the apex CNAME into A records automatically",
			fmt.Sprintf("Add TXT record: Name=%q with the verification code as value", TXTRecordName),
			"IMPORTANT: enable your provider's proxy for the record (required for root domains)",
			"Set the SSL/TLS encryption mode to Full (Strict)",
			"Wait for DNS propagation (5 minutes to 24 hours)",
			"Click \"Verify Domain\" to complete setup",
		}
	}
	return []string{
		"Go to your DNS provider dashboard and select your domain",
		fmt.Sprintf("Add CNAME record: Name=%q, Target=%q", subdomain, target),
		fmt.Sprintf("Add TXT record: Name=%q with the verification code as value", TXTRecordName),
		"Enable your provider's proxy for the CNAME record",
		"Set the SSL/TLS encryption mode to Full (Strict)",
		"Wait for DNS propagation (5 minutes to 24 hours)",
		"Click \"Verify Domain\" to complete setup",
	}
}
