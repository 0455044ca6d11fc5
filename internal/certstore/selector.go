// Package certstore selects certificates from a machine-store inventory by
// composable criteria. The admin gateway supplies the inventory; this
// package only filters and ranks it.
package certstore

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Certificate describes one certificate in a store inventory.
type Certificate struct {
	Thumbprint        string    `json:"thumbprint" mapstructure:"thumbprint"`
	Subject           string    `json:"subject" mapstructure:"subject"`
	FriendlyName      string    `json:"friendly_name" mapstructure:"friendly_name"`
	Issuer            string    `json:"issuer" mapstructure:"issuer"`
	NotBefore         time.Time `json:"not_before" mapstructure:"not_before"`
	NotAfter          time.Time `json:"not_after" mapstructure:"not_after"`
	DNSNames          []string  `json:"dns_names" mapstructure:"dns_names"`
	KeyUsages         []string  `json:"key_usages" mapstructure:"key_usages"`
	EnhancedKeyUsages []string  `json:"enhanced_key_usages" mapstructure:"enhanced_key_usages"`
}

// Criteria filters an inventory. Every populated criterion must match
// (they are ANDed); zero values are ignored. Unless AllowExpired is set,
// only certificates whose validity window contains the evaluation time
// are considered.
type Criteria struct {
	Thumbprint        string
	FriendlyName      string
	Subject           string
	Issuer            string
	DNSNames          []string
	KeyUsages         []string
	EnhancedKeyUsages []string
	AllowExpired      bool

	// Now is the validity evaluation time; the zero value means
	// time.Now(). Tests pin it.
	Now time.Time
}

func (c Criteria) String() string {
	var parts []string
	if c.Thumbprint != "" {
		parts = append(parts, "thumbprint="+c.Thumbprint)
	}
	if c.FriendlyName != "" {
		parts = append(parts, "friendly_name="+c.FriendlyName)
	}
	if c.Subject != "" {
		parts = append(parts, "subject="+c.Subject)
	}
	if c.Issuer != "" {
		parts = append(parts, "issuer="+c.Issuer)
	}
	if len(c.DNSNames) > 0 {
		parts = append(parts, "dns_names="+strings.Join(c.DNSNames, ","))
	}
	if len(c.KeyUsages) > 0 {
		parts = append(parts, "key_usages="+strings.Join(c.KeyUsages, ","))
	}
	if len(c.EnhancedKeyUsages) > 0 {
		parts = append(parts, "enhanced_key_usages="+strings.Join(c.EnhancedKeyUsages, ","))
	}
	if len(parts) == 0 {
		return "<any>"
	}
	return strings.Join(parts, " ")
}

func (c Criteria) matches(cert Certificate, now time.Time) bool {
	if c.Thumbprint != "" && !strings.EqualFold(cert.Thumbprint, c.Thumbprint) {
		return false
	}
	if c.FriendlyName != "" && cert.FriendlyName != c.FriendlyName {
		return false
	}
	if c.Subject != "" && cert.Subject != c.Subject {
		return false
	}
	if c.Issuer != "" && cert.Issuer != c.Issuer {
		return false
	}
	if !containsAll(cert.DNSNames, c.DNSNames) {
		return false
	}
	if !containsAll(cert.KeyUsages, c.KeyUsages) {
		return false
	}
	if !containsAll(cert.EnhancedKeyUsages, c.EnhancedKeyUsages) {
		return false
	}
	if !c.AllowExpired {
		if now.Before(cert.NotBefore) || now.After(cert.NotAfter) {
			return false
		}
	}
	return true
}

// containsAll reports whether every wanted element appears in have.
func containsAll(have, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Select returns the certificates matching the criteria, ordered by
// NotAfter descending so that the first element is the match expiring
// last. Callers wanting a single certificate take the first element. An
// empty result is not an error.
func Select(inventory []Certificate, criteria Criteria) []Certificate {
	now := criteria.Now
	if now.IsZero() {
		now = time.Now()
	}

	var matches []Certificate
	for _, cert := range inventory {
		if criteria.matches(cert, now) {
			matches = append(matches, cert)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].NotAfter.After(matches[j].NotAfter)
	})
	return matches
}

// ResolutionError reports that a certificate reference did not resolve to
// a usable certificate.
type ResolutionError struct {
	Criteria Criteria
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no certificate in the store matches %s", e.Criteria)
}

// ResolveOne selects the single best match for the criteria: the match
// with the longest remaining validity. It returns a *ResolutionError when
// nothing matches.
func ResolveOne(inventory []Certificate, criteria Criteria) (Certificate, error) {
	matches := Select(inventory, criteria)
	if len(matches) == 0 {
		return Certificate{}, &ResolutionError{Criteria: criteria}
	}
	return matches[0], nil
}
