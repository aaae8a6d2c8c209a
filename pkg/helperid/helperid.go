// Package helperid issues the stable identity that correlates a claimant
// across slots, keyed by their normalized contact address.
package helperid

import (
	"strings"

	"github.com/samborkent/uuidv7"
)

// New returns a fresh helper identity.
func New() string {
	return uuidv7.New().String()
}

// NormalizeContact canonicalizes a contact address for identity lookups.
// Claim and cancellation matching is case-insensitive.
func NormalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}
