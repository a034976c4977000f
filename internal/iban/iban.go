// Package iban validates International Bank Account Numbers.
//
// Validation is organised around country rules. A CountryRule knows the
// length and structure of one country's IBAN, how to check a partially
// typed value, and how to propose a corrected value when the check digits
// are wrong. Rules are pure and safe for concurrent use.
//
// Rules are looked up through a Registry keyed by ISO 3166 country code.
package iban

import (
	"strings"
)

// CountryRule is the validation capability for a single country.
type CountryRule interface {
	// Country returns the two-letter country code the rule applies to.
	Country() string

	// IsValid reports whether candidate is a complete, checksum-valid IBAN.
	IsValid(candidate string) bool

	// IsValidPartial reports whether candidate is a plausible prefix of an
	// IBAN, e.g. while the user is still typing. No checksum is computed.
	IsValidPartial(candidate string) bool

	// SuggestCorrection proposes a corrected IBAN. The second return value
	// is false when no valid suggestion could be built.
	SuggestCorrection(candidate string) (string, bool)
}

// Normalize removes spaces and upper-cases letters.
//
// Only the ASCII space is stripped. Any other whitespace survives and makes
// the value fail the structural checks.
func Normalize(candidate string) string {
	return strings.ToUpper(strings.ReplaceAll(candidate, " ", ""))
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isUpperLetters reports whether s is non-empty and made only of A-Z.
func isUpperLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
