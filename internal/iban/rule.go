package iban

import (
	"fmt"
	"strings"
)

// NumericRule is a CountryRule for countries whose BBAN is made only of
// digits and has a fixed length, e.g. Montenegro (ME + 2 check digits +
// 3 digit bank code + 15 digit account number).
type NumericRule struct {
	country          string
	length           int
	correctionDigits string
}

// NewNumericRule builds a rule for a country whose IBAN is country code,
// two check digits and an all-digit BBAN, length characters in total.
//
// correctionDigits are the check digits substituted by SuggestCorrection.
func NewNumericRule(country string, length int, correctionDigits string) (*NumericRule, error) {
	country = strings.ToUpper(country)
	if len(country) != 2 || !isUpperLetters(country) {
		return nil, fmt.Errorf("invalid country code %q", country)
	}
	if length <= 4 {
		return nil, fmt.Errorf("invalid IBAN length %d for %s", length, country)
	}
	if len(correctionDigits) != 2 || !isDigits(correctionDigits) {
		return nil, fmt.Errorf("invalid correction check digits %q for %s", correctionDigits, country)
	}

	return &NumericRule{
		country:          country,
		length:           length,
		correctionDigits: correctionDigits,
	}, nil
}

// Country implements CountryRule.
func (r *NumericRule) Country() string {
	return r.country
}

// Length returns the exact length of a complete IBAN for this country.
func (r *NumericRule) Length() int {
	return r.length
}

// IsValid implements CountryRule.
func (r *NumericRule) IsValid(candidate string) bool {
	normalized := Normalize(candidate)

	if len(normalized) != r.length {
		return false
	}

	if !r.hasStructure(normalized) {
		return false
	}

	return HasValidChecksum(normalized)
}

// IsValidPartial implements CountryRule.
//
// At least one character must follow the country code, so a bare "ME" is not
// a plausible prefix.
func (r *NumericRule) IsValidPartial(candidate string) bool {
	normalized := Normalize(candidate)

	if len(normalized) > r.length {
		return false
	}

	if !strings.HasPrefix(normalized, r.country) {
		return false
	}

	return isDigits(normalized[len(r.country):])
}

// SuggestCorrection implements CountryRule.
//
// Input longer than the country length is truncated. The country code and
// check digits are then replaced with the rule's correction digits and the
// result is returned only if it passes IsValid. Nothing but the first four
// characters is ever changed.
func (r *NumericRule) SuggestCorrection(candidate string) (string, bool) {
	normalized := []rune(Normalize(candidate))

	if len(normalized) > r.length {
		normalized = normalized[:r.length]
	}

	if len(normalized) != r.length {
		return "", false
	}

	if !isDigits(string(normalized[2:])) {
		return "", false
	}

	suggested := r.country + r.correctionDigits + string(normalized[4:])
	if !r.IsValid(suggested) {
		return "", false
	}

	return suggested, true
}

// hasStructure checks the country prefix and that every character after it,
// check digits included, is a digit. normalized must already have the
// expected length.
func (r *NumericRule) hasStructure(normalized string) bool {
	return strings.HasPrefix(normalized, r.country) && isDigits(normalized[len(r.country):])
}
