package iban

import (
	"fmt"
	"strings"
)

const (
	// CountryMontenegro is the ISO 3166 code of Montenegro.
	CountryMontenegro = "ME"

	montenegroLength           = 22
	montenegroCorrectionDigits = "25"
)

// Montenegro returns the rule for Montenegrin IBANs: "ME", 2 check digits,
// 3 digit bank code and 15 digit account number.
func Montenegro() CountryRule {
	rule, err := NewNumericRule(CountryMontenegro, montenegroLength, montenegroCorrectionDigits)
	if err != nil {
		// constants above are known to be valid
		panic(err)
	}
	return rule
}

// Registry resolves country codes to rules.
//
// A Registry is immutable once built and can be shared between goroutines.
type Registry struct {
	rules    map[string]CountryRule
	fallback CountryRule
}

// NewRegistry builds a registry from rules. defaultCountry selects the rule
// returned for empty or unsupported country codes and must be one of rules.
func NewRegistry(defaultCountry string, rules ...CountryRule) (*Registry, error) {
	reg := &Registry{rules: make(map[string]CountryRule, len(rules))}

	for _, rule := range rules {
		code := strings.ToUpper(rule.Country())
		if _, exists := reg.rules[code]; exists {
			return nil, fmt.Errorf("duplicate rule for country %s", code)
		}
		reg.rules[code] = rule
	}

	fallback, ok := reg.rules[strings.ToUpper(defaultCountry)]
	if !ok {
		return nil, fmt.Errorf("no rule registered for default country %q", defaultCountry)
	}
	reg.fallback = fallback

	return reg, nil
}

// DefaultRegistry returns a registry with every supported country, defaulting
// to Montenegro.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(CountryMontenegro, Montenegro())
	if err != nil {
		panic(err)
	}
	return reg
}

// Rule returns the rule for country. Unknown or empty codes resolve to the
// default rule.
func (r *Registry) Rule(country string) CountryRule {
	if rule, ok := r.rules[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return rule
	}
	return r.fallback
}

// Supports reports whether a rule is registered for country.
func (r *Registry) Supports(country string) bool {
	_, ok := r.rules[strings.ToUpper(strings.TrimSpace(country))]
	return ok
}
