// Package model holds the domain types shared between the repository,
// service and handler layers.
package model

import (
	"time"
)

// ValidationStatus is the outcome of an IBAN validation.
type ValidationStatus string

const (
	ValidationStatusValid    ValidationStatus = "Valid"
	ValidationStatusNotValid ValidationStatus = "Not valid"
)

// StatusFromBool maps a validity flag to a ValidationStatus.
func StatusFromBool(valid bool) ValidationStatus {
	if valid {
		return ValidationStatusValid
	}
	return ValidationStatusNotValid
}

// IsKnown reports whether s is one of the defined statuses.
func (s ValidationStatus) IsKnown() bool {
	return s == ValidationStatusValid || s == ValidationStatusNotValid
}

// IbanCheck is one persisted full-validation attempt. Iban holds the value
// exactly as the caller submitted it.
type IbanCheck struct {
	ID        int64            `json:"id" db:"id"`
	Iban      string           `json:"iban" db:"iban"`
	Status    ValidationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// IbanCheckSummary counts checks by status over a time window.
type IbanCheckSummary struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Valid    int64     `json:"valid"`
	NotValid int64     `json:"not_valid"`
}

// Total returns the number of checks in the window.
func (s IbanCheckSummary) Total() int64 {
	return s.Valid + s.NotValid
}

// IbanValidation is the result of a full validation. SuggestedIban is nil
// when the input is valid or no correction could be found.
type IbanValidation struct {
	ID            int64            `json:"id"`
	Status        ValidationStatus `json:"status"`
	Iban          string           `json:"iban"`
	SuggestedIban *string          `json:"suggested_iban"`
	CreatedAt     time.Time        `json:"created_at"`
}

// IbanPartialValidation is the result of a partial validation.
type IbanPartialValidation struct {
	Status ValidationStatus `json:"status"`
}
