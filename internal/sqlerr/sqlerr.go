// Package sqlerr translates PostgreSQL driver errors into client-facing
// errs.HTTPError values.
//
// Constraint violations become 400s with generated codes such as
// IBAN_CHECK_REQUIRED, missing rows become 404s, lost connections become
// 503s and everything else is a 500.
package sqlerr
