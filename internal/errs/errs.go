// Package errs defines the error shapes returned to API clients.
//
// Handlers and services return *HTTPError values; the global error
// handler serializes them as JSON with their Status. Anything else is
// reported as a generic 500.
package errs
