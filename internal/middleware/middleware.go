// Package middleware holds the echo middleware shared by every route:
// request ids, request-scoped logging, tracing, metrics, Clerk
// authentication, rate limit telemetry and the global error handler.
package middleware
