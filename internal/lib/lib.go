// Package lib holds supporting code outside the request path: background
// jobs on Asynq, the Resend email client and small shared helpers.
package lib
