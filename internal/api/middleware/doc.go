// Package middleware provides the HTTP middleware that wraps the task routes:
// trace id and request-scoped logger injection, per-request access logging,
// panic recovery and the static API key gate.
package middleware
