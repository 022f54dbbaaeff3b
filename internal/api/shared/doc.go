// Package shared holds the HTTP helpers used by both the handlers in
// internal/api and the middleware in internal/api/middleware: JSON response
// writers, request decoding, trace id propagation and the StatusError type
// that lets a fault carry its own HTTP status.
package shared
