// Package api provides the HTTP handlers for the task API: the five task
// routes, the health probe, and the single place where errors are mapped to
// status codes and response envelopes.
//
// Handlers decode requests, call the service layer and write JSON. They never
// expose internal error text to clients; 5xx details are logged after
// redaction.
package api
