// Package domain contains the task entity, its status values and the
// validation rules for inbound task payloads. It has no knowledge of HTTP
// or of the database; both the service layer and the API layer depend on it.
package domain
