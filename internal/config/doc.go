// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and environment variables. It provides
// type-safe access to the settings the server, database pool and access gate
// need while keeping configuration details separate from business logic.
package config
