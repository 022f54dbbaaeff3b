package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json text"`

	ShutdownTimeoutSeconds   int   `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	ReadHeaderTimeoutSeconds int   `mapstructure:"read_header_timeout_seconds" validate:"gt=0"`
	MaxBodyBytes             int64 `mapstructure:"max_body_bytes" validate:"gt=0"`
	HealthTimeoutSeconds     int   `mapstructure:"health_timeout_seconds" validate:"gt=0"`
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a postgres connection string or, for sqlite, a DSN such as
	// "file:tasks.db?_foreign_keys=on".
	URL string `mapstructure:"url" validate:"required"`

	MaxOpenConns           int  `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns           int  `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int  `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// APIKey is the shared secret required on every business route. It may be
	// empty at startup; the access gate then answers 500 on those routes.
	APIKey string `mapstructure:"api_key"`
}
