package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig selects how request identity is established. The static mode
// attaches a fixed development identity; jwt verifies bearer tokens and
// requires a signing secret of at least 32 bytes.
type AuthConfig struct {
	Mode      string `mapstructure:"mode" validate:"required,oneof=static jwt"`
	JWTSecret string `mapstructure:"jwt_secret" validate:"required_if=Mode jwt,omitempty,min=32"`
}
