package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the flat environment variable names the
// deployment environment injects. Names are unprefixed on purpose: the
// orchestrator provides DATABASE_URL and PORT as-is.
var envBindings = map[string]string{
	"server.port":      "PORT",
	"server.log_level": "LOG_LEVEL",
	"database.url":     "DATABASE_URL",
	"auth.mode":        "AUTH_MODE",
	"auth.jwt_secret":  "AUTH_JWT_SECRET",
}

// Load reads configuration from environment variables, applies defaults for
// whatever the environment leaves unset, and validates the result.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.mode", "static")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateConfig runs struct tag validation and reports every failed field
// in a single error.
func validateConfig(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	parts := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		parts[i] = fmt.Sprintf("%s: %s", fe.StructNamespace(), fe.Tag())
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(parts, "; "))
}
