package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string        `env:"APP_ENV" envDefault:"dev"`
	Port          string        `env:"PORT" envDefault:"8080"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	DBDriver      string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN         string        `env:"DB_DSN" envDefault:"./dev.db"`
	DBTimeout     time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"30s"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"720h"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	AdminLogin    string        `env:"ADMIN_LOGIN"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	AdminFullName string        `env:"ADMIN_FULL_NAME" envDefault:"Адміністратор"`
}

// Load reads a local .env file if present, then parses the environment.
func Load() (Config, error) {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the application runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

// Warnings lists settings that are empty but should be set outside local
// development.
func (c Config) Warnings() []string {
	var warnings []string
	if c.AdminLogin == "" {
		warnings = append(warnings, "ADMIN_LOGIN is not set")
	}
	if c.AdminPassword == "" {
		warnings = append(warnings, "ADMIN_PASSWORD is not set")
	}
	if c.SessionSecret == "" {
		warnings = append(warnings, "SESSION_SECRET is not set")
	}
	return warnings
}
