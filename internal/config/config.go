// Package config loads runtime settings from the environment.
//
// Variables use the BOOKSTORE_ prefix. The first underscore after the prefix
// separates the section from the key, so BOOKSTORE_SERVER_PORT maps to
// server.port and BOOKSTORE_DATABASE_URI to database.uri. A .env file in the
// working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/aoideee/bookshelf-api/internal/validator"
)

// EnvPrefix is stripped from every variable name before mapping.
const EnvPrefix = "BOOKSTORE_"

// Config is the root configuration object.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

// Primary holds the runtime environment name.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development staging production"`
}

// ServerConfig groups settings for the HTTP server.
type ServerConfig struct {
	Port               int           `koanf:"port" validate:"required,min=1,max=65535"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"required"`
	CORSAllowedOrigins string        `koanf:"cors_allowed_origins"`
	LimiterEnabled     bool          `koanf:"limiter_enabled"`
	LimiterRPS         float64       `koanf:"limiter_rps" validate:"required_if=LimiterEnabled true"`
	LimiterBurst       int           `koanf:"limiter_burst" validate:"required_if=LimiterEnabled true"`
}

// AllowedOrigins splits the comma-separated origin list, dropping blanks.
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DatabaseConfig selects and addresses the book store.
type DatabaseConfig struct {
	Driver     string        `koanf:"driver" validate:"required,oneof=mongo postgres memory"`
	URI        string        `koanf:"uri" validate:"required_unless=Driver memory"`
	Name       string        `koanf:"name" validate:"required_if=Driver mongo"`
	Collection string        `koanf:"collection" validate:"required_unless=Driver memory"`
	Timeout    time.Duration `koanf:"timeout"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=json pretty"`
}

// Default returns the configuration used for any variable that is not set.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               4000,
			ReadTimeout:        5 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        time.Minute,
			ShutdownTimeout:    20 * time.Second,
			CORSAllowedOrigins: "*",
			LimiterEnabled:     true,
			LimiterRPS:         2,
			LimiterBurst:       4,
		},
		Database: DatabaseConfig{
			Driver:     "mongo",
			URI:        "mongodb://localhost:27017",
			Name:       "bookshelf",
			Collection: "books",
			Timeout:    5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads BOOKSTORE_* variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if !v.Valid() {
		return nil, fmt.Errorf("invalid config: %s", v.Summary())
	}

	return cfg, nil
}
