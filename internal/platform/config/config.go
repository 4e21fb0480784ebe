// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables into typed configuration structs.

It uses 'caarlos0/env' so that missing required values fail at startup instead of
at first use.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Two shapes exist: [Config] for the API server and [CatalogConfig] for the
one-shot catalog loader, which only needs the database.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Foodgram API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// CatalogCacheTTL bounds how long tag and ingredient listings stay cached.
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m"`

	// Identity provider public key used to verify bearer tokens (RS256)
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// JWTIssuer is matched against the 'iss' claim. Empty skips the check.
	JWTIssuer string `env:"JWT_ISSUER"`

	// Cross-Origin Resource Sharing
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// DefaultRecipesLimit caps recipe previews on subscription cards when the
	// client does not send recipes_limit.
	DefaultRecipesLimit int `env:"DEFAULT_RECIPES_LIMIT" envDefault:"3"`
}

// CatalogConfig is the reduced configuration of the catalog loader.
type CatalogConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RedisURL is optional; when set, the catalog cache is invalidated after a load.
	RedisURL string `env:"REDIS_URL"`
	Debug    bool   `env:"DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.DefaultRecipesLimit < 0 {
		return nil, fmt.Errorf("config: DEFAULT_RECIPES_LIMIT must not be negative, got %d", cfg.DefaultRecipesLimit)
	}

	return cfg, nil
}

// LoadCatalog parses the loader configuration.
func LoadCatalog() (*CatalogConfig, error) {
	cfg := &CatalogConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS allow-list. Development accepts any origin.
func (c *Config) AllowedOrigins() []string {
	if c.IsDevelopment() && len(c.CORSOrigins) == 0 {
		return []string{"*"}
	}
	return c.CORSOrigins
}
