// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first (if present) through 'joho/godotenv'; real environment variables
always win over values from the file.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, storage) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Heroes API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"         envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// AppDomain is the public origin used to build local upload URLs.
	AppDomain string `env:"APP_DOMAIN" envDefault:"http://localhost:8080"`

	// Upload directories. Both must live on the same filesystem so that
	// moving a staged file is a rename.
	TempUploadDir string `env:"TEMP_UPLOAD_DIR" envDefault:"./temp"`
	UploadDir     string `env:"UPLOAD_DIR"      envDefault:"./uploads"`

	// ObjectStorageEnabled selects the object storage variant instead of the
	// local upload directory.
	ObjectStorageEnabled bool `env:"ENABLE_OBJECT_STORAGE" envDefault:"false"`

	// Object Storage (S3-compatible: AWS, Cloudflare R2, MinIO)
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string `env:"S3_PUBLIC_URL"`

	// Cross-Origin Resource Sharing
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] and validates it.
func Parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if c.ObjectStorageEnabled {
		if c.S3Bucket == "" {
			return errors.New("config: S3_BUCKET is required when ENABLE_OBJECT_STORAGE is true")
		}
		if c.S3PublicURL == "" {
			return errors.New("config: S3_PUBLIC_URL is required when ENABLE_OBJECT_STORAGE is true")
		}
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the CORS allow-list.
func (c *Config) AllowedOrigins() []string {
	return c.CORSOrigins
}
