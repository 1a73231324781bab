// Package config loads the shared configuration for all operational binaries.
//
// Values come from the process environment, optionally seeded from a .env file
// in the working directory. The same Config type serves every script; each one
// reads only the fields it needs.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENVIRONMENT, default=development"`
	LogLevel string `env:"LOG_LEVEL,   default=info"`

	Mongo MongoConfig
	AWS   AWSConfig

	// DocsPath is the markdown file maintained by the update-docs script.
	DocsPath string `env:"API_DOCS_PATH, default=API_DOCUMENTATION.md"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,  default=idance"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type AWSConfig struct {
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Region          string `env:"AWS_REGION,     default=us-east-1"`
	Bucket          string `env:"S3_BUCKET_NAME, default=idanceshreyansh"`
}

// Load reads configuration from a .env file (when present) and the process
// environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// UsersCollection resolves the users collection for the configured
// environment. The mapping is fixed: production and test environments have
// dedicated suffixed collections, everything else shares the base one.
func (c *Config) UsersCollection() string {
	switch c.Env {
	case "production":
		return "users_prod"
	case "test":
		return "users_test"
	default:
		return "users"
	}
}

// IsProduction reports whether the configured environment is production.
// Destructive scripts consult this before touching anything.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
