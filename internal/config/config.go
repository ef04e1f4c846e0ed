// Package config provides the application configuration with environment
// overrides layered on top of compiled-in defaults. The defaults alone are a
// complete, working configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the fetch pipeline.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxAttempts   = 3
	DefaultRetryDelay    = 500 * time.Millisecond
	DefaultMaxBytes      = 50 << 20 // 50 MiB
	DefaultOutputDir     = "fetched_images"
	DefaultUserAgent     = "image-fetcher/1.0"
	DefaultAllowedPrefix = "image/"
)

// HTTPConfig configures the HTTP client.
type HTTPConfig struct {
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	UserAgent   string
}

// FetchConfig configures response validation.
type FetchConfig struct {
	MaxBytes            int64
	AllowedTypePrefixes []string
}

// S3Config configures the S3 storage backend.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Backend   string // "fs" or "s3"
	OutputDir string
	S3        S3Config
}

// Config is the full application configuration.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	Fetch       FetchConfig
	Storage     StorageConfig
}

// Load builds the configuration from defaults and environment overrides.
// .env files are loaded first so their values are visible to os.Getenv.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := &Config{
		ServiceName: GetEnv("SERVICE_NAME", "image_fetcher"),
		Environment: GetEnv("ENVIRONMENT", "local"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Timeout:     GetEnvDuration("HTTP_TIMEOUT", DefaultTimeout.String()),
			MaxAttempts: GetEnvInt("HTTP_MAX_ATTEMPTS", DefaultMaxAttempts),
			RetryDelay:  GetEnvDuration("HTTP_RETRY_DELAY", DefaultRetryDelay.String()),
			UserAgent:   GetEnv("HTTP_USER_AGENT", DefaultUserAgent),
		},
		Fetch: FetchConfig{
			MaxBytes:            GetEnvInt64("FETCH_MAX_BYTES", DefaultMaxBytes),
			AllowedTypePrefixes: splitList(GetEnv("FETCH_ALLOWED_TYPES", DefaultAllowedPrefix)),
		},
		Storage: StorageConfig{
			Backend:   GetEnv("STORAGE_BACKEND", "fs"),
			OutputDir: GetEnv("OUTPUT_DIR", DefaultOutputDir),
			S3: S3Config{
				Bucket:          GetEnv("S3_BUCKET", ""),
				Region:          GetEnv("S3_REGION", "us-east-1"),
				Endpoint:        GetEnv("S3_ENDPOINT", ""),
				Prefix:          GetEnv("S3_PREFIX", ""),
				AccessKeyID:     GetEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: GetEnv("S3_SECRET_ACCESS_KEY", ""),
			},
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.HTTP.MaxAttempts < 1 {
		return fmt.Errorf("HTTP_MAX_ATTEMPTS must be at least 1, got %d", c.HTTP.MaxAttempts)
	}
	if c.Fetch.MaxBytes <= 0 {
		return fmt.Errorf("FETCH_MAX_BYTES must be positive, got %d", c.Fetch.MaxBytes)
	}
	if len(c.Fetch.AllowedTypePrefixes) == 0 {
		return fmt.Errorf("FETCH_ALLOWED_TYPES must not be empty")
	}
	switch c.Storage.Backend {
	case "fs":
		if c.Storage.OutputDir == "" {
			return fmt.Errorf("OUTPUT_DIR must not be empty")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() error {
	// Load base .env file (optional)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	// Load environment-specific file (optional)
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env != "" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Overload(envFile); err != nil {
				return fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	// Load .env.local for local overrides (highest precedence, optional)
	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return fmt.Errorf("failed to load .env.local: %w", err)
		}
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
