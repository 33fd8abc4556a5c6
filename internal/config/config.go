// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Upload backends.
const (
	UploadBackendDir = "dir"
	UploadBackendS3  = "s3"
	UploadBackendDB  = "db"
)

// Config holds runtime settings for the account server.
type Config struct {
	Port           string
	DatabaseURL    string // SQLite path, or a postgres:// URL
	BcryptCost     int
	UploadBackend  string
	UploadDir      string
	MaxUploadBytes int64
	CORSOrigins    []string
	LogLevel       slog.Level
	S3             S3Config
}

// S3Config configures the S3 upload backend.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.DatabaseURL = "fitme.db"
	c.BcryptCost = 12
	c.UploadBackend = UploadBackendDir
	c.UploadDir = "uploads"
	c.MaxUploadBytes = 10 << 20
	c.CORSOrigins = []string{"http://localhost:5173", "http://localhost:5174"}
	c.LogLevel = slog.LevelInfo
	c.S3.Region = "us-east-1"
}

// Load reads the given env files (".env" when none are named; missing files
// are skipped), applies defaults, overlays environment variables and
// validates the result. Variables already set in the process environment
// win over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.overlay(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) overlay(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("PORT", &c.Port)
	str("DATABASE_URL", &c.DatabaseURL)
	str("UPLOAD_BACKEND", &c.UploadBackend)
	str("UPLOAD_DIR", &c.UploadDir)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_REGION", &c.S3.Region)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("S3_ACCESS_KEY", &c.S3.AccessKey)
	str("S3_SECRET_KEY", &c.S3.SecretKey)

	if v, ok := lookup("BCRYPT_COST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		c.BcryptCost = n
	}

	if v, ok := lookup("MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}

	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = splitOrigins(v)
	}

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	switch c.UploadBackend {
	case UploadBackendDir:
		if c.UploadDir == "" {
			return errors.New("UPLOAD_DIR is required for the dir upload backend")
		}
	case UploadBackendS3:
		if c.S3.Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 upload backend")
		}
	case UploadBackendDB:
	default:
		return fmt.Errorf("unknown UPLOAD_BACKEND %q", c.UploadBackend)
	}
	return nil
}

// IsPostgres reports whether DatabaseURL selects the PostgreSQL store.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// allow comma-separated list of origins
func splitOrigins(v string) []string {
	var origins []string
	for _, p := range strings.Split(v, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
