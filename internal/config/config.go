// Package config handles application configuration loading. Values are layered
// from struct defaults, an optional YAML file and environment variables, and
// exposed through a single Config struct used across the application.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Config holds all application configuration values.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Storage   StorageConfig   `koanf:"storage"`
	S3        S3Config        `koanf:"s3"`
	Valkey    ValkeyConfig    `koanf:"valkey"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Log       LogConfig       `koanf:"log"`
	Admin     AdminConfig     `koanf:"admin"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Env          string        `koanf:"env"` // "development", "production", "testing"
	MaxBodyBytes int64         `koanf:"max_body_bytes"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// DatabaseConfig selects the SQL driver and its connection parameters.
type DatabaseConfig struct {
	Driver     string `koanf:"driver"` // "postgres" or "sqlite"
	Host       string `koanf:"host"`
	Port       int    `koanf:"port"`
	User       string `koanf:"user"`
	Password   string `koanf:"password"`
	Name       string `koanf:"name"`
	SSLMode    string `koanf:"sslmode"`
	SQLitePath string `koanf:"sqlite_path"`
	Seed       bool   `koanf:"seed"`
}

// StorageConfig selects where uploaded assets are written.
type StorageConfig struct {
	Backend   string `koanf:"backend"` // "local" or "s3"
	UploadDir string `koanf:"upload_dir"`
	URLPrefix string `koanf:"url_prefix"`
}

// S3Config holds S3-compatible object storage settings.
type S3Config struct {
	Endpoint  string `koanf:"endpoint"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	PublicURL string `koanf:"public_url"`
}

// ValkeyConfig holds the Valkey (Redis-compatible) connection. An empty host
// disables it and rate limiting falls back to in-process counters.
type ValkeyConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig limits requests per client IP on mutating API routes.
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

// LogConfig controls the process-wide logger.
type LogConfig struct {
	Level      string `koanf:"level"`  // debug, info, warn, error
	Format     string `koanf:"format"` // json or console
	File       string `koanf:"file"`   // optional rotating log file
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

// AdminConfig is the administrator account created by seeding.
type AdminConfig struct {
	Username string `koanf:"username"`
	Email    string `koanf:"email"`
	Password string `koanf:"password"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         5000,
			Env:          "development",
			MaxBodyBytes: 100 << 20,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
		},
		Database: DatabaseConfig{
			Driver:     DriverSQLite,
			Host:       "localhost",
			Port:       5432,
			User:       "zamzam",
			Password:   "changeme",
			Name:       "zamzam",
			SSLMode:    "disable",
			SQLitePath: "data/app.db",
			Seed:       true,
		},
		Storage: StorageConfig{
			Backend:   BackendLocal,
			UploadDir: "uploads",
			URLPrefix: "/uploads",
		},
		S3: S3Config{
			Region: "us-east-1",
		},
		Valkey: ValkeyConfig{
			Port: 6379,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		Admin: AdminConfig{
			Username: "abdallah",
			Email:    "abdallah@zamzam-gallery.com",
			Password: "admin123",
		},
	}
}

// Supported database drivers and storage backends.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BackendLocal = "local"
	BackendS3    = "s3"
)

// Validate checks the loaded configuration for impossible combinations.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	switch c.Storage.Backend {
	case BackendLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("storage.upload_dir is required for the local backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required for the s3 backend")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendLocal, BackendS3, c.Storage.Backend)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("rate_limit.requests must not be negative")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive when rate limiting is enabled")
	}

	if c.Server.Env == "production" && c.Database.Driver == DriverPostgres && c.Database.Password == "changeme" {
		return fmt.Errorf("database.password must be set in production")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.Driver == DriverSQLite {
		return SQLiteDSN(c.Database.SQLitePath)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + strconv.Itoa(c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// SQLiteDSN builds a modernc.org/sqlite DSN with the pragmas the stores rely on:
// foreign keys on, a busy timeout, WAL journaling and a sortable time format.
func SQLiteDSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_time_format=sqlite"
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ValkeyAddr returns the Valkey address, or "" when Valkey is disabled.
func (c *Config) ValkeyAddr() string {
	if c.Valkey.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Valkey.Host, c.Valkey.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Server.Env == "development"
}
