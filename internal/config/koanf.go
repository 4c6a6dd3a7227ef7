package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// configFileEnv names the environment variable that points at a YAML config file.
const configFileEnv = "ZAMZAM_CONFIG"

// sliceConfigPaths lists keys that accept comma-separated values from the environment.
var sliceConfigPaths = []string{
	"cors.allowed_origins",
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"app_host":          "server.host",
	"app_port":          "server.port",
	"app_env":           "server.env",
	"max_content_bytes": "server.max_body_bytes",
	"read_timeout":      "server.read_timeout",
	"write_timeout":     "server.write_timeout",

	"database_driver":   "database.driver",
	"postgres_host":     "database.host",
	"postgres_port":     "database.port",
	"postgres_user":     "database.user",
	"postgres_password": "database.password",
	"postgres_db":       "database.name",
	"postgres_sslmode":  "database.sslmode",
	"sqlite_path":       "database.sqlite_path",
	"database_seed":     "database.seed",

	"storage_backend":   "storage.backend",
	"upload_dir":        "storage.upload_dir",
	"upload_url_prefix": "storage.url_prefix",

	"s3_endpoint":   "s3.endpoint",
	"s3_region":     "s3.region",
	"s3_bucket":     "s3.bucket",
	"s3_access_key": "s3.access_key",
	"s3_secret_key": "s3.secret_key",
	"s3_public_url": "s3.public_url",

	"valkey_host":     "valkey.host",
	"valkey_port":     "valkey.port",
	"valkey_password": "valkey.password",

	"cors_allowed_origins": "cors.allowed_origins",

	"rate_limit_requests": "rate_limit.requests",
	"rate_limit_window":   "rate_limit.window",

	"log_level":        "log.level",
	"log_format":       "log.format",
	"log_file":         "log.file",
	"log_max_size_mb":  "log.max_size_mb",
	"log_max_backups":  "log.max_backups",
	"log_max_age_days": "log.max_age_days",

	"admin_username": "admin.username",
	"admin_email":    "admin.email",
	"admin_password": "admin.password",
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of priority. A .env file in the working
// directory is loaded into the environment first when present. path overrides
// the config file lookup when non-empty.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if p := os.Getenv(configFileEnv); p != "" {
		return p
	}
	for _, p := range []string{"config.yaml", "/etc/zamzam/config.yaml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// processSliceFields splits comma-separated strings coming from the
// environment into slices. Values already loaded as slices are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
