// Package config loads engine settings from the environment and an optional
// .env file.
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

	"listing-engine/internal/common"
)

// Environment variable names.
const (
	EnvAppEnv    = "LISTING_ENV"
	EnvLogLevel  = "LISTING_LOG_LEVEL"
	EnvRulesDir  = "LISTING_RULES_DIR"
	EnvSchemaDir = "LISTING_SCHEMA_DIR"
	EnvCacheSize = "LISTING_SCHEMA_CACHE_SIZE"
	EnvWorkers   = "LISTING_WORKERS"
)

// Config holds the engine settings.
type Config struct {
	Env       string
	LogLevel  slog.Level
	RulesDir  string
	SchemaDir string
	CacheSize int
	Workers   int
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Env:       "local",
		LogLevel:  slog.LevelInfo,
		CacheSize: 64,
	}
}

// Load reads the process environment, falling back to the given .env files
// (".env" when none are named). Missing files are ignored; the process
// environment always wins.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileVars := map[string]string{}

	for _, f := range files {
		vars, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", f, err)
		}

		for k, v := range vars {
			if _, seen := fileVars[k]; !seen {
				fileVars[k] = v
			}
		}
	}

	return FromLookup(func(key string) string {
		return common.FirstNonEmpty(strings.TrimSpace(os.Getenv(key)), strings.TrimSpace(fileVars[key]))
	})
}

// FromLookup builds a Config from a variable lookup function.
func FromLookup(get func(string) string) (*Config, error) {
	cfg := Default()

	cfg.Env = common.FirstNonEmpty(get(EnvAppEnv), get("APP_ENV"), cfg.Env)
	cfg.RulesDir = get(EnvRulesDir)
	cfg.SchemaDir = get(EnvSchemaDir)

	if raw := get(EnvLogLevel); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvLogLevel, raw, err)
		}
	}

	var err error

	if cfg.CacheSize, err = positiveInt(get, EnvCacheSize, cfg.CacheSize); err != nil {
		return nil, err
	}

	if cfg.Workers, err = positiveInt(get, EnvWorkers, cfg.Workers); err != nil {
		return nil, err
	}

	return cfg, nil
}

func positiveInt(get func(string) string, key string, def int) (int, error) {
	raw := get(key)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: want a non-negative integer", key, raw)
	}

	return n, nil
}

// IsLocal reports whether the engine runs in the local environment.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.Env, "local")
}
