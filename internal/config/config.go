// Package config loads server and client settings from an optional YAML
// file, a .env file and WORDMATH_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/wordmath/internal/llm"
	"github.com/abhisek/wordmath/internal/logging"
	"github.com/abhisek/wordmath/internal/store"
)

// Config is the full application configuration.
type Config struct {
	Addr           string   `yaml:"addr"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	Store StoreConfig `yaml:"store"`
	Redis RedisConfig `yaml:"redis"`
	LLM   llm.Config  `yaml:"llm"`

	// LLMKeyFound reports whether an Oracle key was configured or
	// discovered from the standard env vars.
	LLMKeyFound bool `yaml:"-"`
}

// StoreConfig locates the database.
type StoreConfig struct {
	// URL is postgres://..., sqlite://path or memory://. Empty selects the
	// local SQLite file.
	URL string `yaml:"url"`

	// Key is the store access key, used as the Postgres password.
	Key string `yaml:"key"`
}

// RedisConfig enables the session cache when URL is set.
type RedisConfig struct {
	URL string        `yaml:"url"`
	TTL time.Duration `yaml:"ttl"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Redis:     RedisConfig{TTL: 10 * time.Minute},
		LLM:       llm.DefaultConfig(),
	}
}

// Load builds a Config. path names an optional YAML file; when empty,
// WORDMATH_CONFIG is consulted. A missing .env file is not an error.
func Load(path string) (Config, error) {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv("WORDMATH_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	cfg.LLM = llm.ApplyEnv(cfg.LLM)
	cfg.LLM, cfg.LLMKeyFound = llm.Discover(cfg.LLM)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Addr = envOr("WORDMATH_ADDR", cfg.Addr)
	cfg.LogLevel = envOr("WORDMATH_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("WORDMATH_LOG_FORMAT", cfg.LogFormat)
	cfg.Store.URL = envOr("WORDMATH_STORE_URL", cfg.Store.URL)
	cfg.Store.Key = envOr("WORDMATH_STORE_KEY", cfg.Store.Key)
	cfg.Redis.URL = envOr("WORDMATH_REDIS_URL", cfg.Redis.URL)
	cfg.Redis.TTL = envDurationOr("WORDMATH_REDIS_TTL", cfg.Redis.TTL)

	if v := os.Getenv("WORDMATH_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
}

// Validate checks the settings needed to serve.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("WORDMATH_ADDR cannot be empty"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("WORDMATH_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if _, _, err := store.ParseURL(c.Store.URL); err != nil {
		errs = append(errs, fmt.Errorf("WORDMATH_STORE_URL: %w", err))
	}
	if c.Redis.URL != "" && c.Redis.TTL <= 0 {
		errs = append(errs, errors.New("WORDMATH_REDIS_TTL must be positive"))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Logger builds the logger described by the config.
func (c Config) Logger() *slog.Logger {
	return logging.New(os.Stderr, c.LogLevel, c.LogFormat)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
