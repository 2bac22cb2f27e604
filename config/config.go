// Package config assembles a codegen.ClientConfig from a .env file, an optional YAML
// file and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	codegen "github.com/haowjy/meridian-codegen"
)

// Environment variables read by Load.
const (
	EnvBaseURL  = "CODEGEN_BASE_URL"
	EnvAPIKey   = "ANTHROPIC_API_KEY"
	EnvDemoMode = "CODEGEN_DEMO_MODE"
	EnvTimeout  = "CODEGEN_TIMEOUT"
	EnvBackend  = "CODEGEN_BACKEND"
	EnvModel    = "CODEGEN_MODEL"
	EnvLogLevel = "CODEGEN_LOG_LEVEL"
	EnvLanguage = "CODEGEN_LANGUAGE"
	EnvFile     = "CODEGEN_CONFIG"
)

// Config is the full runtime configuration.
type Config struct {
	codegen.ClientConfig `yaml:",inline"`

	// LogLevel is a zerolog level name; empty means info.
	LogLevel string `yaml:"log_level"`

	// Language picks the base message catalog: "ko" (default) or "en".
	Language string `yaml:"language"`

	// Messages overrides individual catalog entries.
	Messages codegen.Catalog `yaml:"messages"`
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads .env (walking up from the working directory), then the YAML file named
// by CODEGEN_CONFIG, then the process environment, and validates the result.
func Load() (*Config, error) {
	LoadEnv()
	return Parse(os.LookupEnv)
}

// Parse builds a Config from lookup without touching .env files.
func Parse(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if path, ok := lookup(EnvFile); ok && path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvBaseURL, &c.BaseURL)
	str(EnvAPIKey, &c.APIKey)
	str(EnvModel, &c.Model)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLanguage, &c.Language)

	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = codegen.Backend(strings.ToLower(v))
	}

	if v, ok := lookup(EnvDemoMode); ok && v != "" {
		demo, err := strconv.ParseBool(v)
		if err != nil {
			return &codegen.ValidationError{Field: EnvDemoMode, Value: v, Reason: "must be a boolean", Err: codegen.ErrInvalidRequest}
		}
		c.DemoMode = demo
	}

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &codegen.ValidationError{Field: EnvTimeout, Value: v, Reason: "must be a duration such as 30s", Err: codegen.ErrInvalidRequest}
		}
		c.Timeout = d
	}

	return nil
}

// Validate checks the client settings, the log level and the language.
func (c *Config) Validate() error {
	if err := c.ClientConfig.Validate(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return &codegen.ValidationError{Field: "log_level", Value: c.LogLevel, Reason: err.Error(), Err: codegen.ErrInvalidRequest}
	}
	switch c.Language {
	case "", "ko", "en":
	default:
		return &codegen.ValidationError{Field: "language", Value: c.Language, Reason: "must be 'ko' or 'en'", Err: codegen.ErrInvalidRequest}
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(c.LogLevel))
}

// Catalog returns the language's messages with Messages overrides applied.
func (c *Config) Catalog() codegen.Catalog {
	base := codegen.DefaultCatalog()
	if c.Language == "en" {
		base = codegen.EnglishCatalog()
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&base.Unauthorized, c.Messages.Unauthorized)
	override(&base.Forbidden, c.Messages.Forbidden)
	override(&base.NotFound, c.Messages.NotFound)
	override(&base.ServerError, c.Messages.ServerError)
	override(&base.Network, c.Messages.Network)
	override(&base.Parse, c.Messages.Parse)
	override(&base.Canceled, c.Messages.Canceled)
	override(&base.Generation, c.Messages.Generation)
	return base
}

// LoadEnv searches for a .env file starting from the current directory
// and walking up the directory tree. It loads the first .env file found.
// If no .env file is found, it silently continues (using system env vars).
func LoadEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	_ = LoadEnvFrom(dir)
}

// LoadEnvFrom is LoadEnv starting at dir. It returns the file loaded, or "".
// Variables already set in the process are never overwritten.
func LoadEnvFrom(dir string) string {
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return envPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
