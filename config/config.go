// Package config loads runtime settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philschmid/gemdocs"
	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	ConfigPathEnv  = "GEMINI_DOCS_CONFIG"
	DBPathEnv      = "GEMINI_DOCS_DB_PATH"
	ManifestURLEnv = "GEMINI_DOCS_MANIFEST_URL"
	LogLevelEnv    = "GEMINI_DOCS_LOG_LEVEL"
)

// Defaults.
const (
	DefaultManifestURL  = "https://ai.google.dev/gemini-api/docs/llms.txt"
	DefaultConcurrency  = 20
	DefaultFetchTimeout = 30 * time.Second
	DefaultTopK         = 3
	DefaultLogLevel     = "info"
)

// Extraction modes.
const (
	ExtractText     = "text"
	ExtractMarkdown = "markdown"
)

// Markdown engines used when ExtractMode is ExtractMarkdown.
const (
	EngineTrafilatura = "trafilatura"
	EngineReadability = "readability"
)

// Config holds every runtime setting.
type Config struct {
	// DBPath is the SQLite file. Empty means ~/.mcp/gemini-api-docs/database.db.
	DBPath      string `yaml:"db_path"`
	ManifestURL string `yaml:"manifest_url"`

	Concurrency  int           `yaml:"concurrency"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// RateLimit is requests per second per host. Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`

	TopK int `yaml:"top_k"`

	// RefreshInterval re-runs ingestion periodically. Zero disables it.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	ExtractMode    string `yaml:"extract_mode"`
	MarkdownEngine string `yaml:"markdown_engine"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ManifestURL:    DefaultManifestURL,
		Concurrency:    DefaultConcurrency,
		FetchTimeout:   DefaultFetchTimeout,
		TopK:           DefaultTopK,
		ExtractMode:    ExtractText,
		MarkdownEngine: EngineTrafilatura,
		LogLevel:       DefaultLogLevel,
	}
}

// Load builds a Config from defaults, the YAML file at path and environment
// overrides, in that order. An empty path falls back to GEMINI_DOCS_CONFIG;
// with neither set no file is read. getenv is usually os.Getenv.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = getenv(ConfigPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		// Decoding over the defaults keeps every key the file omits.
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, gemdocs.Errorf(gemdocs.EINVALID, "config: parse %s: %v", path, err)
		}
	}

	cfg.applyEnvOverrides(getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides(getenv func(string) string) {
	if v := getenv(DBPathEnv); v != "" {
		c.DBPath = v
	}
	if v := getenv(ManifestURLEnv); v != "" {
		c.ManifestURL = v
	}
	if v := getenv(LogLevelEnv); v != "" {
		c.LogLevel = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.ManifestURL) == "":
		return gemdocs.Errorf(gemdocs.EINVALID, "manifest_url required")
	case c.Concurrency <= 0:
		return gemdocs.Errorf(gemdocs.EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	case c.FetchTimeout <= 0:
		return gemdocs.Errorf(gemdocs.EINVALID, "fetch_timeout must be positive, got %s", c.FetchTimeout)
	case c.RateLimit < 0:
		return gemdocs.Errorf(gemdocs.EINVALID, "rate_limit must not be negative")
	case c.TopK <= 0:
		return gemdocs.Errorf(gemdocs.EINVALID, "top_k must be positive, got %d", c.TopK)
	case c.RefreshInterval < 0:
		return gemdocs.Errorf(gemdocs.EINVALID, "refresh_interval must not be negative")
	}

	switch c.ExtractMode {
	case ExtractText, ExtractMarkdown:
	default:
		return gemdocs.Errorf(gemdocs.EINVALID, "extract_mode must be %q or %q, got %q", ExtractText, ExtractMarkdown, c.ExtractMode)
	}

	switch c.MarkdownEngine {
	case EngineTrafilatura, EngineReadability:
	default:
		return gemdocs.Errorf(gemdocs.EINVALID, "markdown_engine must be %q or %q, got %q", EngineTrafilatura, EngineReadability, c.MarkdownEngine)
	}
	return nil
}

// ResolveDBPath returns the database file path, expanding "~" and the
// default location, and creates its parent directory.
func (c Config) ResolveDBPath() (string, error) {
	path := c.DBPath
	if path == ":memory:" {
		return path, nil
	}

	if path == "" || path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		switch {
		case path == "":
			path = filepath.Join(home, ".mcp", "gemini-api-docs", "database.db")
		case path == "~":
			return "", errors.New("db_path must name a file, not the home directory")
		default:
			path = filepath.Join(home, path[2:])
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create database directory: %w", err)
	}
	return path, nil
}
