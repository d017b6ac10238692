// Package config loads server configuration with layered precedence:
// built-in defaults, then an optional YAML file, then environment
// variables. Every field has a working default — the server runs with
// no configuration at all, serving the embedded corpus.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked for in the working directory
// when no explicit path is given.
const DefaultFile = "redisguide.yaml"

// Environment variable names, taking precedence over the file.
const (
	EnvCorpusDir = "REDISGUIDE_CORPUS_DIR"
	EnvRulesGlob = "REDISGUIDE_RULES_GLOB"
	EnvWatch     = "REDISGUIDE_WATCH"
	EnvLogLevel  = "REDISGUIDE_LOG_LEVEL"
)

// Config holds all server settings.
type Config struct {
	// CorpusDir points at an on-disk corpus directory (containing
	// rules/ and optionally AGENTS.md). Empty means the embedded
	// corpus.
	CorpusDir string `yaml:"corpus_dir"`

	// RulesGlob enumerates rule documents inside the corpus,
	// doublestar syntax.
	RulesGlob string `yaml:"rules_glob"`

	// Watch reloads the corpus when rule documents change. Requires
	// CorpusDir; ignored for the embedded corpus.
	Watch bool `yaml:"watch"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RulesGlob: "rules/*.md",
		LogLevel:  "info",
	}
}

// Load builds the effective configuration. An explicit path that does
// not exist is an error; the default file is optional. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCorpusDir); v != "" {
		c.CorpusDir = v
	}
	if v := os.Getenv(EnvRulesGlob); v != "" {
		c.RulesGlob = v
	}
	if v := os.Getenv(EnvWatch); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Watch = b
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks field values that have a closed domain.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Watch && c.CorpusDir == "" {
		return fmt.Errorf("watch requires corpus_dir: the embedded corpus cannot change at runtime")
	}
	return nil
}

// SlogLevel translates LogLevel into a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level %q: must be one of: debug, info, warn, error", c.LogLevel)
	}
}
