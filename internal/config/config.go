// Package config loads jjdivide's server bootstrap configuration: log
// level, transport, VCS binary location, and the division engine's
// defaults. It is deliberately separate from the repository configuration
// file of spec §6 (internal/repo), which is in-scope domain persistence,
// not app config.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the jjdivide server.
// Precedence: environment variables > config file > defaults.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Transport TransportConfig `toml:"transport"`
	Log       LogConfig       `toml:"log"`
	VCS       VCSConfig       `toml:"vcs"`
	Division  DivisionConfig  `toml:"division"`
}

// ServerConfig holds MCP server metadata.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// TransportConfig holds transport-related settings.
type TransportConfig struct {
	// Mode selects the transport: "stdio" (default) or "http".
	Mode string `toml:"mode"`
	// Port is the HTTP listen port (default: 21452). Only used when Mode is "http".
	Port string `toml:"port"`
	// Host is the HTTP listen address (default: "0.0.0.0"). Only used when Mode is "http".
	Host string `toml:"host"`
	// CORSOrigins is a comma-separated list of allowed CORS origins (default: "*").
	CORSOrigins string `toml:"cors_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// VCSConfig configures the jj CLI collaborator (internal/vcs/jjexec).
type VCSConfig struct {
	Binary         string `toml:"binary"`          // path to the jj executable
	TimeoutSeconds int    `toml:"timeout_seconds"` // per-invocation timeout
}

// DivisionConfig holds the division engine's default Options (spec §3/§4.9),
// applied when a caller's division_propose/multirepo_propose call omits the
// corresponding field.
type DivisionConfig struct {
	DefaultStrategy      string  `toml:"default_strategy"`
	DefaultSize          string  `toml:"default_size"`
	DefaultMinConfidence float64 `toml:"default_min_confidence"`
	DefaultMaxCommits    int     `toml:"default_max_commits"`
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (from --config flag)
//  2. JJDIVIDE_CONFIG environment variable
//  3. ./jjdivide.toml (current directory)
//  4. ~/.config/jjdivide/jjdivide.toml (XDG-style)
//
// All fields are optional in the config file. Environment variables always
// override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Name:    "jjdivide",
			Version: "0.1.0",
		},
		Transport: TransportConfig{
			Mode:        "stdio",
			Port:        "21452",
			Host:        "0.0.0.0",
			CORSOrigins: "*",
		},
		Log: LogConfig{
			Level: "info",
		},
		VCS: VCSConfig{
			Binary:         "jj",
			TimeoutSeconds: 30,
		},
		Division: DivisionConfig{
			DefaultStrategy: "balanced",
			DefaultSize:     "balanced",
		},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil // no config file found; rely on defaults + env
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath determines which config file to use. Returns empty string
// if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit // caller wants this file; let DecodeFile report if missing
	}

	if p := os.Getenv("JJDIVIDE_CONFIG"); p != "" {
		return p
	}

	if _, err := os.Stat("jjdivide.toml"); err == nil {
		return "jjdivide.toml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/jjdivide/jjdivide.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is non-empty.
func (c *Config) applyEnv() {
	envOverride("JJDIVIDE_TRANSPORT", &c.Transport.Mode)
	envOverride("JJDIVIDE_PORT", &c.Transport.Port)
	envOverride("JJDIVIDE_HOST", &c.Transport.Host)
	envOverride("JJDIVIDE_CORS_ORIGINS", &c.Transport.CORSOrigins)

	envOverride("JJDIVIDE_LOG_LEVEL", &c.Log.Level)

	envOverride("JJDIVIDE_JJ_BINARY", &c.VCS.Binary)
	if v := os.Getenv("JJDIVIDE_JJ_TIMEOUT_SECONDS"); v != "" {
		var secs int
		if _, err := fmt.Sscanf(v, "%d", &secs); err == nil && secs > 0 {
			c.VCS.TimeoutSeconds = secs
		}
	}

	envOverride("JJDIVIDE_DEFAULT_STRATEGY", &c.Division.DefaultStrategy)
	envOverride("JJDIVIDE_DEFAULT_SIZE", &c.Division.DefaultSize)
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode: %q (must be \"stdio\" or \"http\")", c.Transport.Mode)
	}

	switch c.Division.DefaultStrategy {
	case "balanced", "semanticCentric", "fileTypeCentric", "directoryCentric":
	default:
		return fmt.Errorf("invalid division.default_strategy: %q", c.Division.DefaultStrategy)
	}

	switch c.Division.DefaultSize {
	case "balanced", "many", "few":
	default:
		return fmt.Errorf("invalid division.default_size: %q", c.Division.DefaultSize)
	}

	return nil
}

// envOverride sets *dst to the value of the named env var, if it is non-empty.
func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
