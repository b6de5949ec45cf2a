// Package config loads the governance core configuration from quill
// config files (JSON, JSONC, or YAML), with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration.
type Config struct {
	// LogLevel is DEBUG, INFO, WARN, ERROR, or FATAL.
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	// AuditLimit is the audit log event ceiling.
	AuditLimit int `json:"auditLimit" yaml:"auditLimit"`
	// DiffMaxChars caps step diff previews.
	DiffMaxChars int `json:"diffMaxChars" yaml:"diffMaxChars"`
	// Vault is the directory backing the demo collaborator commands.
	Vault string `json:"vault" yaml:"vault"`

	Server ServerConfig `json:"server" yaml:"server"`
}

// ServerConfig configures the HTTP inspection API.
type ServerConfig struct {
	Port       int  `json:"port" yaml:"port"`
	EnableCORS bool `json:"enableCors" yaml:"enableCors"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:     "INFO",
		AuditLimit:   1000,
		DiffMaxChars: 2000,
		Server: ServerConfig{
			Port:       7777,
			EnableCORS: true,
		},
	}
}

// Load builds the configuration from (in priority order) defaults,
// the global config dir, the project directory, the QUILL_CONFIG file,
// and QUILL_* environment variables.
func Load(directory string) (*Config, error) {
	cfg := Default()

	loaded := make(map[string]bool)
	loadOnce := func(path string) {
		absPath, err := filepath.Abs(path)
		if err != nil || loaded[absPath] {
			return
		}
		if loadFile(path, cfg) == nil {
			loaded[absPath] = true
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		globalDir := filepath.Join(home, ".config", "quill")
		loadOnce(filepath.Join(globalDir, "quill.json"))
		loadOnce(filepath.Join(globalDir, "quill.jsonc"))
		loadOnce(filepath.Join(globalDir, "quill.yaml"))
	}

	if directory != "" {
		loadOnce(filepath.Join(directory, "quill.json"))
		loadOnce(filepath.Join(directory, "quill.jsonc"))
		loadOnce(filepath.Join(directory, "quill.yaml"))
	}

	if path := os.Getenv("QUILL_CONFIG"); path != "" {
		loadOnce(path)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// loadFile merges one config file into cfg. The format is chosen by
// extension; .json is parsed as JSONC so comments are tolerated.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}

// applyEnvOverrides applies QUILL_* variables, which win over files.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QUILL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QUILL_AUDIT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AuditLimit = n
		}
	}
	if v := os.Getenv("QUILL_VAULT"); v != "" {
		cfg.Vault = v
	}
	if v := os.Getenv("QUILL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
}
