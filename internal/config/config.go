// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for violet.
//
// Configuration file locations (in order of precedence):
//   - the path given with --config
//   - ~/.violet/config.toml (or $VIOLET_HOME/config.toml)
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/violet/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete violet configuration.
type Config struct {
	Version string `toml:"version"`

	// Interpreter personality and prompt
	Interpreter InterpreterConfig `toml:"interpreter"`

	// Alias persistence
	Store StoreConfig `toml:"store"`

	// Logging
	Log LogConfig `toml:"log"`

	// Terminal output
	UI UIConfig `toml:"ui"`
}

// InterpreterConfig contains interpreter settings.
type InterpreterConfig struct {
	// Name the interpreter introduces itself with
	Name string `toml:"name"`
	// Prompt printed before each input line
	Prompt string `toml:"prompt"`
	// ExitMessage printed when the session ends
	ExitMessage string `toml:"exit_message"`
	// History keeps input history between sessions
	History bool `toml:"history"`
}

// StoreConfig contains alias store settings.
type StoreConfig struct {
	// Backend is "json" or "sqlite"
	Backend string `toml:"backend"`
	// Path overrides the store file; empty selects the default in the config dir
	Path string `toml:"path"`
	// DeleteWhenEmpty removes the store when every alias loaded at startup
	// was removed during the session
	DeleteWhenEmpty bool `toml:"delete_when_empty"`
	// Lock takes an exclusive lock on the store for the session
	Lock bool `toml:"lock"`
	// Watch reports writes made to the store by other processes
	Watch bool `toml:"watch"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`
	// File receives the logs; empty selects violet.log in the config dir
	File string `toml:"file"`
	// JSON selects JSON encoding instead of console text
	JSON bool `toml:"json"`
}

// UIConfig contains terminal output settings.
type UIConfig struct {
	// Color is "auto", "always" or "never"
	Color string `toml:"color"`
	// Markdown renders help texts with glamour
	Markdown bool `toml:"markdown"`
	// Banner prints the welcome banner at startup
	Banner bool `toml:"banner"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Interpreter: InterpreterConfig{
			Name:        "violet",
			Prompt:      "<<VIO>> ",
			ExitMessage: "Bye! See you next time ^_^",
			History:     true,
		},

		Store: StoreConfig{
			Backend:         "json",
			DeleteWhenEmpty: true,
			Lock:            true,
			Watch:           true,
		},

		Log: LogConfig{
			Level: "info",
		},

		UI: UIConfig{
			Color:    "auto",
			Markdown: true,
			Banner:   true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the violet configuration directory path.
// VIOLET_HOME overrides the default ~/.violet.
func ConfigDir() (string, error) {
	if dir := os.Getenv("VIOLET_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".violet"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists and returns it.
func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return dir, os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions tightens permissions on files that may hold
// aliases and history to owner read/write only.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if mode := info.Mode().Perm(); mode&0077 != 0 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file, falling back to
// defaults when it does not exist. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys missing from the file keep the
// values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Not fatal, permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# violet configuration file")
	fmt.Fprintln(&buf, "# Generated by violet - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns ValidateErrors listing
// every problem, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Interpreter.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "interpreter.name",
			Message: "must not be empty",
		})
	}

	if strings.TrimSpace(c.Interpreter.Prompt) == "" {
		errs = append(errs, ValidationError{
			Field:   "interpreter.prompt",
			Message: "must not be empty",
		})
	}

	validBackends := []string{"json", "sqlite"}
	if !slices.Contains(validBackends, strings.ToLower(c.Store.Backend)) {
		errs = append(errs, ValidationError{
			Field:   "store.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: json, sqlite", c.Store.Backend),
		})
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	validColors := []string{"auto", "always", "never"}
	if !slices.Contains(validColors, strings.ToLower(c.UI.Color)) {
		errs = append(errs, ValidationError{
			Field:   "ui.color",
			Message: fmt.Sprintf("invalid color mode '%s', must be one of: auto, always, never", c.UI.Color),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - VIOLET_NAME: overrides interpreter.name
//   - VIOLET_PROMPT: overrides interpreter.prompt
//   - VIOLET_STORE: overrides store.backend
//   - VIOLET_STORE_PATH: overrides store.path
//   - VIOLET_LOG_LEVEL: overrides log.level
//   - VIOLET_LOG_FILE: overrides log.file
//   - NO_COLOR / VIOLET_NO_COLOR: set ui.color to never
func (c *Config) ApplyEnvOverrides() {
	if name := os.Getenv("VIOLET_NAME"); name != "" {
		c.Interpreter.Name = name
	}

	if prompt := os.Getenv("VIOLET_PROMPT"); prompt != "" {
		c.Interpreter.Prompt = prompt
	}

	if backend := os.Getenv("VIOLET_STORE"); backend != "" {
		c.Store.Backend = strings.ToLower(backend)
	}

	if path := os.Getenv("VIOLET_STORE_PATH"); path != "" {
		c.Store.Path = path
	}

	if level := os.Getenv("VIOLET_LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}

	if file := os.Getenv("VIOLET_LOG_FILE"); file != "" {
		c.Log.File = file
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.Color = "never"
	}
	if v := os.Getenv("VIOLET_NO_COLOR"); v == "1" || strings.ToLower(v) == "true" {
		c.UI.Color = "never"
	}
}
