// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for violet.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - InterpreterConfig: name, prompt and exit message
//   - StoreConfig: alias store backend, location and deletion policy
//   - LogConfig, UIConfig: logging and terminal output
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (VIOLET_*, NO_COLOR)
//   - --config path or ~/.violet/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	prompt := cfg.Interpreter.Prompt
package config
