// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Log output formats accepted in BOTKIT_LOG_FORMAT.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Environment holds the process knobs read from BOTKIT_* variables.
type Environment struct {
	// ConfigPath is used when --config is not given.
	ConfigPath string `env:"BOTKIT_CONFIG"`
	LogLevel   string `env:"BOTKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"BOTKIT_LOG_FORMAT" envDefault:"json"`
}

// ParseEnvironment reads Environment from the process environment.
func ParseEnvironment() (Environment, error) {
	return parseEnvironment(env.Options{})
}

func parseEnvironment(options env.Options) (Environment, error) {
	environment, err := env.ParseAsWithOptions[Environment](options)
	if err != nil {
		return Environment{}, fmt.Errorf("config: parse env: %w", err)
	}
	if environment.LogFormat != LogFormatJSON && environment.LogFormat != LogFormatText {
		return Environment{}, fmt.Errorf("config: BOTKIT_LOG_FORMAT must be %q or %q, got %q",
			LogFormatJSON, LogFormatText, environment.LogFormat)
	}
	if _, err := environment.Level(); err != nil {
		return Environment{}, err
	}
	return environment, nil
}

// Level parses LogLevel (debug, info, warn, error, optionally with an
// offset such as "info+2").
func (e Environment) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: BOTKIT_LOG_LEVEL: %w", err)
	}
	return level, nil
}
