// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/botkit/lib/ref"
)

// Defaults applied by LoadFile to optional fields.
const (
	DefaultTrigger    = "!"
	DefaultDeviceName = "botkit"
)

// Config is the bot configuration document.
type Config struct {
	// HomeserverURL is the base URL of the Matrix homeserver.
	HomeserverURL string `yaml:"homeserver_url" json:"homeserver_url"`

	// MXID is the bot's full Matrix user ID (@bot:example.org).
	MXID string `yaml:"mxid" json:"mxid"`

	// Password is used for the initial login. May be empty when
	// PasswordFile is set or a prompt is acceptable.
	Password string `yaml:"password" json:"password"`

	// PasswordFile names a file holding the password. Trailing
	// whitespace is trimmed when read.
	PasswordFile string `yaml:"password_file" json:"password_file"`

	// StorePath is the directory for persistent bot state.
	StorePath string `yaml:"store_path" json:"store_path"`

	// SessionPath is the directory holding session.json.
	SessionPath string `yaml:"session_path" json:"session_path"`

	BotName     string `yaml:"bot_name" json:"bot_name"`
	Description string `yaml:"description" json:"description"`

	// Trigger prefixes every command. Default "!".
	Trigger string `yaml:"trigger" json:"trigger"`

	// DeviceName is the display name of the login device.
	DeviceName string `yaml:"device_name" json:"device_name"`
}

// UserID parses MXID.
func (c *Config) UserID() (ref.UserID, error) {
	return ref.ParseUserID(c.MXID)
}

// Snapshot is an immutable copy of the non-secret configuration,
// suitable for handing to command handlers.
type Snapshot struct {
	HomeserverURL string
	UserID        ref.UserID
	BotName       string
	Description   string
	Trigger       string
}

// Snapshot returns the non-secret view of c. MXID must be valid.
func (c *Config) Snapshot() Snapshot {
	userID, _ := c.UserID()
	return Snapshot{
		HomeserverURL: c.HomeserverURL,
		UserID:        userID,
		BotName:       c.BotName,
		Description:   c.Description,
		Trigger:       c.Trigger,
	}
}

// LoadFile reads, decodes and expands the configuration at path. The
// result is not validated; call Validate.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Trigger == "" {
		c.Trigger = DefaultTrigger
	}
	if c.DeviceName == "" {
		c.DeviceName = DefaultDeviceName
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.StorePath = expandVars(c.StorePath, vars)
	c.SessionPath = expandVars(c.SessionPath, vars)
	c.PasswordFile = expandVars(c.PasswordFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.HomeserverURL == "" {
		errs = append(errs, errors.New("homeserver_url is required"))
	} else if parsed, err := url.Parse(c.HomeserverURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("homeserver_url %q must be an http or https URL", c.HomeserverURL))
	}

	if c.MXID == "" {
		errs = append(errs, errors.New("mxid is required"))
	} else if _, err := c.UserID(); err != nil {
		errs = append(errs, fmt.Errorf("mxid: %w", err))
	}

	if c.Password != "" && c.PasswordFile != "" {
		errs = append(errs, errors.New("password and password_file are mutually exclusive"))
	}

	if c.StorePath == "" {
		errs = append(errs, errors.New("store_path is required"))
	}
	if c.SessionPath == "" {
		errs = append(errs, errors.New("session_path is required"))
	}

	if strings.ContainsFunc(c.Trigger, unicode.IsSpace) {
		errs = append(errs, fmt.Errorf("trigger %q must not contain whitespace", c.Trigger))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

