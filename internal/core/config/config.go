// Package config handles configuration loading and validation for scrim.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in action names for workbench keybindings.
const (
	ActionText         = "text"
	ActionMarkdown     = "markdown"
	ActionImage        = "image"
	ActionCompose      = "compose"
	ActionCoverClick   = "cover-click"
	ActionContentClick = "content-click"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"t": {Action: ActionText, Help: "text modal"},
	"m": {Action: ActionMarkdown, Help: "markdown modal"},
	"i": {Action: ActionImage, Help: "image modal"},
	"n": {Action: ActionCompose, Help: "compose modal"},
	"c": {Action: ActionCoverClick, Help: "click cover"},
	"x": {Action: ActionContentClick, Help: "click content"},
}

// Config holds the application configuration.
type Config struct {
	// AnimationMS is the default fade duration in milliseconds for modals
	// that do not set their own. Zero disables transitions.
	AnimationMS *int `yaml:"animation_ms"`

	// MarkdownStyle is the glamour style used to render markdown modal
	// content in the workbench.
	MarkdownStyle string `yaml:"markdown_style"`

	Keybindings map[string]Keybinding `yaml:"keybindings"`
	Server      ServerConfig          `yaml:"server"`
}

// Keybinding defines a workbench keybinding action.
type Keybinding struct {
	Action string `yaml:"action"` // built-in action name
	Help   string `yaml:"help"`   // help text shown in the workbench
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	LiveReload bool   `yaml:"live_reload"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MarkdownStyle: "tokyo-night",
		Keybindings:   map[string]Keybinding{},
		Server: ServerConfig{
			Addr:       "localhost:8089",
			LiveReload: true,
		},
	}
}

// Animation returns the configured default fade duration.
func (c *Config) Animation() time.Duration {
	if c.AnimationMS == nil {
		return 250 * time.Millisecond
	}
	if *c.AnimationMS < 0 {
		return 0
	}
	return time.Duration(*c.AnimationMS) * time.Millisecond
}

// Load reads configuration from the given path. If the path is empty or
// does not exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = "tokyo-night"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:8089"
	}
}

func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	merged := make(map[string]Keybinding, len(defaults)+len(user))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range user {
		merged[k] = v
	}
	return merged
}
