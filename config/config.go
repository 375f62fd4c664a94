/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ServerConfig contains web server settings.
type ServerConfig struct {
	Port        string `yaml:"port"`
	BindAddress string `yaml:"bind_address"`
}

// DatabaseConfig contains PostgreSQL settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SessionConfig contains session cookie settings.
type SessionConfig struct {
	LifetimeHours int `yaml:"lifetime_hours"`
}

// AdminConfig lists callsigns granted admin operations at registration.
type AdminConfig struct {
	Callsigns []string `yaml:"callsigns"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        "8080",
			BindAddress: "0.0.0.0",
		},
		Session: SessionConfig{
			LifetimeHours: 24,
		},
	}
}

// Load reads a YAML configuration file, applying defaults for absent values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	for i, callsign := range cfg.Admin.Callsigns {
		cfg.Admin.Callsigns[i] = strings.ToUpper(strings.TrimSpace(callsign))
	}

	return cfg, nil
}

// IsAdminCallsign reports whether the callsign is listed in the admin block.
func (c Config) IsAdminCallsign(callsign string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(callsign))
	for _, admin := range c.Admin.Callsigns {
		if admin == normalized {
			return true
		}
	}

	return false
}
