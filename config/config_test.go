// SPDX-FileCopyrightText: 2025 The dxtally authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
database:
  url: postgres://localhost/dxtally
admin:
  callsigns:
    - " n0call "
    - k1abc
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Server.Port)
	}

	if cfg.Session.LifetimeHours != 24 {
		t.Fatalf("expected default session lifetime, got %d", cfg.Session.LifetimeHours)
	}

	if cfg.Database.URL != "postgres://localhost/dxtally" {
		t.Fatalf("unexpected database url: %q", cfg.Database.URL)
	}

	if !cfg.IsAdminCallsign("N0CALL") || !cfg.IsAdminCallsign("k1abc") {
		t.Fatalf("expected admin callsigns to be normalized: %+v", cfg.Admin.Callsigns)
	}

	if cfg.IsAdminCallsign("W1AW") {
		t.Fatalf("unexpected admin match")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
