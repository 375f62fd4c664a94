/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/n0call/dxtally/config"
	"github.com/n0call/dxtally/dxcc"
)

var (
	directory *dxcc.Directory
	cfg       *config.Config
)

// SetDirectory wires the entity directory used by dashboard and admin
// handlers.
func SetDirectory(d *dxcc.Directory) {
	directory = d
}

// SetConfig wires the loaded server configuration.
func SetConfig(c *config.Config) {
	cfg = c
}

func currentSnapshot() *dxcc.Snapshot {
	if directory == nil {
		return dxcc.NewSnapshot(nil, nil, nil, nil)
	}

	return directory.Snapshot()
}

func isConfiguredAdmin(callsign string) bool {
	return cfg != nil && cfg.IsAdminCallsign(callsign)
}
