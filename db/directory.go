/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "github.com/n0call/dxtally/dxcc"

var directory *dxcc.Directory

// SetDirectory wires the entity directory used to enrich QSOs at write
// time.
func SetDirectory(d *dxcc.Directory) {
	directory = d
}

// currentSnapshot returns the live resolution snapshot, or an empty one
// when no directory is wired (every lookup then resolves to Unknown).
func currentSnapshot() *dxcc.Snapshot {
	if directory == nil {
		return dxcc.NewSnapshot(nil, nil, nil, nil)
	}

	return directory.Snapshot()
}
