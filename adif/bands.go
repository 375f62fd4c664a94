/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package adif

import "strings"

// SupportedBands is the canonical band set, in descending wavelength
// order. The same set drives ADIF band normalization, tracking profiles,
// and dashboard filters.
var SupportedBands = []string{
	"160m", "80m", "60m", "40m", "30m",
	"20m", "17m", "15m", "12m", "10m",
	"6m", "2m",
}

// NormalizeBand lowercases a band value and returns it when it is one of
// the supported bands; anything else becomes empty.
func NormalizeBand(band string) string {
	normalized := strings.ToLower(strings.TrimSpace(band))

	for _, supported := range SupportedBands {
		if normalized == supported {
			return normalized
		}
	}

	return ""
}
