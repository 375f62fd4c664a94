/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired   = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errDatasetPathRequired   = errors.New("dataset file path is required")
	errCreditsPathRequired   = errors.New("credits CSV file path is required")
	errCallsignRequired      = errors.New("callsign is required")
)
