/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseURLEnvVarNotSet          = errors.New("DATABASE_URL environment variable is not set")
	ErrDatabaseNameNotSpecified         = errors.New("database name not specified in URL")
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	ErrCallsignAlreadyRegistered        = errors.New("callsign is already registered")
	ErrInvalidCredentials               = errors.New("invalid callsign or password")
	ErrUserNotFound                     = errors.New("user not found")
	ErrQSONotFound                      = errors.New("QSO not found")
	ErrInvalidDXCCDataset               = errors.New("invalid DXCC dataset")
	ErrEntityDirectoryNotConfigured     = errors.New("entity directory not configured")
)
