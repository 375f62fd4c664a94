/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package dxcc

import "errors"

var (
	ErrDirectoryPoolNotInitialized = errors.New("directory connection pool is not initialized")
	errMalformedCTYRecord          = errors.New("malformed CTY.DAT record")
)
