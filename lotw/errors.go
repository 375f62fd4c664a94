/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package lotw

import "errors"

var (
	ErrInvalidCreditsCSV      = errors.New("invalid LoTW credits CSV")
	ErrCreditsColumnsNotFound = errors.New("entity and band columns not found in LoTW credits CSV")
)
