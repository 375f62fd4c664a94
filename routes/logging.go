/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "github.com/n0call/dxtally/logging"

var logger = logging.Logger(logging.SourceWeb)
