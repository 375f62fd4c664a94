/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "github.com/n0call/dxtally/logging"

var appLogger = logging.Logger(logging.SourceApp)
var requestLogger = logging.Logger(logging.SourceWebRequest)
var requestStdLogger = logging.StdLogger(logging.SourceWebRequest)
