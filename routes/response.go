/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/flamego/flamego"
)

// writeJSON encodes payload as the response body.
func writeJSON(c flamego.Context, status int, payload any) {
	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(c flamego.Context, status int, message string) {
	writeJSON(c, status, map[string]string{"error": message})
}

// decodeBody unmarshals the request body into target. The response is
// written on failure and false is returned.
func decodeBody(c flamego.Context, target any) bool {
	body, err := c.Request().Body().Bytes()
	if err != nil {
		writeError(c, http.StatusBadRequest, "failed to read request body")

		return false
	}

	if err := json.Unmarshal(body, target); err != nil {
		writeError(c, http.StatusBadRequest, "invalid JSON body")

		return false
	}

	return true
}
