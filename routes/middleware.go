/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
)

// Session keys used across handlers.
const (
	sessionAuthenticated = "authenticated"
	sessionCallsign      = "callsign"
	sessionIsAdmin       = "is_admin"
)

// RequireAuth is a middleware that rejects unauthenticated requests.
func RequireAuth(s session.Session, c flamego.Context) {
	authenticated, ok := s.Get(sessionAuthenticated).(bool)
	if !ok || !authenticated {
		writeError(c, http.StatusUnauthorized, "authentication required")

		return
	}

	c.Next()
}

// RequireAdmin is a middleware that rejects non-admin requests. It runs
// after RequireAuth.
func RequireAdmin(s session.Session, c flamego.Context) {
	isAdmin, ok := s.Get(sessionIsAdmin).(bool)
	if !ok || !isAdmin {
		writeError(c, http.StatusForbidden, "admin access required")

		return
	}

	c.Next()
}

// NoCacheHeaders disables caching for responses and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}

// sessionUser returns the authenticated callsign from the session.
func sessionUser(s session.Session) string {
	callsign, _ := s.Get(sessionCallsign).(string)

	return callsign
}
