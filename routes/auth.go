/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/n0call/dxtally/db"
)

type credentialsRequest struct {
	Callsign string `json:"callsign"`
	Password string `json:"password"`
}

// Register creates a new account. The admin flag is taken from the
// configured admin callsign list, never from the request.
func Register(c flamego.Context) {
	var req credentialsRequest
	if !decodeBody(c, &req) {
		return
	}

	callsign := strings.ToUpper(strings.TrimSpace(req.Callsign))
	if callsign == "" || req.Password == "" {
		writeError(c, http.StatusBadRequest, "callsign and password are required")

		return
	}

	err := db.RegisterUser(c.Request().Context(), callsign, req.Password, isConfiguredAdmin(callsign))
	if err != nil {
		if errors.Is(err, db.ErrCallsignAlreadyRegistered) {
			writeError(c, http.StatusConflict, "callsign is already registered")

			return
		}

		logger.Error("Failed to register user", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to register")

		return
	}

	writeJSON(c, http.StatusCreated, map[string]string{"callsign": callsign})
}

// Login authenticates a callsign/password pair and starts a session.
func Login(c flamego.Context, s session.Session) {
	var req credentialsRequest
	if !decodeBody(c, &req) {
		return
	}

	user, err := db.Authenticate(c.Request().Context(), req.Callsign, req.Password)
	if err != nil {
		if errors.Is(err, db.ErrInvalidCredentials) {
			writeError(c, http.StatusUnauthorized, "invalid callsign or password")

			return
		}

		logger.Error("Failed to authenticate", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to authenticate")

		return
	}

	s.Set(sessionAuthenticated, true)
	s.Set(sessionCallsign, user.Callsign)
	s.Set(sessionIsAdmin, user.IsAdmin || isConfiguredAdmin(user.Callsign))

	logger.Info("User logged in", "callsign", user.Callsign)

	writeJSON(c, http.StatusOK, map[string]any{
		"callsign": user.Callsign,
		"is_admin": user.IsAdmin || isConfiguredAdmin(user.Callsign),
	})
}

// Logout clears the session.
func Logout(s session.Session, c flamego.Context) {
	s.Delete(sessionAuthenticated)
	s.Delete(sessionCallsign)
	s.Delete(sessionIsAdmin)

	writeJSON(c, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me reports the authenticated user and a CSRF token for mutating
// requests.
func Me(c flamego.Context, s session.Session, x csrf.CSRF) {
	isAdmin, _ := s.Get(sessionIsAdmin).(bool)

	writeJSON(c, http.StatusOK, map[string]any{
		"callsign":   sessionUser(s),
		"is_admin":   isAdmin,
		"csrf_token": x.Token(),
	})
}
