/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/n0call/dxtally/adif"
	"github.com/n0call/dxtally/award"
	"github.com/n0call/dxtally/db"
)

type profileRequest struct {
	TrackAll       bool     `json:"track_all"`
	Bands          []string `json:"bands"`
	IncludeDeleted bool     `json:"include_deleted"`
}

// GetProfile returns the user's award tracking preferences.
func GetProfile(c flamego.Context, s session.Session) {
	profile, err := db.GetUserProfile(c.Request().Context(), sessionUser(s))
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to load profile")

		return
	}

	writeJSON(c, http.StatusOK, profileRequest{
		TrackAll:       profile.TrackAll,
		Bands:          profile.Bands,
		IncludeDeleted: profile.IncludeDeleted,
	})
}

// SaveProfile stores the user's award tracking preferences. Unsupported
// band names are rejected.
func SaveProfile(c flamego.Context, s session.Session) {
	var req profileRequest
	if !decodeBody(c, &req) {
		return
	}

	bands := make([]string, 0, len(req.Bands))

	for _, band := range req.Bands {
		normalized := adif.NormalizeBand(band)
		if normalized == "" {
			writeError(c, http.StatusBadRequest, "unsupported band: "+band)

			return
		}

		bands = append(bands, normalized)
	}

	if !req.TrackAll && len(bands) == 0 {
		writeError(c, http.StatusBadRequest, "at least one band is required when not tracking all")

		return
	}

	profile := award.Profile{
		TrackAll:       req.TrackAll,
		Bands:          bands,
		IncludeDeleted: req.IncludeDeleted,
	}

	if err := db.SaveUserProfile(c.Request().Context(), sessionUser(s), profile); err != nil {
		logger.Error("Failed to save profile", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to save profile")

		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"status": "saved"})
}
