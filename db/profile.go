/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/n0call/dxtally/award"
)

// GetUserProfile returns the user's award tracking preferences, or the
// default profile when none is stored.
func GetUserProfile(ctx context.Context, callsign string) (award.Profile, error) {
	if pool == nil {
		return award.Profile{}, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT track_all, bands, include_deleted
		FROM user_profiles
		WHERE callsign = $1
	`

	var profile award.Profile

	err := pool.QueryRow(ctx, query, normalizeCallsign(callsign)).
		Scan(&profile.TrackAll, &profile.Bands, &profile.IncludeDeleted)
	if err != nil {
		if isNoRows(err) {
			return award.DefaultProfile(), nil
		}

		return award.Profile{}, fmt.Errorf("failed to query user profile: %w", err)
	}

	return profile, nil
}

// SaveUserProfile stores the user's award tracking preferences.
func SaveUserProfile(ctx context.Context, callsign string, profile award.Profile) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	bands := profile.Bands
	if bands == nil {
		bands = []string{}
	}

	query := `
		INSERT INTO user_profiles (callsign, track_all, bands, include_deleted, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (callsign) DO UPDATE
		SET track_all = EXCLUDED.track_all,
		    bands = EXCLUDED.bands,
		    include_deleted = EXCLUDED.include_deleted,
		    updated_at = NOW()
	`

	_, err := pool.Exec(ctx, query,
		normalizeCallsign(callsign), profile.TrackAll, bands, profile.IncludeDeleted)
	if err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}

	return nil
}
