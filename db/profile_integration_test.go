// SPDX-FileCopyrightText: 2025 The dxtally authors
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"reflect"
	"testing"

	"github.com/n0call/dxtally/award"
)

func TestGetUserProfileDefaults(t *testing.T) {
	resetDatabase(t)

	profile, err := GetUserProfile(testContext(), "N0CALL")
	if err != nil {
		t.Fatalf("GetUserProfile failed: %v", err)
	}

	if !profile.TrackAll || profile.IncludeDeleted || len(profile.Bands) != 0 {
		t.Fatalf("expected default profile, got %+v", profile)
	}
}

func TestSaveAndGetUserProfile(t *testing.T) {
	resetDatabase(t)
	mustRegisterUser(t, "N0CALL")

	saved := award.Profile{
		TrackAll:       false,
		Bands:          []string{"20m", "40m"},
		IncludeDeleted: true,
	}

	if err := SaveUserProfile(testContext(), "n0call", saved); err != nil {
		t.Fatalf("SaveUserProfile failed: %v", err)
	}

	profile, err := GetUserProfile(testContext(), "N0CALL")
	if err != nil {
		t.Fatalf("GetUserProfile failed: %v", err)
	}

	if !reflect.DeepEqual(profile, saved) {
		t.Fatalf("expected %+v, got %+v", saved, profile)
	}

	// Saving again overwrites the stored preferences.
	saved.TrackAll = true
	saved.Bands = nil

	if err := SaveUserProfile(testContext(), "N0CALL", saved); err != nil {
		t.Fatalf("SaveUserProfile failed: %v", err)
	}

	profile, err = GetUserProfile(testContext(), "N0CALL")
	if err != nil {
		t.Fatalf("GetUserProfile failed: %v", err)
	}

	if !profile.TrackAll || len(profile.Bands) != 0 {
		t.Fatalf("expected overwritten profile, got %+v", profile)
	}
}
