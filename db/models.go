/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/n0call/dxtally/adif"
)

// QSO represents one stored amateur radio contact.
type QSO struct {
	ID         uuid.UUID      `db:"id"`
	UserCall   string         `db:"user_call"`
	Call       string         `db:"call"`
	Country    string         `db:"country"`
	EntityID   string         `db:"entity_id"`
	Prefix     string         `db:"prefix"`
	QSODate    string         `db:"qso_date"`
	Band       string         `db:"band"`
	Status     adif.QSLStatus `db:"qsl_status"`
	GridSquare string         `db:"gridsquare"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// QSOFields identifies a stored QSO by its user-visible values. Updates
// and deletes match on full equality of these fields rather than an id,
// so a stale view never modifies a row the user was not looking at.
type QSOFields struct {
	Country string
	Call    string
	QSODate string
	Status  adif.QSLStatus
	Band    string
}

// UserProfile holds a user's award tracking preferences.
type UserProfile struct {
	Callsign       string    `db:"callsign"`
	TrackAll       bool      `db:"track_all"`
	Bands          []string  `db:"bands"`
	IncludeDeleted bool      `db:"include_deleted"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// User represents an authenticated account keyed by callsign.
type User struct {
	Callsign     string    `db:"callsign"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
