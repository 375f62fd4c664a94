/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const pgUniqueViolation = "23505"

// RegisterUser creates an account keyed by callsign with a bcrypt
// password hash. The profile row is created with defaults at the same
// time.
func RegisterUser(ctx context.Context, callsign, password string, isAdmin bool) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	callsign = normalizeCallsign(callsign)

	_, err = pool.Exec(ctx,
		`INSERT INTO users (callsign, password_hash, is_admin) VALUES ($1, $2, $3)`,
		callsign, string(hash), isAdmin)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrCallsignAlreadyRegistered
		}

		return fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("Registered user", "callsign", callsign, "admin", isAdmin)

	return nil
}

// Authenticate checks a callsign/password pair and returns the user on
// success. ErrInvalidCredentials is returned for both unknown callsigns
// and wrong passwords.
func Authenticate(ctx context.Context, callsign, password string) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT callsign, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE callsign = $1
	`

	var user User

	err := pool.QueryRow(ctx, query, normalizeCallsign(callsign)).Scan(
		&user.Callsign, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUser returns the stored account for a callsign.
func GetUser(ctx context.Context, callsign string) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT callsign, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE callsign = $1
	`

	var user User

	err := pool.QueryRow(ctx, query, normalizeCallsign(callsign)).Scan(
		&user.Callsign, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// SetAdmin updates the admin flag for a callsign.
func SetAdmin(ctx context.Context, callsign string, isAdmin bool) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx,
		`UPDATE users SET is_admin = $1, updated_at = NOW() WHERE callsign = $2`,
		isAdmin, normalizeCallsign(callsign))
	if err != nil {
		return fmt.Errorf("failed to update admin flag: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
