/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/n0call/dxtally/adif"
	"github.com/n0call/dxtally/award"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// QSOExists checks whether a QSO with the given dedup key is already
// stored for the user. It returns the stored status, or nil when no such
// QSO exists.
func QSOExists(ctx context.Context, userCall, call, qsoDate, band string) (*adif.QSLStatus, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT qsl_status
		FROM qsos
		WHERE user_call = $1 AND call = $2 AND qso_date = $3 AND band = $4
	`

	var status adif.QSLStatus

	err := pool.QueryRow(ctx, query,
		normalizeCallsign(userCall), strings.ToUpper(strings.TrimSpace(call)), qsoDate, band,
	).Scan(&status)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to check QSO existence: %w", err)
	}

	return &status, nil
}

// InsertQSO stores one contact for the user. The entity directory is
// authoritative for country at write time: when the call resolves, the
// resolved entity name replaces any caller-supplied country hint. The
// insert is a no-op when another writer already stored the same dedup
// key; the returned bool reports whether a row was actually written.
func InsertQSO(ctx context.Context, userCall string, fields QSOFields, gridSquare string) (bool, error) {
	if pool == nil {
		return false, ErrDatabaseConnectionNotInitialized
	}

	call := strings.ToUpper(strings.TrimSpace(fields.Call))
	country := fields.Country

	snapshot := currentSnapshot()

	entityID, entityName, _ := snapshot.EntityFor(call)
	if entityID != "" {
		country = entityName
	}

	prefix, _ := snapshot.PrefixFor(call)

	query := `
		INSERT INTO qsos (id, user_call, call, country, entity_id, prefix, qso_date, band, qsl_status, gridsquare)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_call, call, qso_date, band) DO NOTHING
	`

	tag, err := pool.Exec(ctx, query,
		uuid.New(),
		normalizeCallsign(userCall),
		call,
		country,
		entityID,
		prefix,
		fields.QSODate,
		fields.Band,
		fields.Status,
		gridSquare,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert QSO: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateQSO replaces a stored QSO matched by full equality of its old
// field values. ErrQSONotFound is returned when no stored row matches.
func UpdateQSO(ctx context.Context, userCall string, old, updated QSOFields) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	call := strings.ToUpper(strings.TrimSpace(updated.Call))
	country := updated.Country

	snapshot := currentSnapshot()

	entityID, entityName, _ := snapshot.EntityFor(call)
	if entityID != "" {
		country = entityName
	}

	prefix, _ := snapshot.PrefixFor(call)

	query := `
		UPDATE qsos
		SET call = $1, country = $2, entity_id = $3, prefix = $4,
		    qso_date = $5, band = $6, qsl_status = $7, updated_at = NOW()
		WHERE user_call = $8
		  AND country = $9 AND call = $10 AND qso_date = $11
		  AND qsl_status = $12 AND band = $13
	`

	tag, err := pool.Exec(ctx, query,
		call, country, entityID, prefix,
		updated.QSODate, updated.Band, updated.Status,
		normalizeCallsign(userCall),
		old.Country, strings.ToUpper(strings.TrimSpace(old.Call)), old.QSODate,
		old.Status, old.Band,
	)
	if err != nil {
		return fmt.Errorf("failed to update QSO: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrQSONotFound
	}

	return nil
}

// DeleteQSO removes a stored QSO matched by full equality of its field
// values.
func DeleteQSO(ctx context.Context, userCall string, fields QSOFields) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	query := `
		DELETE FROM qsos
		WHERE user_call = $1
		  AND country = $2 AND call = $3 AND qso_date = $4
		  AND qsl_status = $5 AND band = $6
	`

	tag, err := pool.Exec(ctx, query,
		normalizeCallsign(userCall),
		fields.Country, strings.ToUpper(strings.TrimSpace(fields.Call)), fields.QSODate,
		fields.Status, fields.Band,
	)
	if err != nil {
		return fmt.Errorf("failed to delete QSO: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrQSONotFound
	}

	return nil
}

// DeleteAllQSOs removes every stored QSO for the user and returns the
// number of rows removed.
func DeleteAllQSOs(ctx context.Context, userCall string) (int64, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx, `DELETE FROM qsos WHERE user_call = $1`, normalizeCallsign(userCall))
	if err != nil {
		return 0, fmt.Errorf("failed to delete QSOs: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListQSOsForUser returns all stored QSOs for the user, most recent date
// first.
func ListQSOsForUser(ctx context.Context, userCall string) ([]QSO, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, user_call, call, country, entity_id, prefix,
		       qso_date, band, qsl_status, gridsquare, created_at, updated_at
		FROM qsos
		WHERE user_call = $1
		ORDER BY qso_date DESC, call ASC, band ASC
	`

	rows, err := pool.Query(ctx, query, normalizeCallsign(userCall))
	if err != nil {
		return nil, fmt.Errorf("failed to query QSOs: %w", err)
	}
	defer rows.Close()

	var qsos []QSO

	for rows.Next() {
		var qso QSO

		err := rows.Scan(
			&qso.ID,
			&qso.UserCall,
			&qso.Call,
			&qso.Country,
			&qso.EntityID,
			&qso.Prefix,
			&qso.QSODate,
			&qso.Band,
			&qso.Status,
			&qso.GridSquare,
			&qso.CreatedAt,
			&qso.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan QSO: %w", err)
		}

		qsos = append(qsos, qso)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating QSOs: %w", err)
	}

	return qsos, nil
}

// ContactsForUser returns the aggregation view of a user's QSOs.
func ContactsForUser(ctx context.Context, userCall string) ([]award.Contact, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT call, band, qsl_status
		FROM qsos
		WHERE user_call = $1
	`

	rows, err := pool.Query(ctx, query, normalizeCallsign(userCall))
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []award.Contact

	for rows.Next() {
		var contact award.Contact

		if err := rows.Scan(&contact.Call, &contact.Band, &contact.Status); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}

		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

// ReenrichQSOs re-resolves entity, prefix and country for every stored
// QSO against the current directory snapshot. It is run after a dataset
// import so existing logs pick up the new prefix rules. Returns the
// number of rows whose resolution changed. Running without a wired
// directory would wipe stored resolutions, so it is refused.
func ReenrichQSOs(ctx context.Context) (int64, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	if directory == nil {
		return 0, ErrEntityDirectoryNotConfigured
	}

	rows, err := pool.Query(ctx, `SELECT id, call, country, entity_id, prefix FROM qsos`)
	if err != nil {
		return 0, fmt.Errorf("failed to query QSOs for re-enrichment: %w", err)
	}

	type enrichment struct {
		id       uuid.UUID
		country  string
		entityID string
		prefix   string
	}

	snapshot := currentSnapshot()

	var updates []enrichment

	for rows.Next() {
		var (
			id                              uuid.UUID
			call, country, entityID, prefix string
		)

		if err := rows.Scan(&id, &call, &country, &entityID, &prefix); err != nil {
			rows.Close()

			return 0, fmt.Errorf("failed to scan QSO for re-enrichment: %w", err)
		}

		newEntityID, entityName, _ := snapshot.EntityFor(call)
		newCountry := country

		if newEntityID != "" {
			newCountry = entityName
		}

		newPrefix, _ := snapshot.PrefixFor(call)

		if newEntityID == entityID && newPrefix == prefix && newCountry == country {
			continue
		}

		updates = append(updates, enrichment{
			id:       id,
			country:  newCountry,
			entityID: newEntityID,
			prefix:   newPrefix,
		})
	}

	if err := rows.Err(); err != nil {
		rows.Close()

		return 0, fmt.Errorf("error iterating QSOs for re-enrichment: %w", err)
	}

	rows.Close()

	for _, update := range updates {
		_, err := pool.Exec(ctx,
			`UPDATE qsos SET country = $1, entity_id = $2, prefix = $3, updated_at = NOW() WHERE id = $4`,
			update.country, update.entityID, update.prefix, update.id,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to re-enrich QSO %s: %w", update.id, err)
		}
	}

	return int64(len(updates)), nil
}

func normalizeCallsign(callsign string) string {
	return strings.ToUpper(strings.TrimSpace(callsign))
}
