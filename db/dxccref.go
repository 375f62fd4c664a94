/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/n0call/dxtally/dxcc"
)

// DatasetStats reports how many reference rows a dataset import wrote.
type DatasetStats struct {
	Entities int `json:"entities"`
	Active   int `json:"active"`
	Prefixes int `json:"prefixes"`
}

type dxccDatasetEntry struct {
	EntityCode json.Number `json:"entityCode"`
	Name       string      `json:"name"`
	Deleted    bool        `json:"deleted"`
	Prefix     string      `json:"prefix"`
}

type dxccDataset struct {
	DXCC []dxccDatasetEntry `json:"dxcc"`
}

// ImportDXCCDataset replaces the coarse entity tier from a JSON
// reference dataset of the form {"dxcc": [{entityCode, name, deleted,
// prefix}, ...]}. The replacement is transactional; a malformed dataset
// leaves the stored tier untouched. Entries without an entity code are
// dropped.
func ImportDXCCDataset(ctx context.Context, r io.Reader) (DatasetStats, error) {
	var stats DatasetStats

	if pool == nil {
		return stats, ErrDatabaseConnectionNotInitialized
	}

	var dataset dxccDataset

	if err := json.NewDecoder(r).Decode(&dataset); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrInvalidDXCCDataset, err)
	}

	if len(dataset.DXCC) == 0 {
		return stats, fmt.Errorf("%w: no entities", ErrInvalidDXCCDataset)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to begin dataset import: %w", err)
	}

	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM dxcc_prefixes`); err != nil {
		return stats, fmt.Errorf("failed to clear entity prefixes: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dxcc_entities`); err != nil {
		return stats, fmt.Errorf("failed to clear entities: %w", err)
	}

	seen := make(map[string]bool)

	for _, entry := range dataset.DXCC {
		entityID := entry.EntityCode.String()
		if entityID == "" {
			continue
		}

		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = dxcc.UnknownEntityName
		}

		if !seen[entityID] {
			_, err := tx.Exec(ctx,
				`INSERT INTO dxcc_entities (entity_id, name, active) VALUES ($1, $2, $3)
				 ON CONFLICT (entity_id) DO NOTHING`,
				entityID, name, !entry.Deleted)
			if err != nil {
				return stats, fmt.Errorf("failed to insert entity %s: %w", entityID, err)
			}

			seen[entityID] = true
			stats.Entities++

			if !entry.Deleted {
				stats.Active++
			}
		}

		// The prefix field is a comma-separated list; each token is
		// its own rule.
		for _, prefix := range strings.Split(entry.Prefix, ",") {
			prefix = strings.ToUpper(strings.TrimSpace(prefix))
			if prefix == "" {
				continue
			}

			tag, err := tx.Exec(ctx,
				`INSERT INTO dxcc_prefixes (prefix, entity_id) VALUES ($1, $2)
				 ON CONFLICT (prefix, entity_id) DO NOTHING`,
				prefix, entityID)
			if err != nil {
				return stats, fmt.Errorf("failed to insert prefix %s: %w", prefix, err)
			}

			stats.Prefixes += int(tag.RowsAffected())
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("failed to commit dataset import: %w", err)
	}

	logger.Info("Imported DXCC dataset",
		"entities", stats.Entities, "active", stats.Active, "prefixes", stats.Prefixes)

	return stats, nil
}

// ImportCTYDataset replaces the detailed entity tier from a parsed
// CTY.DAT dataset. The replacement is transactional.
func ImportCTYDataset(ctx context.Context, dataset *dxcc.CTYDataset) (DatasetStats, error) {
	var stats DatasetStats

	if pool == nil {
		return stats, ErrDatabaseConnectionNotInitialized
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to begin dataset import: %w", err)
	}

	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM cty_prefixes`); err != nil {
		return stats, fmt.Errorf("failed to clear entity prefixes: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cty_entities`); err != nil {
		return stats, fmt.Errorf("failed to clear entities: %w", err)
	}

	for _, entity := range dataset.Entities {
		_, err := tx.Exec(ctx,
			`INSERT INTO cty_entities (entity_id, name, active) VALUES ($1, $2, $3)
			 ON CONFLICT (entity_id) DO NOTHING`,
			entity.ID, entity.Name, entity.Active)
		if err != nil {
			return stats, fmt.Errorf("failed to insert entity %s: %w", entity.ID, err)
		}

		stats.Entities++

		if entity.Active {
			stats.Active++
		}
	}

	for _, rule := range dataset.Rules {
		tag, err := tx.Exec(ctx,
			`INSERT INTO cty_prefixes (prefix, entity_id, exact_match) VALUES ($1, $2, $3)
			 ON CONFLICT (prefix, entity_id, exact_match) DO NOTHING`,
			rule.Prefix, rule.EntityID, rule.ExactMatch)
		if err != nil {
			return stats, fmt.Errorf("failed to insert prefix %s: %w", rule.Prefix, err)
		}

		stats.Prefixes += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, fmt.Errorf("failed to commit dataset import: %w", err)
	}

	logger.Info("Imported CTY dataset",
		"entities", stats.Entities, "active", stats.Active, "prefixes", stats.Prefixes)

	return stats, nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Warn("Failed to roll back transaction", "error", err)
	}
}
