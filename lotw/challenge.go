/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */

// Package lotw summarizes Logbook of The World award credit exports.
package lotw

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ChallengeSummary aggregates a LoTW DXCC credits export into
// Challenge-style counts. A challenge slot is one distinct
// (band, entity) credit.
type ChallengeSummary struct {
	TotalEntities  int            `json:"total_entities"`
	ChallengeSlots int            `json:"challenge_slots"`
	EntitiesByBand map[string]int `json:"entities_by_band"`
	EntitiesByMode map[string]int `json:"entities_by_mode"`
}

// Accepted header names for the entity column. LoTW exports have used
// all three over time.
var entityColumnNames = []string{"entity", "dxcc entity", "dxcc"}

// ParseCreditsCSV reads a LoTW DXCC credits CSV export. The entity and
// band columns are required; the mode column is optional. Header
// matching is case-insensitive and tolerates a UTF-8 BOM. Rows without
// an entity are skipped.
func ParseCreditsCSV(r io.Reader) (ChallengeSummary, error) {
	summary := ChallengeSummary{
		EntitiesByBand: make(map[string]int),
		EntitiesByMode: make(map[string]int),
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return summary, fmt.Errorf("%w: %v", ErrInvalidCreditsCSV, err)
	}

	entityCol, bandCol, modeCol := -1, -1, -1

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))

		switch {
		case entityCol < 0 && isEntityColumn(name):
			entityCol = i
		case bandCol < 0 && name == "band":
			bandCol = i
		case modeCol < 0 && name == "mode":
			modeCol = i
		}
	}

	if entityCol < 0 || bandCol < 0 {
		return summary, fmt.Errorf("%w: headers %v", ErrCreditsColumnsNotFound, header)
	}

	type slot struct {
		band   string
		entity string
	}

	entities := make(map[string]bool)
	slots := make(map[slot]bool)
	byBand := make(map[string]map[string]bool)
	byMode := make(map[string]map[string]bool)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return summary, fmt.Errorf("%w: %v", ErrInvalidCreditsCSV, err)
		}

		entity := fieldAt(record, entityCol)
		if entity == "" {
			continue
		}

		entities[entity] = true

		if band := fieldAt(record, bandCol); band != "" {
			slots[slot{band: band, entity: entity}] = true
			addCredit(byBand, band, entity)
		}

		if mode := fieldAt(record, modeCol); mode != "" {
			addCredit(byMode, mode, entity)
		}
	}

	summary.TotalEntities = len(entities)
	summary.ChallengeSlots = len(slots)

	for band, credited := range byBand {
		summary.EntitiesByBand[band] = len(credited)
	}

	for mode, credited := range byMode {
		summary.EntitiesByMode[mode] = len(credited)
	}

	return summary, nil
}

func isEntityColumn(name string) bool {
	for _, candidate := range entityColumnNames {
		if name == candidate {
			return true
		}
	}

	return false
}

func fieldAt(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}

func addCredit(groups map[string]map[string]bool, key, entity string) {
	credited, ok := groups[key]
	if !ok {
		credited = make(map[string]bool)
		groups[key] = credited
	}

	credited[entity] = true
}
