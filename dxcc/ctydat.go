/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package dxcc

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CTYDataset is the detailed letter-prefix tier parsed from a CTY.DAT
// file. CTY carries only current entities, so every entity is active.
type CTYDataset struct {
	Entities []Entity
	Rules    []PrefixRule
}

// ParseCTYDAT parses the CTY.DAT country file format. Each record is a
// header line of eight colon-terminated fields (name, CQ zone, ITU zone,
// continent, latitude, longitude, UTC offset, primary prefix) followed by
// comma-separated alias prefixes, terminated by a semicolon. Aliases
// prefixed with "=" match an exact callsign only; zone overrides in
// (), [], <> or {} are ignored.
func ParseCTYDAT(r io.Reader) (*CTYDataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	dataset := &CTYDataset{}

	var record strings.Builder

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		record.WriteString(line)

		if !strings.HasSuffix(line, ";") {
			continue
		}

		if err := parseCTYRecord(record.String(), dataset); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		record.Reset()
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CTY.DAT: %w", err)
	}

	if record.Len() > 0 {
		return nil, fmt.Errorf("%w: unterminated record", errMalformedCTYRecord)
	}

	return dataset, nil
}

func parseCTYRecord(record string, dataset *CTYDataset) error {
	record = strings.TrimSuffix(strings.TrimSpace(record), ";")

	fields := strings.SplitN(record, ":", 9)
	if len(fields) < 9 {
		return fmt.Errorf("%w: expected 8 header fields", errMalformedCTYRecord)
	}

	name := strings.TrimSpace(fields[0])

	primary := strings.TrimSpace(fields[7])
	// A leading "*" marks a secondary record (e.g. a separate WAE list
	// entry); the prefix itself is still the entity id.
	entityID := strings.ToUpper(strings.TrimPrefix(primary, "*"))

	if name == "" || entityID == "" {
		return fmt.Errorf("%w: missing name or primary prefix", errMalformedCTYRecord)
	}

	dataset.Entities = append(dataset.Entities, Entity{
		ID:     entityID,
		Name:   name,
		Active: true,
	})

	for _, alias := range strings.Split(fields[8], ",") {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}

		exact := strings.HasPrefix(alias, "=")
		alias = strings.TrimPrefix(alias, "=")
		alias = stripCTYOverrides(alias)

		if alias == "" {
			continue
		}

		dataset.Rules = append(dataset.Rules, PrefixRule{
			Prefix:     strings.ToUpper(alias),
			EntityID:   entityID,
			ExactMatch: exact,
		})
	}

	return nil
}

// stripCTYOverrides removes zone/continent/time overrides appended to an
// alias, e.g. "KL7(1)[1]" -> "KL7".
func stripCTYOverrides(alias string) string {
	if idx := strings.IndexAny(alias, "([<{~"); idx >= 0 {
		alias = alias[:idx]
	}

	return strings.TrimSpace(alias)
}
