/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package adif

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pd0mz/go-maidenhead"
)

// QSLStatus is the confirmation state derived for a contact.
type QSLStatus string

// QSL status values. LoTW and QSL appear in legacy logs and are treated
// as Confirmed-equivalent by the aggregation layer.
const (
	StatusNeeded    QSLStatus = "Needed"
	StatusRequested QSLStatus = "Requested"
	StatusConfirmed QSLStatus = "Confirmed"
	StatusLoTW      QSLStatus = "LoTW"
	StatusQSL       QSLStatus = "QSL"
)

// Candidate is one parsed ADIF record ready for import. Country is the
// raw ADIF hint only; the callsign resolver is authoritative at import
// time.
type Candidate struct {
	Country    string
	Call       string
	Date       string
	Status     QSLStatus
	Band       string
	GridSquare string
}

// Parser decodes the ADIF record format into import candidates.
type Parser struct {
	Candidates []Candidate
}

// NewParser creates a new ADIF parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads an ADIF file and appends one candidate per record that
// carries a non-empty CALL field. Records without a call are dropped
// silently; a log import must not abort an entire file over one bad
// record. Only a failure to read the input itself is an error.
func (p *Parser) ParseFile(r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read ADIF file: %w", err)
	}

	for _, record := range splitRecords(string(content)) {
		if candidate, ok := parseRecord(record); ok {
			p.Candidates = append(p.Candidates, candidate)
		}
	}

	return nil
}

// splitRecords splits raw ADIF text on the case-insensitive <eor> tag.
func splitRecords(content string) []string {
	var records []string

	lower := strings.ToLower(content)

	for {
		idx := strings.Index(lower, "<eor>")
		if idx < 0 {
			break
		}

		records = append(records, content[:idx])
		content = content[idx+len("<eor>"):]
		lower = lower[idx+len("<eor>"):]
	}

	// Trailing text after the last <eor> may be a record missing its
	// terminator; field scanning handles it like any other record.
	records = append(records, content)

	return records
}

// parseRecord extracts the recognized fields from one record. The second
// return value is false when the record has no CALL and must be dropped.
func parseRecord(record string) (Candidate, bool) {
	record = strings.TrimSpace(record)
	if record == "" {
		return Candidate{}, false
	}

	fields := scanFields(record)

	call := strings.ToUpper(fields["CALL"])
	if call == "" {
		return Candidate{}, false
	}

	candidate := Candidate{
		Call:       call,
		Country:    fields["COUNTRY"],
		Date:       canonicalDate(fields["QSO_DATE"]),
		Band:       NormalizeBand(fields["BAND"]),
		Status:     deriveStatus(fields),
		GridSquare: validGridSquare(fields["GRIDSQUARE"]),
	}

	return candidate, true
}

// scanFields walks a record for <TAG:LENGTH[:extra]>VALUE fields, taking
// exactly LENGTH payload characters (trimmed). The last occurrence of a
// repeated tag wins.
func scanFields(record string) map[string]string {
	fields := make(map[string]string)

	for pos := 0; pos < len(record); {
		open := strings.IndexByte(record[pos:], '<')
		if open < 0 {
			break
		}

		open += pos

		closing := strings.IndexByte(record[open:], '>')
		if closing < 0 {
			break
		}

		closing += open

		tag, length, ok := parseFieldHeader(record[open+1 : closing])
		if !ok {
			pos = closing + 1
			continue
		}

		payload := record[closing+1:]

		// A declared length never reads past the next tag or the end of
		// the record.
		if next := strings.IndexByte(payload, '<'); next >= 0 && next < length {
			length = next
		}

		if length > len(payload) {
			length = len(payload)
		}

		fields[tag] = strings.TrimSpace(payload[:length])
		pos = closing + 1 + length
	}

	return fields
}

// parseFieldHeader parses "TAG:LENGTH" or "TAG:LENGTH:TYPE" between the
// angle brackets. Headers without a decimal length (such as <eoh>) are
// skipped.
func parseFieldHeader(header string) (string, int, bool) {
	parts := strings.SplitN(header, ":", 3)
	if len(parts) < 2 {
		return "", 0, false
	}

	tag := strings.ToUpper(strings.TrimSpace(parts[0]))
	if tag == "" {
		return "", 0, false
	}

	length, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || length < 0 {
		return "", 0, false
	}

	return tag, length, true
}

// canonicalDate converts an 8-digit YYYYMMDD date to YYYY-MM-DD. Values
// of any other shape pass through unchanged; downstream tolerates
// non-canonical dates. An 8-digit value that is not a real calendar date
// becomes empty.
func canonicalDate(raw string) string {
	if len(raw) != 8 || !isDigits(raw) {
		return raw
	}

	parsed, err := time.Parse("20060102", raw)
	if err != nil {
		return ""
	}

	return parsed.Format("2006-01-02")
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return value != ""
}

// deriveStatus maps the QSL fields to a status. Confirmed always outranks
// Requested regardless of field order in the file.
func deriveStatus(fields map[string]string) QSLStatus {
	if isConfirmedFlag(fields["QSL_RCVD"]) ||
		isConfirmedFlag(fields["EQSL_QSL_RCVD"]) ||
		isConfirmedFlag(fields["LOTW_QSL_RCVD"]) {
		return StatusConfirmed
	}

	switch strings.ToUpper(strings.TrimSpace(fields["QSL_SENT"])) {
	case "Y", "Q", "R":
		return StatusRequested
	}

	return StatusNeeded
}

func isConfirmedFlag(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "Y", "V":
		return true
	}

	return false
}

// validGridSquare returns the gridsquare when it parses as a Maidenhead
// locator, uppercased in field/subsquare convention, otherwise empty.
func validGridSquare(grid string) string {
	trimmed := strings.TrimSpace(grid)
	if trimmed == "" {
		return ""
	}

	normalized := strings.ToUpper(trimmed)
	if len(normalized) > 4 {
		normalized = normalized[:4] + strings.ToLower(normalized[4:])
	}

	if _, err := maidenhead.ParseLocator(normalized); err != nil {
		return ""
	}

	return normalized
}
