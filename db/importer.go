/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/n0call/dxtally/adif"
	"github.com/n0call/dxtally/logging"
)

var importLogger = logging.Logger(logging.SourceImport)

// ImportOptions customizes an import run. Both callbacks are optional.
type ImportOptions struct {
	// OnProgress receives a completion percentage (0-100). It is called
	// with monotonically non-decreasing values as records are processed.
	OnProgress func(percent int)

	// Cancelled is polled before each record; returning true stops the
	// import. Records already written stay written.
	Cancelled func() bool
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// ImportQSOCandidates stores parsed log records for the user. A record
// is skipped when it has no usable date or when its dedup key
// (user, call, date, band) is already stored; a re-import of the same
// file therefore adds nothing. Cancellation returns the partial result
// without error.
func ImportQSOCandidates(ctx context.Context, userCall string, candidates []adif.Candidate, opts ImportOptions) (ImportResult, error) {
	result := ImportResult{Total: len(candidates)}

	if pool == nil {
		return result, ErrDatabaseConnectionNotInitialized
	}

	for i, candidate := range candidates {
		if opts.Cancelled != nil && opts.Cancelled() {
			importLogger.Info("Import cancelled",
				"user", userCall, "processed", i, "total", result.Total)

			return result, nil
		}

		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("import aborted: %w", err)
		}

		if candidate.Date == "" {
			result.Skipped++
			reportProgress(opts, i+1, result.Total)

			continue
		}

		existing, err := QSOExists(ctx, userCall, candidate.Call, candidate.Date, candidate.Band)
		if err != nil {
			return result, err
		}

		if existing != nil {
			result.Skipped++
			reportProgress(opts, i+1, result.Total)

			continue
		}

		fields := QSOFields{
			Country: candidate.Country,
			Call:    candidate.Call,
			QSODate: candidate.Date,
			Status:  candidate.Status,
			Band:    candidate.Band,
		}

		inserted, err := InsertQSO(ctx, userCall, fields, candidate.GridSquare)
		if err != nil {
			return result, err
		}

		// A concurrent import may have won the insert race; the record
		// counts as skipped, not added.
		if inserted {
			result.Added++
		} else {
			result.Skipped++
		}

		reportProgress(opts, i+1, result.Total)
	}

	importLogger.Info("Import finished",
		"user", userCall, "added", result.Added, "skipped", result.Skipped, "total", result.Total)

	return result, nil
}

func reportProgress(opts ImportOptions, processed, total int) {
	if opts.OnProgress == nil || total == 0 {
		return
	}

	opts.OnProgress(processed * 100 / total)
}
