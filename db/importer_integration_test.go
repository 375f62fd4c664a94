// SPDX-FileCopyrightText: 2025 The dxtally authors
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"testing"

	"github.com/n0call/dxtally/adif"
)

func TestImportQSOCandidates(t *testing.T) {
	resetDatabase(t)
	mustLoadDirectory(t)
	mustRegisterUser(t, "N0CALL")

	candidates := testCandidates("JA1XY", "K1ABC", "KH6DX")

	var percents []int

	result, err := ImportQSOCandidates(testContext(), "N0CALL", candidates, ImportOptions{
		OnProgress: func(percent int) { percents = append(percents, percent) },
	})
	if err != nil {
		t.Fatalf("ImportQSOCandidates failed: %v", err)
	}

	if result.Added != 3 || result.Skipped != 0 || result.Total != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(percents) != 3 || percents[len(percents)-1] != 100 {
		t.Fatalf("expected progress up to 100, got %v", percents)
	}

	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("expected monotonic progress, got %v", percents)
		}
	}
}

func TestImportQSOCandidatesIdempotent(t *testing.T) {
	resetDatabase(t)
	mustLoadDirectory(t)
	mustRegisterUser(t, "N0CALL")

	candidates := testCandidates("JA1XY", "K1ABC")

	first, err := ImportQSOCandidates(testContext(), "N0CALL", candidates, ImportOptions{})
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	if first.Added != 2 {
		t.Fatalf("expected 2 added, got %+v", first)
	}

	second, err := ImportQSOCandidates(testContext(), "N0CALL", candidates, ImportOptions{})
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	if second.Added != 0 || second.Skipped != second.Total {
		t.Fatalf("expected idempotent re-import, got %+v", second)
	}

	qsos, err := ListQSOsForUser(testContext(), "N0CALL")
	if err != nil {
		t.Fatalf("ListQSOsForUser failed: %v", err)
	}

	if len(qsos) != 2 {
		t.Fatalf("expected 2 stored QSOs, got %d", len(qsos))
	}
}

func TestImportQSOCandidatesSkipsDatelessRecords(t *testing.T) {
	resetDatabase(t)
	mustLoadDirectory(t)
	mustRegisterUser(t, "N0CALL")

	candidates := testCandidates("JA1XY")
	candidates = append(candidates, adif.Candidate{
		Call:   "K1ABC",
		Band:   "20m",
		Status: adif.StatusNeeded,
	})

	result, err := ImportQSOCandidates(testContext(), "N0CALL", candidates, ImportOptions{})
	if err != nil {
		t.Fatalf("ImportQSOCandidates failed: %v", err)
	}

	if result.Added != 1 || result.Skipped != 1 || result.Total != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestImportQSOCandidatesCancellation(t *testing.T) {
	resetDatabase(t)
	mustLoadDirectory(t)
	mustRegisterUser(t, "N0CALL")

	candidates := testCandidates("JA1XY", "JA2AB", "JA3CD", "JA4EF")

	processed := 0

	result, err := ImportQSOCandidates(testContext(), "N0CALL", candidates, ImportOptions{
		OnProgress: func(int) { processed++ },
		Cancelled:  func() bool { return processed >= 2 },
	})
	if err != nil {
		t.Fatalf("ImportQSOCandidates failed: %v", err)
	}

	// The records written before cancellation stay written.
	if result.Added != 2 || result.Added+result.Skipped >= result.Total {
		t.Fatalf("expected partial result, got %+v", result)
	}

	qsos, err := ListQSOsForUser(testContext(), "N0CALL")
	if err != nil {
		t.Fatalf("ListQSOsForUser failed: %v", err)
	}

	if len(qsos) != 2 {
		t.Fatalf("expected 2 stored QSOs after cancellation, got %d", len(qsos))
	}
}

func TestImportQSOCandidatesDifferentUsersIndependent(t *testing.T) {
	resetDatabase(t)
	mustLoadDirectory(t)
	mustRegisterUser(t, "N0CALL")
	mustRegisterUser(t, "K9XYZ")

	candidates := testCandidates("JA1XY")

	if _, err := ImportQSOCandidates(testContext(), "N0CALL", candidates, ImportOptions{}); err != nil {
		t.Fatalf("import for first user failed: %v", err)
	}

	result, err := ImportQSOCandidates(testContext(), "K9XYZ", candidates, ImportOptions{})
	if err != nil {
		t.Fatalf("import for second user failed: %v", err)
	}

	// The dedup key is scoped per user.
	if result.Added != 1 {
		t.Fatalf("expected independent import, got %+v", result)
	}
}
