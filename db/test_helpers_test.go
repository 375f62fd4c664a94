// SPDX-FileCopyrightText: 2025 The dxtally authors
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"strings"
	"testing"

	"github.com/n0call/dxtally/adif"
	"github.com/n0call/dxtally/dxcc"
)

func testContext() context.Context {
	return context.Background()
}

func mustRegisterUser(t *testing.T, callsign string) {
	t.Helper()

	if err := RegisterUser(testContext(), callsign, "correct horse battery staple", false); err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
}

// mustLoadDirectory seeds the detailed entity tier and wires a loaded
// directory so inserts get enriched.
func mustLoadDirectory(t *testing.T) *dxcc.Directory {
	t.Helper()

	dataset := &dxcc.CTYDataset{
		Entities: []dxcc.Entity{
			{ID: "JA", Name: "Japan", Active: true},
			{ID: "K", Name: "United States", Active: true},
			{ID: "KH6", Name: "Hawaii", Active: true},
		},
		Rules: []dxcc.PrefixRule{
			{Prefix: "JA", EntityID: "JA"},
			{Prefix: "K", EntityID: "K"},
			{Prefix: "KH6", EntityID: "KH6"},
		},
	}

	if _, err := ImportCTYDataset(testContext(), dataset); err != nil {
		t.Fatalf("failed to import entity dataset: %v", err)
	}

	directory := dxcc.NewDirectory(pool)
	if err := directory.Load(testContext(), false); err != nil {
		t.Fatalf("failed to load directory: %v", err)
	}

	SetDirectory(directory)

	return directory
}

func mustInsertQSO(t *testing.T, userCall string, fields QSOFields) {
	t.Helper()

	inserted, err := InsertQSO(testContext(), userCall, fields, "")
	if err != nil {
		t.Fatalf("failed to insert QSO: %v", err)
	}

	if !inserted {
		t.Fatalf("expected QSO %+v to be inserted", fields)
	}
}

func testCandidates(calls ...string) []adif.Candidate {
	candidates := make([]adif.Candidate, 0, len(calls))
	for _, call := range calls {
		candidates = append(candidates, adif.Candidate{
			Call:   strings.ToUpper(call),
			Date:   "2023-06-15",
			Band:   "20m",
			Status: adif.StatusNeeded,
		})
	}

	return candidates
}
