// SPDX-FileCopyrightText: 2025 The dxtally authors
// SPDX-License-Identifier: Apache-2.0

package dxcc

import "testing"

func testSnapshot() *Snapshot {
	ctyEntities := []Entity{
		{ID: "K", Name: "United States", Active: true},
		{ID: "KH6", Name: "Hawaii", Active: true},
		{ID: "VE", Name: "Canada", Active: true},
	}

	dxccEntities := []Entity{
		{ID: "204", Name: "German Dem. Rep.", Active: false},
		{ID: "291", Name: "United States", Active: true},
		{ID: "339", Name: "Japan", Active: true},
	}

	ctyRules := []PrefixRule{
		{Prefix: "K", EntityID: "K"},
		{Prefix: "KH6", EntityID: "KH6"},
		{Prefix: "VE", EntityID: "VE"},
		{Prefix: "KG4AB", EntityID: "KH6", ExactMatch: true},
	}

	dxccRules := []PrefixRule{
		{Prefix: "J", EntityID: "339"},
		{Prefix: "JA", EntityID: "339"},
		{Prefix: "Y2", EntityID: "204"},
	}

	return NewSnapshot(ctyEntities, dxccEntities, ctyRules, dxccRules)
}

func TestResolveLongestPrefixWins(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	entityID, ok := snapshot.Resolve("KH6XYZ")
	if !ok {
		t.Fatalf("expected KH6XYZ to resolve")
	}

	if entityID != "KH6" {
		t.Fatalf("expected Hawaii via longest prefix, got %q", entityID)
	}

	entityID, ok = snapshot.Resolve("K1ABC")
	if !ok || entityID != "K" {
		t.Fatalf("expected United States for K1ABC, got %q (ok=%v)", entityID, ok)
	}
}

func TestResolveExactMatchRule(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	// The exact rule matches only the full callsign.
	entityID, ok := snapshot.Resolve("KG4AB")
	if !ok || entityID != "KH6" {
		t.Fatalf("expected exact rule match, got %q (ok=%v)", entityID, ok)
	}

	// A longer callsign falls through to the "K" prefix rule.
	entityID, ok = snapshot.Resolve("KG4ABC")
	if !ok || entityID != "K" {
		t.Fatalf("expected prefix fallthrough, got %q (ok=%v)", entityID, ok)
	}
}

func TestResolveTierFallback(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	// No CTY rule matches JA1XYZ, so the coarse tier answers.
	entityID, ok := snapshot.Resolve("JA1XYZ")
	if !ok || entityID != "339" {
		t.Fatalf("expected coarse-tier Japan, got %q (ok=%v)", entityID, ok)
	}

	// Any CTY match suppresses the coarse tier entirely, even though the
	// coarse tier holds no rule for VE callsigns.
	entityID, ok = snapshot.Resolve("VE3ABC")
	if !ok || entityID != "VE" {
		t.Fatalf("expected detailed-tier Canada, got %q (ok=%v)", entityID, ok)
	}
}

func TestResolveCaseAndWhitespace(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	entityID, ok := snapshot.Resolve("  kh6xyz ")
	if !ok || entityID != "KH6" {
		t.Fatalf("expected case-insensitive resolution, got %q (ok=%v)", entityID, ok)
	}
}

func TestEntityForUnresolvable(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	for _, call := range []string{"", "   ", "ZZ9ZZZ999"} {
		entityID, name, active := snapshot.EntityFor(call)
		if entityID != "" || name != UnknownEntityName || active {
			t.Fatalf("expected unknown result for %q, got (%q, %q, %v)", call, entityID, name, active)
		}
	}
}

func TestEntityForDeletedEntity(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	entityID, name, active := snapshot.EntityFor("Y2ABC")
	if entityID != "204" || name != "German Dem. Rep." || active {
		t.Fatalf("expected deleted entity, got (%q, %q, %v)", entityID, name, active)
	}
}

func TestPrefixFor(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	prefix, ok := snapshot.PrefixFor("kh6xyz")
	if !ok || prefix != "KH6" {
		t.Fatalf("expected matched prefix KH6, got %q (ok=%v)", prefix, ok)
	}

	if _, ok := snapshot.PrefixFor("ZZ9ZZZ999"); ok {
		t.Fatalf("expected no prefix for unmatched callsign")
	}

	if _, ok := snapshot.PrefixFor(""); ok {
		t.Fatalf("expected no prefix for empty callsign")
	}
}

func TestTotalEntities(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()

	if got := snapshot.TotalEntities(false); got != 2 {
		t.Fatalf("expected 2 active entities, got %d", got)
	}

	if got := snapshot.TotalEntities(true); got != 3 {
		t.Fatalf("expected 3 total entities, got %d", got)
	}
}

func TestEmptySnapshotResolvesNothing(t *testing.T) {
	t.Parallel()

	var directory Directory

	snapshot := directory.Snapshot()

	if _, ok := snapshot.Resolve("K1ABC"); ok {
		t.Fatalf("expected empty snapshot to resolve nothing")
	}

	if directory.Generation() != 0 {
		t.Fatalf("expected generation 0 before first load")
	}

	if directory.Loaded() {
		t.Fatalf("expected directory to report unloaded")
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	stats := testSnapshot().Stats()

	if stats.DXCCActive != 2 || stats.DXCCTotal != 3 || stats.DXCCPrefixes != 3 {
		t.Fatalf("unexpected dxcc stats: %+v", stats)
	}

	if stats.CTYEntities != 3 || stats.CTYPrefixes != 4 {
		t.Fatalf("unexpected cty stats: %+v", stats)
	}
}
