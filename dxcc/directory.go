/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package dxcc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/n0call/dxtally/logging"
)

var logger = logging.Logger(logging.SourceDXCC)

// UnknownEntityName is reported for callsigns that resolve to no entity.
const UnknownEntityName = "Unknown"

// Entity is one award-countable DXCC entity.
type Entity struct {
	ID     string
	Name   string
	Active bool
}

// PrefixRule maps a callsign prefix (or an exact callsign) to an entity.
type PrefixRule struct {
	Prefix     string
	EntityID   string
	ExactMatch bool
}

// Snapshot is an immutable view of the entity directory. Resolver methods
// are safe for concurrent use; a snapshot never changes after construction.
type Snapshot struct {
	generation uint64

	// Detailed tier: CTY letter prefixes, tried first.
	ctyEntities map[string]Entity
	ctyRules    []PrefixRule

	// Coarse tier: numeric DXCC entity codes, fallback only.
	dxccEntities map[string]Entity
	dxccRules    []PrefixRule
}

// Directory owns the process-wide entity directory. Loads build a fresh
// snapshot and swap it in atomically; readers always see a complete view.
type Directory struct {
	pool *pgxpool.Pool

	loadMu  sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewDirectory creates a directory backed by the given connection pool.
// No data is loaded until Load is called.
func NewDirectory(pool *pgxpool.Pool) *Directory {
	return &Directory{pool: pool}
}

// Snapshot returns the current directory snapshot. Before the first
// successful load it returns an empty snapshot that resolves nothing.
func (d *Directory) Snapshot() *Snapshot {
	if snapshot := d.current.Load(); snapshot != nil {
		return snapshot
	}

	return &Snapshot{}
}

// Generation returns the snapshot generation, zero before the first load.
func (d *Directory) Generation() uint64 {
	return d.Snapshot().generation
}

// Loaded reports whether a snapshot has been loaded.
func (d *Directory) Loaded() bool {
	return d.current.Load() != nil
}

// Load populates the directory from the reference tables. It is a no-op
// when already loaded unless force is set. A failed load leaves the
// previous snapshot in place.
func (d *Directory) Load(ctx context.Context, force bool) error {
	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	previous := d.current.Load()
	if previous != nil && !force {
		return nil
	}

	var generation uint64 = 1
	if previous != nil {
		generation = previous.generation + 1
	}

	snapshot, err := loadSnapshot(ctx, d.pool, generation)
	if err != nil {
		return err
	}

	d.current.Store(snapshot)

	logger.Info("DXCC cache loaded",
		"generation", snapshot.generation,
		"dxcc_active", countActive(snapshot.dxccEntities),
		"dxcc_total", len(snapshot.dxccEntities),
		"dxcc_prefixes", len(snapshot.dxccRules),
		"cty_entities", len(snapshot.ctyEntities),
		"cty_prefixes", len(snapshot.ctyRules))

	return nil
}

// Reload forces a full reload. Intended for the admin reload path after a
// reference-dataset import.
func (d *Directory) Reload(ctx context.Context) error {
	return d.Load(ctx, true)
}

func loadSnapshot(ctx context.Context, pool *pgxpool.Pool, generation uint64) (*Snapshot, error) {
	if pool == nil {
		return nil, ErrDirectoryPoolNotInitialized
	}

	snapshot := &Snapshot{
		generation:   generation,
		ctyEntities:  make(map[string]Entity),
		dxccEntities: make(map[string]Entity),
	}

	var err error

	snapshot.ctyEntities, err = loadEntities(ctx, pool, "cty_entities")
	if err != nil {
		return nil, err
	}

	snapshot.ctyRules, err = loadRules(ctx, pool, "cty_prefixes", true)
	if err != nil {
		return nil, err
	}

	snapshot.dxccEntities, err = loadEntities(ctx, pool, "dxcc_entities")
	if err != nil {
		return nil, err
	}

	snapshot.dxccRules, err = loadRules(ctx, pool, "dxcc_prefixes", false)
	if err != nil {
		return nil, err
	}

	sortRules(snapshot.ctyRules)
	sortRules(snapshot.dxccRules)

	return snapshot, nil
}

func loadEntities(ctx context.Context, pool *pgxpool.Pool, table string) (map[string]Entity, error) {
	query := fmt.Sprintf("SELECT entity_id, name, active FROM %s", table)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	entities := make(map[string]Entity)

	for rows.Next() {
		var entity Entity

		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Active); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		entities[entity.ID] = entity
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return entities, nil
}

func loadRules(ctx context.Context, pool *pgxpool.Pool, table string, hasExactFlag bool) ([]PrefixRule, error) {
	query := fmt.Sprintf("SELECT prefix, entity_id FROM %s", table)
	if hasExactFlag {
		query = fmt.Sprintf("SELECT prefix, entity_id, exact_match FROM %s", table)
	}

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var rules []PrefixRule

	for rows.Next() {
		var rule PrefixRule

		if hasExactFlag {
			err = rows.Scan(&rule.Prefix, &rule.EntityID, &rule.ExactMatch)
		} else {
			err = rows.Scan(&rule.Prefix, &rule.EntityID)
		}

		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		rule.Prefix = strings.ToUpper(rule.Prefix)
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return rules, nil
}

// sortRules orders rules so a linear first-match scan implements
// longest-prefix-wins. Exact rules sort ahead of same-length prefix rules.
func sortRules(rules []PrefixRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if len(rules[i].Prefix) != len(rules[j].Prefix) {
			return len(rules[i].Prefix) > len(rules[j].Prefix)
		}

		if rules[i].ExactMatch != rules[j].ExactMatch {
			return rules[i].ExactMatch
		}

		return rules[i].Prefix < rules[j].Prefix
	})
}

// NewSnapshot builds a snapshot directly from entity and rule slices.
// It applies the same sort invariant as a database load.
func NewSnapshot(ctyEntities, dxccEntities []Entity, ctyRules, dxccRules []PrefixRule) *Snapshot {
	snapshot := &Snapshot{
		generation:   1,
		ctyEntities:  make(map[string]Entity, len(ctyEntities)),
		dxccEntities: make(map[string]Entity, len(dxccEntities)),
		ctyRules:     append([]PrefixRule(nil), ctyRules...),
		dxccRules:    append([]PrefixRule(nil), dxccRules...),
	}

	for _, entity := range ctyEntities {
		snapshot.ctyEntities[entity.ID] = entity
	}

	for _, entity := range dxccEntities {
		snapshot.dxccEntities[entity.ID] = entity
	}

	for i := range snapshot.ctyRules {
		snapshot.ctyRules[i].Prefix = strings.ToUpper(snapshot.ctyRules[i].Prefix)
	}

	for i := range snapshot.dxccRules {
		snapshot.dxccRules[i].Prefix = strings.ToUpper(snapshot.dxccRules[i].Prefix)
	}

	sortRules(snapshot.ctyRules)
	sortRules(snapshot.dxccRules)

	return snapshot
}

func countActive(entities map[string]Entity) int {
	count := 0

	for _, entity := range entities {
		if entity.Active {
			count++
		}
	}

	return count
}

// Stats summarizes the loaded directory for the admin panel.
type Stats struct {
	Generation   uint64 `json:"generation"`
	DXCCActive   int    `json:"dxcc_active"`
	DXCCTotal    int    `json:"dxcc_total"`
	DXCCPrefixes int    `json:"dxcc_prefixes"`
	CTYEntities  int    `json:"cty_entities"`
	CTYPrefixes  int    `json:"cty_prefixes"`
}

// Stats returns counts for the current snapshot.
func (s *Snapshot) Stats() Stats {
	return Stats{
		Generation:   s.generation,
		DXCCActive:   countActive(s.dxccEntities),
		DXCCTotal:    len(s.dxccEntities),
		DXCCPrefixes: len(s.dxccRules),
		CTYEntities:  len(s.ctyEntities),
		CTYPrefixes:  len(s.ctyRules),
	}
}

// TotalEntities returns the number of award-countable entities. Deleted
// entities are excluded unless includeDeleted is set. The coarse DXCC tier
// is the official award list; the CTY tier is counted only when the coarse
// tier is empty.
func (s *Snapshot) TotalEntities(includeDeleted bool) int {
	entities := s.dxccEntities
	if len(entities) == 0 {
		entities = s.ctyEntities
	}

	if includeDeleted {
		return len(entities)
	}

	return countActive(entities)
}
