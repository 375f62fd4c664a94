/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package dxcc

import "strings"

// Resolve maps a callsign to an entity id using longest-prefix match.
// The CTY tier is tried in full before falling back to the DXCC tier; a
// coarse-tier match is never overridden by the detailed tier or vice
// versa. Returns false for empty or unmatched callsigns.
func (s *Snapshot) Resolve(call string) (string, bool) {
	call = normalizeCall(call)
	if call == "" {
		return "", false
	}

	if rule, ok := matchRules(s.ctyRules, call); ok {
		return rule.EntityID, true
	}

	if rule, ok := matchRules(s.dxccRules, call); ok {
		return rule.EntityID, true
	}

	return "", false
}

// EntityFor resolves a callsign to (entity id, display name, active).
// Unresolvable callsigns degrade to ("", "Unknown", false); this is not
// an error, and callers exclude such QSOs from award totals while keeping
// them visible for correction.
func (s *Snapshot) EntityFor(call string) (string, string, bool) {
	entityID, ok := s.Resolve(call)
	if !ok {
		return "", UnknownEntityName, false
	}

	if entity, ok := s.ctyEntities[entityID]; ok {
		return entityID, entity.Name, entity.Active
	}

	if entity, ok := s.dxccEntities[entityID]; ok {
		return entityID, entity.Name, entity.Active
	}

	return entityID, UnknownEntityName, false
}

// Entity returns the entity record for an id, from either tier.
func (s *Snapshot) Entity(entityID string) (Entity, bool) {
	if entity, ok := s.ctyEntities[entityID]; ok {
		return entity, true
	}

	if entity, ok := s.dxccEntities[entityID]; ok {
		return entity, true
	}

	return Entity{}, false
}

// PrefixFor returns the literal matched prefix for a callsign, for
// display purposes. Returns false when no rule matches.
func (s *Snapshot) PrefixFor(call string) (string, bool) {
	call = normalizeCall(call)
	if call == "" {
		return "", false
	}

	if rule, ok := matchRules(s.ctyRules, call); ok {
		return rule.Prefix, true
	}

	if rule, ok := matchRules(s.dxccRules, call); ok {
		return rule.Prefix, true
	}

	return "", false
}

// matchRules scans one tier. Rules are pre-sorted longest first, so the
// first structural match is authoritative.
func matchRules(rules []PrefixRule, call string) (PrefixRule, bool) {
	for _, rule := range rules {
		if rule.ExactMatch {
			if call == rule.Prefix {
				return rule, true
			}

			continue
		}

		if strings.HasPrefix(call, rule.Prefix) {
			return rule, true
		}
	}

	return PrefixRule{}, false
}

func normalizeCall(call string) string {
	return strings.ToUpper(strings.TrimSpace(call))
}
