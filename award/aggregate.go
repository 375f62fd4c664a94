/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package award

import (
	"sort"

	"github.com/n0call/dxtally/adif"
	"github.com/n0call/dxtally/dxcc"
)

// Contact is the aggregation view of a stored QSO.
type Contact struct {
	Call   string
	Band   string
	Status adif.QSLStatus
}

// Profile holds a user's award tracking preferences.
type Profile struct {
	TrackAll       bool
	Bands          []string
	IncludeDeleted bool
}

// DefaultProfile is applied when a user has no stored profile.
func DefaultProfile() Profile {
	return Profile{TrackAll: true}
}

// TrackedBands returns the band set counted toward stats.
func (p Profile) TrackedBands() []string {
	if p.TrackAll {
		return adif.SupportedBands
	}

	return p.Bands
}

// DashboardStats summarizes DXCC award progress.
type DashboardStats struct {
	Worked      int `json:"worked"`
	Confirmed   int `json:"confirmed"`
	TotalActive int `json:"total_active"`
}

// ConfirmedClamped returns the confirmed count clamped to the worked
// count. Displayed numbers must never show confirmed above worked even
// when upstream data is inconsistent.
func (s DashboardStats) ConfirmedClamped() int {
	if s.Confirmed > s.Worked {
		return s.Worked
	}

	return s.Confirmed
}

// Remaining returns the active entities not yet worked, floored at zero.
func (s DashboardStats) Remaining() int {
	remaining := s.TotalActive - s.Worked
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Need is one (entity, band) combination worked but not confirmed.
type Need struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Band     string `json:"band"`
}

// IsConfirmedStatus reports whether a QSL status counts as confirmed.
// LoTW and QSL are legacy synonyms for Confirmed.
func IsConfirmedStatus(status adif.QSLStatus) bool {
	switch status {
	case adif.StatusConfirmed, adif.StatusLoTW, adif.StatusQSL:
		return true
	}

	return false
}

// Dashboard computes worked/confirmed entity counts for a user. The
// explicit band filter overrides the profile's tracked bands; nil means
// the profile decides. Contacts resolving to no entity are excluded, as
// are deleted entities unless the profile includes them.
func Dashboard(contacts []Contact, snapshot *dxcc.Snapshot, profile Profile, bands []string) DashboardStats {
	bandFilter := resolveBandFilter(profile, bands)

	worked := make(map[string]bool)
	confirmed := make(map[string]bool)

	for _, contact := range contacts {
		if bandFilter != nil && !bandFilter[contact.Band] {
			continue
		}

		entityID, ok := resolveCountable(snapshot, contact.Call, profile.IncludeDeleted)
		if !ok {
			continue
		}

		worked[entityID] = true

		if IsConfirmedStatus(contact.Status) {
			confirmed[entityID] = true
		}
	}

	return DashboardStats{
		Worked:      len(worked),
		Confirmed:   len(confirmed),
		TotalActive: snapshot.TotalEntities(profile.IncludeDeleted),
	}
}

// NeedList returns the (entity, band) pairs worked but not confirmed,
// computed per band over the tracked band set, sorted by entity id then
// band for determinism.
func NeedList(contacts []Contact, snapshot *dxcc.Snapshot, profile Profile, bands []string) []Need {
	trackedBands := bands
	if trackedBands == nil {
		trackedBands = profile.TrackedBands()
	}

	tracked := make(map[string]bool, len(trackedBands))
	for _, band := range trackedBands {
		tracked[band] = true
	}

	type pair struct {
		entityID string
		band     string
	}

	workedPairs := make(map[pair]bool)
	confirmedPairs := make(map[pair]bool)

	for _, contact := range contacts {
		if !tracked[contact.Band] {
			continue
		}

		entityID, ok := resolveCountable(snapshot, contact.Call, profile.IncludeDeleted)
		if !ok {
			continue
		}

		key := pair{entityID: entityID, band: contact.Band}
		workedPairs[key] = true

		if IsConfirmedStatus(contact.Status) {
			confirmedPairs[key] = true
		}
	}

	var needs []Need

	for key := range workedPairs {
		if confirmedPairs[key] {
			continue
		}

		entity, _ := snapshot.Entity(key.entityID)

		needs = append(needs, Need{
			EntityID: key.entityID,
			Name:     entity.Name,
			Band:     key.band,
		})
	}

	sort.Slice(needs, func(i, j int) bool {
		if needs[i].EntityID != needs[j].EntityID {
			return needs[i].EntityID < needs[j].EntityID
		}

		return needs[i].Band < needs[j].Band
	})

	return needs
}

// resolveBandFilter returns nil when every band counts.
func resolveBandFilter(profile Profile, bands []string) map[string]bool {
	if bands == nil {
		if profile.TrackAll {
			return nil
		}

		bands = profile.Bands
	}

	filter := make(map[string]bool, len(bands))
	for _, band := range bands {
		filter[band] = true
	}

	return filter
}

func resolveCountable(snapshot *dxcc.Snapshot, call string, includeDeleted bool) (string, bool) {
	entityID, _, active := snapshot.EntityFor(call)
	if entityID == "" {
		return "", false
	}

	if !active && !includeDeleted {
		return "", false
	}

	return entityID, true
}
