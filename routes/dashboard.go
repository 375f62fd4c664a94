/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/n0call/dxtally/adif"
	"github.com/n0call/dxtally/award"
	"github.com/n0call/dxtally/db"
)

// Dashboard returns award progress counts for the user. An optional
// ?band= query restricts the count to specific bands (comma-separated);
// without it the user's profile decides.
func Dashboard(c flamego.Context, s session.Session) {
	ctx := c.Request().Context()
	user := sessionUser(s)

	contacts, err := db.ContactsForUser(ctx, user)
	if err != nil {
		logger.Error("Failed to load contacts", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to load contacts")

		return
	}

	profile, err := db.GetUserProfile(ctx, user)
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to load profile")

		return
	}

	bands := queryBands(c)
	stats := award.Dashboard(contacts, currentSnapshot(), profile, bands)

	writeJSON(c, http.StatusOK, map[string]any{
		"worked":       stats.Worked,
		"confirmed":    stats.ConfirmedClamped(),
		"total_active": stats.TotalActive,
		"remaining":    stats.Remaining(),
	})
}

// NeedList returns the (entity, band) pairs worked but not yet
// confirmed.
func NeedList(c flamego.Context, s session.Session) {
	ctx := c.Request().Context()
	user := sessionUser(s)

	contacts, err := db.ContactsForUser(ctx, user)
	if err != nil {
		logger.Error("Failed to load contacts", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to load contacts")

		return
	}

	profile, err := db.GetUserProfile(ctx, user)
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to load profile")

		return
	}

	needs := award.NeedList(contacts, currentSnapshot(), profile, queryBands(c))
	if needs == nil {
		needs = []award.Need{}
	}

	writeJSON(c, http.StatusOK, map[string]any{"needs": needs, "count": len(needs)})
}

// DashboardChart renders a per-band worked/confirmed bar chart as an
// HTML page.
func DashboardChart(c flamego.Context, s session.Session) {
	ctx := c.Request().Context()
	user := sessionUser(s)

	contacts, err := db.ContactsForUser(ctx, user)
	if err != nil {
		logger.Error("Failed to load contacts", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to load contacts")

		return
	}

	profile, err := db.GetUserProfile(ctx, user)
	if err != nil {
		logger.Error("Failed to load profile", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to load profile")

		return
	}

	snapshot := currentSnapshot()
	bands := profile.TrackedBands()

	worked := make([]opts.BarData, 0, len(bands))
	confirmed := make([]opts.BarData, 0, len(bands))

	for _, band := range bands {
		stats := award.Dashboard(contacts, snapshot, profile, []string{band})
		worked = append(worked, opts.BarData{Value: stats.Worked})
		confirmed = append(confirmed, opts.BarData{Value: stats.ConfirmedClamped()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "420px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Entities per band",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Entities",
		}),
	)

	bar.SetXAxis(bands).
		AddSeries("Worked", worked).
		AddSeries("Confirmed", confirmed)

	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if err := bar.Render(w); err != nil {
		logger.Error("Failed to render chart", "error", err)
	}
}

// queryBands parses the optional ?band= filter. Unsupported band names
// are dropped; nil means no explicit filter.
func queryBands(c flamego.Context) []string {
	raw := strings.TrimSpace(c.Query("band"))
	if raw == "" {
		return nil
	}

	var bands []string

	for _, band := range strings.Split(raw, ",") {
		if normalized := adif.NormalizeBand(band); normalized != "" {
			bands = append(bands, normalized)
		}
	}

	return bands
}
