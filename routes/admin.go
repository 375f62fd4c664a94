/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/n0call/dxtally/db"
	"github.com/n0call/dxtally/dxcc"
)

// AdminStats reports directory counts and generation for monitoring.
func AdminStats(c flamego.Context) {
	snapshot := currentSnapshot()

	writeJSON(c, http.StatusOK, snapshot.Stats())
}

// AdminReload rebuilds the directory snapshot from the database.
func AdminReload(c flamego.Context) {
	if directory == nil {
		writeError(c, http.StatusServiceUnavailable, "entity directory not configured")

		return
	}

	if err := directory.Reload(c.Request().Context()); err != nil {
		logger.Error("Failed to reload directory", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to reload directory")

		return
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"status":     "reloaded",
		"generation": directory.Generation(),
	})
}

// AdminReenrich re-resolves all stored QSOs against the current
// snapshot.
func AdminReenrich(c flamego.Context) {
	changed, err := db.ReenrichQSOs(c.Request().Context())
	if err != nil {
		if errors.Is(err, db.ErrEntityDirectoryNotConfigured) {
			writeError(c, http.StatusServiceUnavailable, "entity directory not configured")

			return
		}

		logger.Error("Failed to re-enrich QSOs", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to re-enrich QSOs")

		return
	}

	writeJSON(c, http.StatusOK, map[string]any{"changed": changed})
}

// AdminImportDXCC uploads a JSON reference dataset, replaces the coarse
// entity tier, reloads the directory and re-enriches stored logs.
func AdminImportDXCC(c flamego.Context) {
	file, ok := datasetUpload(c)
	if !ok {
		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing dataset upload", "error", err)
		}
	}()

	ctx := c.Request().Context()

	stats, err := db.ImportDXCCDataset(ctx, file)
	if err != nil {
		if errors.Is(err, db.ErrInvalidDXCCDataset) {
			writeError(c, http.StatusBadRequest, "invalid dataset")

			return
		}

		logger.Error("Failed to import dataset", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to import dataset")

		return
	}

	finishDatasetImport(c, stats)
}

// AdminImportCTY uploads a CTY.DAT file, replaces the detailed entity
// tier, reloads the directory and re-enriches stored logs.
func AdminImportCTY(c flamego.Context) {
	file, ok := datasetUpload(c)
	if !ok {
		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing dataset upload", "error", err)
		}
	}()

	dataset, err := dxcc.ParseCTYDAT(file)
	if err != nil {
		logger.Error("Failed to parse CTY.DAT", "error", err)
		writeError(c, http.StatusBadRequest, "invalid CTY.DAT file")

		return
	}

	stats, err := db.ImportCTYDataset(c.Request().Context(), dataset)
	if err != nil {
		logger.Error("Failed to import dataset", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to import dataset")

		return
	}

	finishDatasetImport(c, stats)
}

func datasetUpload(c flamego.Context) (multipart.File, bool) {
	if err := c.Request().ParseMultipartForm(20 << 20); err != nil {
		logger.Error("Error parsing form", "error", err)
		writeError(c, http.StatusBadRequest, "failed to parse upload form")

		return nil, false
	}

	file, header, err := c.Request().FormFile("dataset")
	if err != nil {
		logger.Error("Error getting file", "error", err)
		writeError(c, http.StatusBadRequest, "no file uploaded or invalid file")

		return nil, false
	}

	logger.Info("Uploading dataset", "filename", header.Filename, "bytes", header.Size)

	return file, true
}

func finishDatasetImport(c flamego.Context, stats db.DatasetStats) {
	ctx := c.Request().Context()

	if directory != nil {
		if err := directory.Reload(ctx); err != nil {
			logger.Error("Failed to reload directory after import", "error", err)
			writeError(c, http.StatusInternalServerError, "dataset stored but reload failed")

			return
		}
	}

	changed, err := db.ReenrichQSOs(ctx)
	if err != nil && !errors.Is(err, db.ErrEntityDirectoryNotConfigured) {
		logger.Error("Failed to re-enrich after import", "error", err)
		writeError(c, http.StatusInternalServerError, "dataset stored but re-enrichment failed")

		return
	}

	writeJSON(c, http.StatusOK, map[string]any{
		"entities":   stats.Entities,
		"active":     stats.Active,
		"prefixes":   stats.Prefixes,
		"reenriched": changed,
	})
}
