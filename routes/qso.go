/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/n0call/dxtally/adif"
	"github.com/n0call/dxtally/db"
)

type qsoRequest struct {
	Country string `json:"country"`
	Call    string `json:"call"`
	Date    string `json:"date"`
	Status  string `json:"status"`
	Band    string `json:"band"`
}

func (r qsoRequest) fields() db.QSOFields {
	return db.QSOFields{
		Country: r.Country,
		Call:    r.Call,
		QSODate: r.Date,
		Status:  adif.QSLStatus(r.Status),
		Band:    r.Band,
	}
}

// ListQSOs returns the user's stored contacts.
func ListQSOs(c flamego.Context, s session.Session) {
	qsos, err := db.ListQSOsForUser(c.Request().Context(), sessionUser(s))
	if err != nil {
		logger.Error("Failed to list QSOs", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to list QSOs")

		return
	}

	writeJSON(c, http.StatusOK, map[string]any{"qsos": qsos, "count": len(qsos)})
}

// CreateQSO stores one manually entered contact.
func CreateQSO(c flamego.Context, s session.Session) {
	var req qsoRequest
	if !decodeBody(c, &req) {
		return
	}

	if req.Call == "" {
		writeError(c, http.StatusBadRequest, "call is required")

		return
	}

	if req.Status == "" {
		req.Status = string(adif.StatusNeeded)
	}

	inserted, err := db.InsertQSO(c.Request().Context(), sessionUser(s), req.fields(), "")
	if err != nil {
		logger.Error("Failed to insert QSO", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to insert QSO")

		return
	}

	if !inserted {
		writeError(c, http.StatusConflict, "an identical QSO already exists")

		return
	}

	writeJSON(c, http.StatusCreated, map[string]string{"status": "created"})
}

type qsoUpdateRequest struct {
	Old qsoRequest `json:"old"`
	New qsoRequest `json:"new"`
}

// UpdateQSO edits a stored contact, matched by its previous values.
func UpdateQSO(c flamego.Context, s session.Session) {
	var req qsoUpdateRequest
	if !decodeBody(c, &req) {
		return
	}

	err := db.UpdateQSO(c.Request().Context(), sessionUser(s), req.Old.fields(), req.New.fields())
	if err != nil {
		if errors.Is(err, db.ErrQSONotFound) {
			writeError(c, http.StatusNotFound, "QSO not found")

			return
		}

		logger.Error("Failed to update QSO", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to update QSO")

		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteQSO removes a stored contact, matched by its values.
func DeleteQSO(c flamego.Context, s session.Session) {
	var req qsoRequest
	if !decodeBody(c, &req) {
		return
	}

	err := db.DeleteQSO(c.Request().Context(), sessionUser(s), req.fields())
	if err != nil {
		if errors.Is(err, db.ErrQSONotFound) {
			writeError(c, http.StatusNotFound, "QSO not found")

			return
		}

		logger.Error("Failed to delete QSO", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to delete QSO")

		return
	}

	writeJSON(c, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeleteAllQSOs removes every stored contact for the user.
func DeleteAllQSOs(c flamego.Context, s session.Session) {
	removed, err := db.DeleteAllQSOs(c.Request().Context(), sessionUser(s))
	if err != nil {
		logger.Error("Failed to delete QSOs", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to delete QSOs")

		return
	}

	writeJSON(c, http.StatusOK, map[string]any{"removed": removed})
}

// ImportADIF handles an ADIF log upload and imports its records.
func ImportADIF(c flamego.Context, s session.Session) {
	// Parse multipart form (max 10MB)
	if err := c.Request().ParseMultipartForm(10 << 20); err != nil {
		logger.Error("Error parsing form", "error", err)
		writeError(c, http.StatusBadRequest, "failed to parse upload form")

		return
	}

	file, header, err := c.Request().FormFile("adif_file")
	if err != nil {
		logger.Error("Error getting file", "error", err)
		writeError(c, http.StatusBadRequest, "no file uploaded or invalid file")

		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Error closing ADIF upload file", "error", err)
		}
	}()

	logger.Info("Uploading file", "filename", header.Filename, "bytes", header.Size)

	parser := adif.NewParser()

	if err := parser.ParseFile(file); err != nil {
		logger.Error("Error parsing ADIF file", "error", err)
		writeError(c, http.StatusBadRequest, "failed to parse ADIF file")

		return
	}

	logger.Info("Parsed records from ADIF file", "count", len(parser.Candidates))

	ctx := c.Request().Context()

	result, err := db.ImportQSOCandidates(ctx, sessionUser(s), parser.Candidates, db.ImportOptions{
		Cancelled: func() bool { return ctx.Err() != nil },
	})
	if err != nil {
		logger.Error("Error importing QSOs", "error", err)
		writeError(c, http.StatusInternalServerError, "failed to import QSOs")

		return
	}

	writeJSON(c, http.StatusOK, result)
}
