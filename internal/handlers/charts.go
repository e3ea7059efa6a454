// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"deckd/internal/models"
	"deckd/internal/store"
)

// ChartsList returns every chart config.
func (a *API) ChartsList(w http.ResponseWriter, r *http.Request) {
	charts, err := a.store.GetAllChartConfigs()
	if err != nil {
		slog.Error("list charts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch charts")
		return
	}
	if charts == nil {
		charts = []models.ChartConfig{}
	}
	respondJSON(w, http.StatusOK, charts)
}

// ChartsByType returns the chart configs matching the chartType in the
// URL. The result is an empty array for an unknown type, not an error.
func (a *API) ChartsByType(w http.ResponseWriter, r *http.Request) {
	chartType := chi.URLParam(r, "type")

	charts, err := a.store.GetChartConfigsByType(chartType)
	if err != nil {
		slog.Error("list charts by type failed", "type", chartType, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch charts")
		return
	}
	if charts == nil {
		charts = []models.ChartConfig{}
	}
	respondJSON(w, http.StatusOK, charts)
}

// ChartCreate validates the insert payload and stores a new chart
// config. name, chartType, and data are required; styling is optional.
func (a *API) ChartCreate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid chart data")
		return
	}

	c := &models.ChartConfig{}
	if c.Name, err = requiredString(body, "name"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if c.ChartType, err = requiredString(body, "chartType"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	data, ok := body["data"]
	if !ok || data == nil {
		respondError(w, http.StatusBadRequest, "data is required")
		return
	}
	c.Data = data
	c.Styling = body["styling"] // optional, nil when absent

	created, err := a.store.CreateChartConfig(c)
	if err != nil {
		slog.Error("create chart failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create chart")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ChartUpdate applies a partial update to a chart config. A missing id
// reports 400: the editor only updates charts it just listed, so an
// unknown id means a malformed request rather than a race.
func (a *API) ChartUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to update chart")
		return
	}

	patch, err := chartPatchFromBody(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := a.store.UpdateChartConfig(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusBadRequest, "Failed to update chart")
		return
	}
	if err != nil {
		slog.Error("update chart failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update chart")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// chartPatchFromBody builds a partial-update patch, distinguishing
// absent fields from explicit nulls for data and styling.
func chartPatchFromBody(body map[string]any) (models.ChartConfigPatch, error) {
	var patch models.ChartConfigPatch
	var err error

	if _, ok := body["name"]; ok {
		name, e := requiredString(body, "name")
		if e != nil {
			return patch, e
		}
		patch.Name = &name
	}
	if _, ok := body["chartType"]; ok {
		chartType, e := requiredString(body, "chartType")
		if e != nil {
			return patch, e
		}
		patch.ChartType = &chartType
	}
	if data, ok := body["data"]; ok {
		if data == nil {
			return patch, fmt.Errorf("data must not be null")
		}
		patch.Data = data
		patch.HasData = true
	}
	if styling, ok := body["styling"]; ok {
		patch.Styling = styling
		patch.HasStyling = true
	}
	return patch, err
}

// ChartDelete removes a chart config. Deleting twice is fine: the
// second call is a no-op and still reports 204.
func (a *API) ChartDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.store.DeleteChartConfig(id); err != nil {
		slog.Error("delete chart failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete chart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
