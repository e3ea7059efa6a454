// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"deckd/internal/models"
	"deckd/internal/store"
)

// VersionsList returns every website version.
func (a *API) VersionsList(w http.ResponseWriter, r *http.Request) {
	versions, err := a.store.GetAllWebsiteVersions()
	if err != nil {
		slog.Error("list versions failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch versions")
		return
	}
	if versions == nil {
		versions = []models.WebsiteVersion{}
	}
	respondJSON(w, http.StatusOK, versions)
}

// VersionActive returns the currently active version, or JSON null when
// none is active (possible only after every version was deleted).
func (a *API) VersionActive(w http.ResponseWriter, r *http.Request) {
	version, err := a.store.GetActiveWebsiteVersion()
	if err != nil {
		slog.Error("get active version failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch active version")
		return
	}
	respondJSON(w, http.StatusOK, version)
}

// VersionCreate validates the insert payload and stores a new version.
// Only name is required; description, isActive, chartConfigs, and
// contentData default to null / false / [] / {}.
func (a *API) VersionCreate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid version data")
		return
	}

	v := &models.WebsiteVersion{}
	if v.Name, err = requiredString(body, "name"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if v.Description, _, err = optionalString(body, "description", maxDescLen); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	isActive, err := optionalBool(body, "isActive")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if isActive != nil {
		v.IsActive = *isActive
	}
	if v.ChartConfigs, _, err = optionalStringSlice(body, "chartConfigs"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if v.ContentData, _, err = optionalObject(body, "contentData"); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := a.store.CreateWebsiteVersion(v)
	if err != nil {
		slog.Error("create version failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create version")
		return
	}

	a.invalidateSections(r)
	respondJSON(w, http.StatusCreated, created)
}

// VersionUpdate applies a partial update to a version. A missing id
// reports 400, matching the chart update contract.
func (a *API) VersionUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := decodeBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to update version")
		return
	}

	patch, err := versionPatchFromBody(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := a.store.UpdateWebsiteVersion(id, patch)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusBadRequest, "Failed to update version")
		return
	}
	if err != nil {
		slog.Error("update version failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update version")
		return
	}

	a.invalidateSections(r)
	respondJSON(w, http.StatusOK, updated)
}

// versionPatchFromBody builds a partial-update patch for a version.
func versionPatchFromBody(body map[string]any) (models.WebsiteVersionPatch, error) {
	var patch models.WebsiteVersionPatch
	var err error

	if _, ok := body["name"]; ok {
		name, e := requiredString(body, "name")
		if e != nil {
			return patch, e
		}
		patch.Name = &name
	}
	if patch.Description, patch.HasDesc, err = optionalString(body, "description", maxDescLen); err != nil {
		return patch, err
	}
	if patch.IsActive, err = optionalBool(body, "isActive"); err != nil {
		return patch, err
	}
	if patch.ChartConfigs, patch.HasCharts, err = optionalStringSlice(body, "chartConfigs"); err != nil {
		return patch, err
	}
	if patch.ContentData, patch.HasContent, err = optionalObject(body, "contentData"); err != nil {
		return patch, err
	}
	return patch, nil
}

// VersionActivate makes the version in the URL the single active one.
// An unknown id reports 404 and leaves the previously active version
// untouched.
func (a *API) VersionActivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := a.store.SetActiveWebsiteVersion(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Version not found")
		return
	}
	if err != nil {
		slog.Error("activate version failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to activate version")
		return
	}

	a.invalidateSections(r)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Version activated"})
}

// VersionDelete removes a version. Idempotent; no cascade to charts.
func (a *API) VersionDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.store.DeleteWebsiteVersion(id); err != nil {
		slog.Error("delete version failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete version")
		return
	}

	a.invalidateSections(r)
	w.WriteHeader(http.StatusNoContent)
}

// invalidateSections clears the whole section cache after any version
// mutation, since a change of active version can swap every section's
// content at once.
func (a *API) invalidateSections(r *http.Request) {
	if a.sections != nil {
		a.sections.InvalidateAll(r.Context())
	}
}
