// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"deckd/internal/store"
)

// ContentGetAll returns the active version's full content map, or an
// empty object when no version is active. Never an error on a fresh
// store — the editor treats "no content yet" as the common case.
func (a *API) ContentGetAll(w http.ResponseWriter, r *http.Request) {
	if a.sections != nil {
		if body, ok := a.sections.GetAll(r.Context()); ok {
			writeRawJSON(w, body)
			return
		}
	}

	content, err := a.store.GetAllContentData()
	if err != nil {
		slog.Error("get content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch content data")
		return
	}

	body, err := json.Marshal(content)
	if err != nil {
		slog.Error("marshal content failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch content data")
		return
	}
	if a.sections != nil {
		a.sections.SetAll(r.Context(), body)
	}
	writeRawJSON(w, body)
}

// ContentGet returns the value stored under the section key in the URL,
// or JSON null when the key (or an active version) is absent. Callers
// fall back to their compiled-in defaults on null.
func (a *API) ContentGet(w http.ResponseWriter, r *http.Request) {
	sectionKey := chi.URLParam(r, "sectionKey")

	if body, ok := a.cachedSection(r, sectionKey); ok {
		writeRawJSON(w, body)
		return
	}

	value, err := a.store.GetContentData(sectionKey)
	if err != nil {
		slog.Error("get content failed", "section", sectionKey, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch content data")
		return
	}

	a.respondCachingSection(w, r, sectionKey, value)
}

// ContentPut replaces the value under the section key in the active
// version's content map. The body is arbitrary JSON — the shape
// contract lives entirely between the editor and the consuming section.
// Reports 409 when no version is active.
func (a *API) ContentPut(w http.ResponseWriter, r *http.Request) {
	sectionKey := chi.URLParam(r, "sectionKey")

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		respondError(w, http.StatusBadRequest, "Body must be valid JSON")
		return
	}

	err = a.store.UpdateContentData(sectionKey, data)
	if errors.Is(err, store.ErrNoActiveVersion) {
		respondError(w, http.StatusConflict, "No active website version")
		return
	}
	if err != nil {
		slog.Error("update content failed", "section", sectionKey, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update content data")
		return
	}

	if a.sections != nil {
		a.sections.Invalidate(r.Context(), sectionKey)
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// cachedSection looks up a section response in the Valkey cache.
func (a *API) cachedSection(r *http.Request, key string) ([]byte, bool) {
	if a.sections == nil {
		return nil, false
	}
	return a.sections.Get(r.Context(), key)
}

// respondCachingSection marshals the value once, stores it in the cache
// when one is configured, and writes it as the response.
func (a *API) respondCachingSection(w http.ResponseWriter, r *http.Request, key string, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		slog.Error("marshal content failed", "section", key, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch content data")
		return
	}
	if a.sections != nil {
		a.sections.Set(r.Context(), key, body)
	}
	writeRawJSON(w, body)
}

// writeRawJSON writes pre-marshaled JSON with a 200 status.
func writeRawJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
