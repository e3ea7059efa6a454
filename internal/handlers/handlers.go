// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the deckd API.
// Handlers are grouped by resource (charts, versions, content) on a
// single API struct and receive their dependencies through it. Request
// bodies are validated at this boundary before the store is touched;
// an invalid write is never partially applied.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"deckd/internal/cache"
	"deckd/internal/store"
)

// API groups all HTTP handlers and their dependencies.
type API struct {
	store    store.Storage
	sections *cache.SectionCache // nil when Valkey is not configured
}

// NewAPI creates the handler group. sections may be nil to disable the
// content cache.
func NewAPI(st store.Storage, sections *cache.SectionCache) *API {
	return &API{store: st, sections: sections}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a JSON error body. The message is safe for
// clients; internal details stay in the server log.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
