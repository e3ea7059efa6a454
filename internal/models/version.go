// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// DefaultVersionID is the fixed id of the version seeded into a fresh
// store. Every other version gets a generated UUID.
const DefaultVersionID = "default-version"

// DefaultVersionName is the display name of the seeded version.
const DefaultVersionName = "Default Presentation"

// JSONMap is the content map of a website version: section key to an
// arbitrary JSON payload. Values have no enforced schema — each UI
// section and the generic editor agree on the shape for a given key.
type JSONMap map[string]any

// WebsiteVersion is the aggregate root for presentation state. At most
// one version is active at a time; the active one supplies content and
// chart overrides to the rendered presentation.
type WebsiteVersion struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	IsActive     bool      `json:"isActive"`
	ChartConfigs []string  `json:"chartConfigs"` // chart config ids, currently informational
	ContentData  JSONMap   `json:"contentData"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WebsiteVersionPatch carries the fields of a partial version update.
// Nil pointers mean "leave unchanged".
type WebsiteVersionPatch struct {
	Name         *string
	Description  *string
	HasDesc      bool
	IsActive     *bool
	ChartConfigs []string
	HasCharts    bool
	ContentData  JSONMap
	HasContent   bool
}

// Clone returns a deep-enough copy of the version for handing outside
// the store: the slice and the top level of the content map are copied
// so callers cannot mutate stored state through the returned value.
func (v *WebsiteVersion) Clone() *WebsiteVersion {
	out := *v
	if v.ChartConfigs != nil {
		// make+copy rather than append: an empty slice must stay
		// non-nil so it serializes as [] and not null.
		out.ChartConfigs = make([]string, len(v.ChartConfigs))
		copy(out.ChartConfigs, v.ChartConfigs)
	}
	if v.ContentData != nil {
		out.ContentData = make(JSONMap, len(v.ContentData))
		for k, val := range v.ContentData {
			out.ContentData[k] = val
		}
	}
	return &out
}
