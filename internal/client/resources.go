// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"context"
	"encoding/json"
	"net/http"

	"deckd/internal/models"
)

// --- Charts ---

// ChartInsert is the payload for creating a chart config.
type ChartInsert struct {
	Name      string `json:"name"`
	ChartType string `json:"chartType"`
	Data      any    `json:"data"`
	Styling   any    `json:"styling,omitempty"`
}

// GetAllCharts returns every chart config.
func (c *Client) GetAllCharts(ctx context.Context) ([]models.ChartConfig, error) {
	var out []models.ChartConfig
	err := c.do(ctx, http.MethodGet, "/api/charts", nil, &out)
	return out, err
}

// GetChartsByType returns the chart configs of one chartType.
func (c *Client) GetChartsByType(ctx context.Context, chartType string) ([]models.ChartConfig, error) {
	var out []models.ChartConfig
	err := c.do(ctx, http.MethodGet, "/api/charts/"+escape(chartType), nil, &out)
	return out, err
}

// CreateChart creates a chart config and returns the stored record.
func (c *Client) CreateChart(ctx context.Context, insert ChartInsert) (*models.ChartConfig, error) {
	out := &models.ChartConfig{}
	if err := c.do(ctx, http.MethodPost, "/api/charts", insert, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateChart applies a partial update. The patch is any JSON-able
// subset of ChartInsert's fields.
func (c *Client) UpdateChart(ctx context.Context, id string, patch map[string]any) (*models.ChartConfig, error) {
	out := &models.ChartConfig{}
	if err := c.do(ctx, http.MethodPut, "/api/charts/"+escape(id), patch, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteChart removes a chart config.
func (c *Client) DeleteChart(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/charts/"+escape(id), nil, nil)
}

// --- Versions ---

// VersionInsert is the payload for creating a website version. Only
// Name is required.
type VersionInsert struct {
	Name         string         `json:"name"`
	Description  *string        `json:"description,omitempty"`
	IsActive     *bool          `json:"isActive,omitempty"`
	ChartConfigs []string       `json:"chartConfigs,omitempty"`
	ContentData  models.JSONMap `json:"contentData,omitempty"`
}

// GetAllVersions returns every website version.
func (c *Client) GetAllVersions(ctx context.Context) ([]models.WebsiteVersion, error) {
	var out []models.WebsiteVersion
	err := c.do(ctx, http.MethodGet, "/api/versions", nil, &out)
	return out, err
}

// GetActiveVersion returns the active version, or nil when none is.
func (c *Client) GetActiveVersion(ctx context.Context) (*models.WebsiteVersion, error) {
	var out *models.WebsiteVersion
	if err := c.do(ctx, http.MethodGet, "/api/versions/active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateVersion creates a website version and returns the stored record.
func (c *Client) CreateVersion(ctx context.Context, insert VersionInsert) (*models.WebsiteVersion, error) {
	out := &models.WebsiteVersion{}
	if err := c.do(ctx, http.MethodPost, "/api/versions", insert, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateVersion applies a partial update to a version.
func (c *Client) UpdateVersion(ctx context.Context, id string, patch map[string]any) (*models.WebsiteVersion, error) {
	out := &models.WebsiteVersion{}
	if err := c.do(ctx, http.MethodPut, "/api/versions/"+escape(id), patch, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActivateVersion makes the given version the single active one.
func (c *Client) ActivateVersion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/versions/"+escape(id)+"/activate", nil, nil)
}

// DeleteVersion removes a version.
func (c *Client) DeleteVersion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/versions/"+escape(id), nil, nil)
}

// --- Content ---

// GetContent returns the value stored under a section key in the active
// version, or nil when the key has no content yet. Callers fall back to
// their compiled-in defaults on nil.
func (c *Client) GetContent(ctx context.Context, sectionKey string) (any, error) {
	var out any
	if err := c.do(ctx, http.MethodGet, "/api/content/"+escape(sectionKey), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAllContent returns the active version's full content map.
func (c *Client) GetAllContent(ctx context.Context) (models.JSONMap, error) {
	var out models.JSONMap
	if err := c.do(ctx, http.MethodGet, "/api/content", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateContent replaces the value under a section key in the active
// version. Fails when no version is active.
func (c *Client) UpdateContent(ctx context.Context, sectionKey string, data any) error {
	if data == nil {
		// A nil value still needs a body: the server stores JSON null.
		data = json.RawMessage("null")
	}
	return c.do(ctx, http.MethodPut, "/api/content/"+escape(sectionKey), data, nil)
}
