// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"time"

	"github.com/google/uuid"

	"deckd/internal/models"
)

// GetChartConfig returns the chart config with the given id, or nil.
func (m *Memory) GetChartConfig(id string) (*models.ChartConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.charts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetChartConfigsByType returns all chart configs with the given
// chartType, in creation order. The result may be empty.
func (m *Memory) GetChartConfigsByType(chartType string) ([]models.ChartConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.ChartConfig
	for _, id := range m.chartOrder {
		if c := m.charts[id]; c.ChartType == chartType {
			out = append(out, *c)
		}
	}
	return out, nil
}

// GetAllChartConfigs returns every chart config in creation order.
func (m *Memory) GetAllChartConfigs() ([]models.ChartConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.ChartConfig, 0, len(m.chartOrder))
	for _, id := range m.chartOrder {
		out = append(out, *m.charts[id])
	}
	return out, nil
}

// CreateChartConfig stores a new chart config with a generated id and
// fresh timestamps. Input validation is the facade's job; the store
// accepts whatever it is given.
func (m *Memory) CreateChartConfig(c *models.ChartConfig) (*models.ChartConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stored := &models.ChartConfig{
		ID:        uuid.NewString(),
		Name:      c.Name,
		ChartType: c.ChartType,
		Data:      c.Data,
		Styling:   c.Styling,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.charts[stored.ID] = stored
	m.chartOrder = append(m.chartOrder, stored.ID)

	cp := *stored
	return &cp, nil
}

// UpdateChartConfig merges the patch over the existing record and
// re-stamps UpdatedAt. ID and CreatedAt never change. Fails with
// ErrNotFound if the id is absent.
func (m *Memory) UpdateChartConfig(id string, patch models.ChartConfigPatch) (*models.ChartConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.charts[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.ChartType != nil {
		c.ChartType = *patch.ChartType
	}
	if patch.HasData {
		c.Data = patch.Data
	}
	if patch.HasStyling {
		c.Styling = patch.Styling
	}
	c.UpdatedAt = time.Now()

	cp := *c
	return &cp, nil
}

// DeleteChartConfig removes a chart config. Deleting an absent id is a
// silent no-op.
func (m *Memory) DeleteChartConfig(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.charts[id]; !ok {
		return nil
	}
	delete(m.charts, id)
	m.chartOrder = removeFromOrder(m.chartOrder, id)
	return nil
}
