// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"deckd/internal/models"
)

const chartColumns = `id, name, chart_type, data, styling, created_at, updated_at`

// scanChart reads one chart_configs row.
func scanChart(row interface{ Scan(...any) error }) (*models.ChartConfig, error) {
	c := &models.ChartConfig{}
	var data, styling []byte
	if err := row.Scan(&c.ID, &c.Name, &c.ChartType, &data, &styling, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(data, &c.Data); err != nil {
		return nil, fmt.Errorf("chart data: %w", err)
	}
	if err := unmarshalJSON(styling, &c.Styling); err != nil {
		return nil, fmt.Errorf("chart styling: %w", err)
	}
	return c, nil
}

// GetChartConfig returns the chart config with the given id, or nil.
func (s *Postgres) GetChartConfig(id string) (*models.ChartConfig, error) {
	c, err := scanChart(s.db.QueryRow(`
		SELECT `+chartColumns+` FROM chart_configs WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chart config: %w", err)
	}
	return c, nil
}

// GetChartConfigsByType returns all chart configs with the given
// chartType, in creation order.
func (s *Postgres) GetChartConfigsByType(chartType string) ([]models.ChartConfig, error) {
	return s.queryCharts(`
		SELECT `+chartColumns+` FROM chart_configs
		WHERE chart_type = $1
		ORDER BY created_at ASC
	`, chartType)
}

// GetAllChartConfigs returns every chart config in creation order.
func (s *Postgres) GetAllChartConfigs() ([]models.ChartConfig, error) {
	return s.queryCharts(`
		SELECT ` + chartColumns + ` FROM chart_configs ORDER BY created_at ASC
	`)
}

func (s *Postgres) queryCharts(query string, args ...any) ([]models.ChartConfig, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chart configs: %w", err)
	}
	defer rows.Close()

	var out []models.ChartConfig
	for rows.Next() {
		c, err := scanChart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chart config: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// CreateChartConfig inserts a new chart config with a generated id.
func (s *Postgres) CreateChartConfig(c *models.ChartConfig) (*models.ChartConfig, error) {
	data, err := marshalJSON(c.Data)
	if err != nil {
		return nil, err
	}
	styling, err := marshalJSON(c.Styling)
	if err != nil {
		return nil, err
	}

	created, err := scanChart(s.db.QueryRow(`
		INSERT INTO chart_configs (id, name, chart_type, data, styling)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+chartColumns+`
	`, uuid.NewString(), c.Name, c.ChartType, data, styling))
	if err != nil {
		return nil, fmt.Errorf("create chart config: %w", err)
	}
	return created, nil
}

// UpdateChartConfig applies a partial update inside a transaction so
// the merge cannot interleave with another write to the same row.
func (s *Postgres) UpdateChartConfig(id string, patch models.ChartConfigPatch) (*models.ChartConfig, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanChart(tx.QueryRow(`
		SELECT `+chartColumns+` FROM chart_configs WHERE id = $1 FOR UPDATE
	`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock chart config: %w", err)
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.ChartType != nil {
		existing.ChartType = *patch.ChartType
	}
	if patch.HasData {
		existing.Data = patch.Data
	}
	if patch.HasStyling {
		existing.Styling = patch.Styling
	}

	data, err := marshalJSON(existing.Data)
	if err != nil {
		return nil, err
	}
	styling, err := marshalJSON(existing.Styling)
	if err != nil {
		return nil, err
	}

	updated, err := scanChart(tx.QueryRow(`
		UPDATE chart_configs SET
			name = $1, chart_type = $2, data = $3, styling = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+chartColumns+`
	`, existing.Name, existing.ChartType, data, styling, id))
	if err != nil {
		return nil, fmt.Errorf("update chart config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

// DeleteChartConfig removes a chart config. A missing id is a no-op.
func (s *Postgres) DeleteChartConfig(id string) error {
	if _, err := s.db.Exec(`DELETE FROM chart_configs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete chart config: %w", err)
	}
	return nil
}
