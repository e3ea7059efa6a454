// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"deckd/internal/models"
)

const versionColumns = `id, name, description, is_active, chart_configs, content_data, created_at, updated_at`

// scanVersion reads one website_versions row.
func scanVersion(row interface{ Scan(...any) error }) (*models.WebsiteVersion, error) {
	v := &models.WebsiteVersion{}
	var charts, content []byte
	if err := row.Scan(&v.ID, &v.Name, &v.Description, &v.IsActive, &charts, &content, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(charts, &v.ChartConfigs); err != nil {
		return nil, fmt.Errorf("version chart_configs: %w", err)
	}
	if err := json.Unmarshal(content, &v.ContentData); err != nil {
		return nil, fmt.Errorf("version content_data: %w", err)
	}
	if v.ChartConfigs == nil {
		v.ChartConfigs = []string{}
	}
	if v.ContentData == nil {
		v.ContentData = models.JSONMap{}
	}
	return v, nil
}

// GetWebsiteVersion returns the version with the given id, or nil.
func (s *Postgres) GetWebsiteVersion(id string) (*models.WebsiteVersion, error) {
	v, err := scanVersion(s.db.QueryRow(`
		SELECT `+versionColumns+` FROM website_versions WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get website version: %w", err)
	}
	return v, nil
}

// GetAllWebsiteVersions returns every version in creation order.
func (s *Postgres) GetAllWebsiteVersions() ([]models.WebsiteVersion, error) {
	rows, err := s.db.Query(`
		SELECT ` + versionColumns + ` FROM website_versions ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list website versions: %w", err)
	}
	defer rows.Close()

	var out []models.WebsiteVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan website version: %w", err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// GetActiveWebsiteVersion returns the active version, or nil if none.
func (s *Postgres) GetActiveWebsiteVersion() (*models.WebsiteVersion, error) {
	v, err := scanVersion(s.db.QueryRow(`
		SELECT ` + versionColumns + ` FROM website_versions WHERE is_active = TRUE LIMIT 1
	`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active website version: %w", err)
	}
	return v, nil
}

// CreateWebsiteVersion inserts a new version with a generated id.
// Missing optional fields get their defaults, matching the memory
// backend: inactive, empty chart list, empty content map.
func (s *Postgres) CreateWebsiteVersion(v *models.WebsiteVersion) (*models.WebsiteVersion, error) {
	charts := v.ChartConfigs
	if charts == nil {
		charts = []string{}
	}
	content := v.ContentData
	if content == nil {
		content = models.JSONMap{}
	}
	chartsJSON, err := json.Marshal(charts)
	if err != nil {
		return nil, fmt.Errorf("marshal chart_configs: %w", err)
	}
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal content_data: %w", err)
	}

	created, err := scanVersion(s.db.QueryRow(`
		INSERT INTO website_versions (id, name, description, is_active, chart_configs, content_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+versionColumns+`
	`, uuid.NewString(), v.Name, v.Description, v.IsActive, chartsJSON, contentJSON))
	if err != nil {
		return nil, fmt.Errorf("create website version: %w", err)
	}
	return created, nil
}

// UpdateWebsiteVersion applies a partial update inside a transaction.
func (s *Postgres) UpdateWebsiteVersion(id string, patch models.WebsiteVersionPatch) (*models.WebsiteVersion, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	updated, err := updateVersionTx(tx, id, patch)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

// updateVersionTx merges a patch over a row locked FOR UPDATE.
func updateVersionTx(tx *sql.Tx, id string, patch models.WebsiteVersionPatch) (*models.WebsiteVersion, error) {
	existing, err := scanVersion(tx.QueryRow(`
		SELECT `+versionColumns+` FROM website_versions WHERE id = $1 FOR UPDATE
	`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock website version: %w", err)
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.HasDesc {
		existing.Description = patch.Description
	}
	if patch.IsActive != nil {
		existing.IsActive = *patch.IsActive
	}
	if patch.HasCharts {
		existing.ChartConfigs = patch.ChartConfigs
		if existing.ChartConfigs == nil {
			existing.ChartConfigs = []string{}
		}
	}
	if patch.HasContent {
		existing.ContentData = patch.ContentData
		if existing.ContentData == nil {
			existing.ContentData = models.JSONMap{}
		}
	}

	chartsJSON, err := json.Marshal(existing.ChartConfigs)
	if err != nil {
		return nil, fmt.Errorf("marshal chart_configs: %w", err)
	}
	contentJSON, err := json.Marshal(existing.ContentData)
	if err != nil {
		return nil, fmt.Errorf("marshal content_data: %w", err)
	}

	updated, err := scanVersion(tx.QueryRow(`
		UPDATE website_versions SET
			name = $1, description = $2, is_active = $3,
			chart_configs = $4, content_data = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+versionColumns+`
	`, existing.Name, existing.Description, existing.IsActive, chartsJSON, contentJSON, id))
	if err != nil {
		return nil, fmt.Errorf("update website version: %w", err)
	}
	return updated, nil
}

// DeleteWebsiteVersion removes a version. A missing id is a no-op.
func (s *Postgres) DeleteWebsiteVersion(id string) error {
	if _, err := s.db.Exec(`DELETE FROM website_versions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete website version: %w", err)
	}
	return nil
}

// SetActiveWebsiteVersion flips the active flag to the given version in
// a single transaction. The target is checked first, so an unknown id
// fails without clearing any flag.
func (s *Postgres) SetActiveWebsiteVersion(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM website_versions WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check website version: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	if _, err := tx.Exec(`UPDATE website_versions SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return fmt.Errorf("deactivate versions: %w", err)
	}
	if _, err := tx.Exec(`
		UPDATE website_versions SET is_active = TRUE, updated_at = NOW() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("activate version: %w", err)
	}

	return tx.Commit()
}

// --- Content sections ---

// GetContentData returns the value stored under sectionKey in the
// active version, or nil when no version is active or the key is
// absent.
func (s *Postgres) GetContentData(sectionKey string) (any, error) {
	all, err := s.GetAllContentData()
	if err != nil {
		return nil, err
	}
	return all[sectionKey], nil
}

// GetAllContentData returns the active version's content map, or an
// empty map when no version is active.
func (s *Postgres) GetAllContentData() (models.JSONMap, error) {
	active, err := s.GetActiveWebsiteVersion()
	if err != nil {
		return nil, err
	}
	if active == nil {
		return models.JSONMap{}, nil
	}
	return active.ContentData, nil
}

// UpdateContentData replaces the value under sectionKey in the active
// version's content map. The read-merge-write runs in one transaction
// with the active row locked, so concurrent section saves cannot lose
// each other's keys.
func (s *Postgres) UpdateContentData(sectionKey string, data any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	active, err := scanVersion(tx.QueryRow(`
		SELECT ` + versionColumns + ` FROM website_versions WHERE is_active = TRUE LIMIT 1 FOR UPDATE
	`))
	if err == sql.ErrNoRows {
		return ErrNoActiveVersion
	}
	if err != nil {
		return fmt.Errorf("lock active version: %w", err)
	}

	active.ContentData[sectionKey] = data
	contentJSON, err := json.Marshal(active.ContentData)
	if err != nil {
		return fmt.Errorf("marshal content_data: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE website_versions SET content_data = $1, updated_at = NOW() WHERE id = $2
	`, contentJSON, active.ID); err != nil {
		return fmt.Errorf("update content_data: %w", err)
	}

	return tx.Commit()
}
