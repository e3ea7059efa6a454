// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"time"

	"github.com/google/uuid"

	"deckd/internal/models"
)

// GetWebsiteVersion returns the version with the given id, or nil.
func (m *Memory) GetWebsiteVersion(id string) (*models.WebsiteVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.versions[id]
	if !ok {
		return nil, nil
	}
	return v.Clone(), nil
}

// GetAllWebsiteVersions returns every version in creation order.
func (m *Memory) GetAllWebsiteVersions() ([]models.WebsiteVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.WebsiteVersion, 0, len(m.versionOrder))
	for _, id := range m.versionOrder {
		out = append(out, *m.versions[id].Clone())
	}
	return out, nil
}

// GetActiveWebsiteVersion returns the version currently flagged active,
// or nil if none is. The nil case only happens after every version has
// been deleted; a fresh store always has an active default.
func (m *Memory) GetActiveWebsiteVersion() (*models.WebsiteVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.activeLocked(), nil
}

// activeLocked finds the active version. Callers must hold at least the
// read lock.
func (m *Memory) activeLocked() *models.WebsiteVersion {
	for _, id := range m.versionOrder {
		if v := m.versions[id]; v.IsActive {
			return v.Clone()
		}
	}
	return nil
}

// CreateWebsiteVersion stores a new version with a generated id and
// fresh timestamps. Missing optional fields get their defaults: nil
// description, inactive, empty chart list, empty content map. Creating
// a version does NOT activate it unless IsActive was set explicitly.
func (m *Memory) CreateWebsiteVersion(v *models.WebsiteVersion) (*models.WebsiteVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stored := &models.WebsiteVersion{
		ID:           uuid.NewString(),
		Name:         v.Name,
		Description:  v.Description,
		IsActive:     v.IsActive,
		ChartConfigs: v.ChartConfigs,
		ContentData:  v.ContentData,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if stored.ChartConfigs == nil {
		stored.ChartConfigs = []string{}
	}
	if stored.ContentData == nil {
		stored.ContentData = models.JSONMap{}
	}
	m.versions[stored.ID] = stored
	m.versionOrder = append(m.versionOrder, stored.ID)

	return stored.Clone(), nil
}

// UpdateWebsiteVersion merges the patch over the existing record and
// re-stamps UpdatedAt. ID and CreatedAt never change. Fails with
// ErrNotFound if the id is absent.
func (m *Memory) UpdateWebsiteVersion(id string, patch models.WebsiteVersionPatch) (*models.WebsiteVersion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updateVersionLocked(id, patch)
}

// updateVersionLocked applies a patch under an already-held write lock.
func (m *Memory) updateVersionLocked(id string, patch models.WebsiteVersionPatch) (*models.WebsiteVersion, error) {
	v, ok := m.versions[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.HasDesc {
		v.Description = patch.Description
	}
	if patch.IsActive != nil {
		v.IsActive = *patch.IsActive
	}
	if patch.HasCharts {
		v.ChartConfigs = patch.ChartConfigs
		if v.ChartConfigs == nil {
			v.ChartConfigs = []string{}
		}
	}
	if patch.HasContent {
		v.ContentData = patch.ContentData
		if v.ContentData == nil {
			v.ContentData = models.JSONMap{}
		}
	}
	v.UpdatedAt = time.Now()

	return v.Clone(), nil
}

// DeleteWebsiteVersion removes a version. Deleting an absent id is a
// silent no-op. No cascade: chart configs referenced by the version are
// untouched, and deleting the active version leaves the store with no
// active version until the next activation.
func (m *Memory) DeleteWebsiteVersion(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.versions[id]; !ok {
		return nil
	}
	delete(m.versions, id)
	m.versionOrder = removeFromOrder(m.versionOrder, id)
	return nil
}

// SetActiveWebsiteVersion makes the given version the single active
// one. Existence is validated before any flag is cleared, so an unknown
// id fails with ErrNotFound and the previously active version stays
// active.
func (m *Memory) SetActiveWebsiteVersion(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.versions[id]
	if !ok {
		return ErrNotFound
	}

	for _, v := range m.versions {
		v.IsActive = false
	}
	target.IsActive = true
	target.UpdatedAt = time.Now()
	return nil
}

// --- Content sections ---

// GetContentData returns the value stored under sectionKey in the
// active version's content map. Returns nil when there is no active
// version or the key has never been written; callers fall back to
// compiled-in defaults.
func (m *Memory) GetContentData(sectionKey string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := m.activeLocked()
	if active == nil {
		return nil, nil
	}
	return active.ContentData[sectionKey], nil
}

// GetAllContentData returns the active version's full content map, or
// an empty map when no version is active.
func (m *Memory) GetAllContentData() (models.JSONMap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := m.activeLocked()
	if active == nil {
		return models.JSONMap{}, nil
	}
	return active.ContentData, nil
}

// UpdateContentData replaces the value under sectionKey in the active
// version's content map (full replace of that key, not a deep merge)
// and bumps the version's UpdatedAt. Fails with ErrNoActiveVersion when
// no version is active.
func (m *Memory) UpdateContentData(sectionKey string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var active *models.WebsiteVersion
	for _, id := range m.versionOrder {
		if v := m.versions[id]; v.IsActive {
			active = v
			break
		}
	}
	if active == nil {
		return ErrNoActiveVersion
	}

	active.ContentData[sectionKey] = data
	active.UpdatedAt = time.Now()
	return nil
}
