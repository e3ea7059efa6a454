// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"deckd/internal/models"
)

// Memory is the default storage backend: plain maps guarded by a
// RWMutex. Nothing survives a process restart; a fresh Memory always
// holds exactly one version, "Default Presentation", flagged active
// with an empty content map.
//
// All mutations take the write lock for their whole read-modify-write
// sequence, so an activation can never interleave with a content write.
type Memory struct {
	mu sync.RWMutex

	users    map[string]*models.User
	charts   map[string]*models.ChartConfig
	versions map[string]*models.WebsiteVersion

	// Insertion order of ids. List methods return records in creation
	// order, so deterministic iteration needs more than a Go map.
	chartOrder   []string
	versionOrder []string
}

// NewMemory creates an in-memory store seeded with the default
// presentation version.
func NewMemory() *Memory {
	m := &Memory{
		users:    make(map[string]*models.User),
		charts:   make(map[string]*models.ChartConfig),
		versions: make(map[string]*models.WebsiteVersion),
	}

	now := time.Now()
	desc := "Default presentation version"
	m.versions[models.DefaultVersionID] = &models.WebsiteVersion{
		ID:           models.DefaultVersionID,
		Name:         models.DefaultVersionName,
		Description:  &desc,
		IsActive:     true,
		ChartConfigs: []string{},
		ContentData:  models.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.versionOrder = append(m.versionOrder, models.DefaultVersionID)

	return m
}

var _ Storage = (*Memory)(nil)

// --- Users ---

// GetUser returns the user with the given id, or nil if absent.
func (m *Memory) GetUser(id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetUserByUsername returns the user with the given username, or nil.
func (m *Memory) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// CreateUser stores a new user with a bcrypt-hashed password.
func (m *Memory) CreateUser(username, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: hash,
	}
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

// removeFromOrder drops id from an insertion-order slice.
func removeFromOrder(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
