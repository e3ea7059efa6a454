// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides persistence for users, chart configs, and
// website versions behind a single Storage interface. Two backends
// exist: the default in-memory store (volatile, reseeded on every boot)
// and an opt-in PostgreSQL store mirroring the same semantics.
package store

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"deckd/internal/models"
)

// ErrNotFound is returned when an operation addresses a record id that
// does not exist. Lookups signal absence with a nil record instead;
// only mutations fail with this error.
var ErrNotFound = errors.New("record not found")

// ErrNoActiveVersion is returned by content writes when no website
// version is currently flagged active. This is a user-visible error:
// the editor surfaces it instead of silently dropping the save.
var ErrNoActiveVersion = errors.New("no active website version")

// Storage is the persistence contract shared by the memory and
// PostgreSQL backends.
//
// Lookup methods return (nil, nil) on a miss. Delete methods are
// idempotent: deleting an absent id is a no-op. Update and activation
// methods fail with ErrNotFound on an absent id without touching any
// other record.
type Storage interface {
	// Users. Passwords are bcrypt-hashed before storage.
	GetUser(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(username, password string) (*models.User, error)

	// Chart configs.
	GetChartConfig(id string) (*models.ChartConfig, error)
	GetChartConfigsByType(chartType string) ([]models.ChartConfig, error)
	GetAllChartConfigs() ([]models.ChartConfig, error)
	CreateChartConfig(c *models.ChartConfig) (*models.ChartConfig, error)
	UpdateChartConfig(id string, patch models.ChartConfigPatch) (*models.ChartConfig, error)
	DeleteChartConfig(id string) error

	// Website versions. Exactly one version is active in steady state;
	// SetActiveWebsiteVersion validates existence before clearing any
	// flag, so a bad id never leaves the store with zero active versions.
	GetWebsiteVersion(id string) (*models.WebsiteVersion, error)
	GetAllWebsiteVersions() ([]models.WebsiteVersion, error)
	GetActiveWebsiteVersion() (*models.WebsiteVersion, error)
	CreateWebsiteVersion(v *models.WebsiteVersion) (*models.WebsiteVersion, error)
	UpdateWebsiteVersion(id string, patch models.WebsiteVersionPatch) (*models.WebsiteVersion, error)
	DeleteWebsiteVersion(id string) error
	SetActiveWebsiteVersion(id string) error

	// Content sections of the active version. Reads tolerate a missing
	// active version (nil value / empty map); writes do not.
	GetContentData(sectionKey string) (any, error)
	GetAllContentData() (models.JSONMap, error)
	UpdateContentData(sectionKey string, data any) error
}

// VerifyPassword checks a plaintext password against a user's stored
// bcrypt hash.
func VerifyPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// hashPassword is shared by both backends' CreateUser.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
