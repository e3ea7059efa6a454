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

// Postgres is the opt-in durable backend. It implements the same
// semantics as Memory on top of the relational schema in
// internal/database/migrations. Selected with STORAGE_BACKEND=postgres.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed store using the given
// connection pool. The caller is responsible for running migrations and
// seeding first (see internal/database).
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var _ Storage = (*Postgres)(nil)

// GetUser returns the user with the given id, or nil if absent.
func (s *Postgres) GetUser(id string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, username, password FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByUsername returns the user with the given username, or nil.
func (s *Postgres) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, username, password FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// CreateUser inserts a new user with a bcrypt-hashed password.
func (s *Postgres) CreateUser(username, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{}
	err = s.db.QueryRow(`
		INSERT INTO users (id, username, password)
		VALUES ($1, $2, $3)
		RETURNING id, username, password
	`, uuid.NewString(), username, hash).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// marshalJSON encodes an arbitrary JSON value for a jsonb column.
// A nil value becomes SQL NULL.
func marshalJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return b, nil
}

// unmarshalJSON decodes a jsonb column into a Go value. NULL stays nil.
func unmarshalJSON(raw []byte, dst *any) error {
	if raw == nil {
		*dst = nil
		return nil
	}
	return json.Unmarshal(raw, dst)
}
