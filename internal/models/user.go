// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the entity types shared by the stores, the HTTP
// facade, and the API client. IDs are opaque strings: server-generated
// UUIDv4 for created records, plus one fixed id ("default-version") for
// the bootstrapped presentation version.
package models

// User is an operator account. No HTTP route exposes users in the current
// design; they exist only behind the store interface.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	// Password holds the bcrypt hash of the password supplied at creation.
	Password string `json:"password"`
}
