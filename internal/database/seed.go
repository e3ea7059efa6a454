package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"deckd/internal/models"
)

// Seed inserts the default presentation version if no versions exist
// yet, so GetActiveWebsiteVersion never comes up empty on a fresh
// database. Safe to run on every boot.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM website_versions").Scan(&count); err != nil {
		return fmt.Errorf("seed check versions: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO website_versions (id, name, description, is_active, chart_configs, content_data)
		VALUES ($1, $2, $3, TRUE, '[]', '{}')
	`, models.DefaultVersionID, models.DefaultVersionName, "Default presentation version")
	if err != nil {
		return fmt.Errorf("seed insert default version: %w", err)
	}

	slog.Info("database seeded with default website version",
		"id", models.DefaultVersionID,
		"name", models.DefaultVersionName,
	)

	return nil
}
