// Package database opens the GORM connection and migrates the schema.
package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Andrew-O39/moviweb-app/internal/models"
)

// Connect opens the database described by url and migrates the three
// tables. A postgres DSN selects the postgres driver; anything else is
// treated as a sqlite file path, which is what local development uses.
func Connect(url string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if isPostgresDSN(url) {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Open(url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the users, movies and reviews tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Movie{}, &models.Review{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func isPostgresDSN(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://") ||
		strings.Contains(url, "host=")
}
