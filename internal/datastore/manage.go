// manage.go: database schema migration
package datastore

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/nickofolas/reposterminator/internal/errors"
)

// performAutoMigration runs GORM auto-migration for all model tables.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	migrationStart := time.Now()

	if debug {
		slog.Debug("Starting database migration",
			"db_type", dbType,
			"connection", connectionInfo)
	}

	if err := db.AutoMigrate(&Community{}, &Submission{}, &Fingerprint{}); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("db_type", dbType).
			Build()
	}

	if debug {
		slog.Debug("Database migration completed successfully",
			"db_type", dbType,
			"total_duration", time.Since(migrationStart))
	}

	return nil
}
