package db

import (
	"fmt"

	"github.com/zulandar/greenlight/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Project{},
		&models.ChecklistInstance{},
		&models.ChecklistItem{},
		&models.Epic{},
		&models.Story{},
		&models.Task{},
	}
}

// AutoMigrate creates or updates all Greenlight tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
