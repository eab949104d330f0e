// Package models defines the GORM entities shared across Greenlight.
package models

import "time"

// Project is the platform entity that checklists, epics, stories, and
// tasks attach to. Greenlight only needs the identity fields; the rest
// of the project record lives in the main platform.
type Project struct {
	ID     string `gorm:"primaryKey;size:32"`
	Name   string `gorm:"not null"`
	Type   string `gorm:"size:32;default:web_app;index"`
	Status string `gorm:"size:16;default:active"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Instances []ChecklistInstance `gorm:"foreignKey:ProjectID"`
	Epics     []Epic              `gorm:"foreignKey:ProjectID"`
}
