// Package store is the persistence layer around the pure engine
// packages: it loads records, runs the checklist/hierarchy/worksync
// transformations, and writes the results back transactionally. The
// engine itself performs no I/O.
package store

import (
	"errors"
	"fmt"

	"github.com/zulandar/greenlight/internal/models"
	"gorm.io/gorm"
)

// ErrAlreadyInstantiated is returned when a template is instantiated a
// second time for the same project. Instances are created once and
// never regenerated for the same selection.
var ErrAlreadyInstantiated = errors.New("store: template already instantiated for project")

// CreateProject creates a project record with an auto-generated ID.
func CreateProject(db *gorm.DB, name, projectType string) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("store: project name is required")
	}
	if projectType == "" {
		projectType = "web_app"
	}

	id, err := models.NewID(models.PrefixProject)
	if err != nil {
		return nil, err
	}
	project := models.Project{
		ID:     id,
		Name:   name,
		Type:   projectType,
		Status: "active",
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("store: create project: %w", err)
	}
	return &project, nil
}

// GetProject retrieves a project by ID.
func GetProject(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	if err := db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: project not found: %s", id)
		}
		return nil, fmt.Errorf("store: get project %s: %w", id, err)
	}
	return &project, nil
}

// ListProjects returns all projects, oldest first.
func ListProjects(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	if err := db.Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	return projects, nil
}

// SaveInstance persists a freshly instantiated checklist and its items.
// Re-instantiating the same template for a project is rejected with
// ErrAlreadyInstantiated rather than creating a duplicate.
func SaveInstance(db *gorm.DB, inst *models.ChecklistInstance) error {
	if _, err := GetProject(db, inst.ProjectID); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.ChecklistInstance{}).
		Where("project_id = ? AND template_id = ?", inst.ProjectID, inst.TemplateID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("store: check existing instance: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: template %s, project %s", ErrAlreadyInstantiated, inst.TemplateID, inst.ProjectID)
	}

	// Create cascades the Items association.
	if err := db.Create(inst).Error; err != nil {
		return fmt.Errorf("store: save instance: %w", err)
	}
	return nil
}

// GetInstance retrieves an instance with its items.
func GetInstance(db *gorm.DB, id string) (*models.ChecklistInstance, error) {
	var inst models.ChecklistInstance
	if err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC, id ASC")
	}).Where("id = ?", id).First(&inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: instance not found: %s", id)
		}
		return nil, fmt.Errorf("store: get instance %s: %w", id, err)
	}
	return &inst, nil
}

// InstanceForItem loads the instance that owns a checklist item.
func InstanceForItem(db *gorm.DB, itemID string) (*models.ChecklistInstance, error) {
	var item models.ChecklistItem
	if err := db.Select("instance_id").Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: checklist item not found: %s", itemID)
		}
		return nil, fmt.Errorf("store: get item %s: %w", itemID, err)
	}
	return GetInstance(db, item.InstanceID)
}

// InstancesForProject returns all checklist instances for a project,
// items included, oldest first.
func InstancesForProject(db *gorm.DB, projectID string) ([]models.ChecklistInstance, error) {
	var instances []models.ChecklistInstance
	if err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC, id ASC")
	}).Where("project_id = ?", projectID).
		Order("created_at ASC").Find(&instances).Error; err != nil {
		return nil, fmt.Errorf("store: instances for project %s: %w", projectID, err)
	}
	return instances, nil
}

// EpicsForProject returns all epics for a project.
func EpicsForProject(db *gorm.DB, projectID string) ([]models.Epic, error) {
	var epics []models.Epic
	if err := db.Where("project_id = ?", projectID).
		Order("category ASC").Find(&epics).Error; err != nil {
		return nil, fmt.Errorf("store: epics for project %s: %w", projectID, err)
	}
	return epics, nil
}

// TasksForProject returns all tasks for a project, grouped by story.
func TasksForProject(db *gorm.DB, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := db.Where("project_id = ?", projectID).
		Order("story_id ASC, created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("store: tasks for project %s: %w", projectID, err)
	}
	return tasks, nil
}
