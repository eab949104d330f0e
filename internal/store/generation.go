package store

import (
	"fmt"

	"github.com/zulandar/greenlight/internal/hierarchy"
	"github.com/zulandar/greenlight/internal/models"
	"gorm.io/gorm"
)

// PriorGeneration loads the already-persisted generation state for a
// project: the category->epic index and the set of checklist items
// that already have a story. Feeding this into hierarchy.Generate makes
// re-generation an additive merge instead of a duplicate-producing
// full pass.
func PriorGeneration(db *gorm.DB, projectID string) (hierarchy.Prior, error) {
	prior := hierarchy.Prior{
		EpicsByCategory:  make(map[string]string),
		GeneratedItemIDs: make(map[string]bool),
	}

	var epics []models.Epic
	if err := db.Select("id, category").Where("project_id = ?", projectID).
		Find(&epics).Error; err != nil {
		return prior, fmt.Errorf("store: load epic index for %s: %w", projectID, err)
	}
	for _, e := range epics {
		prior.EpicsByCategory[e.Category] = e.ID
	}

	var itemIDs []string
	if err := db.Model(&models.Story{}).Where("project_id = ?", projectID).
		Pluck("checklist_item_id", &itemIDs).Error; err != nil {
		return prior, fmt.Errorf("store: load generated items for %s: %w", projectID, err)
	}
	for _, id := range itemIDs {
		prior.GeneratedItemIDs[id] = true
	}

	return prior, nil
}

// SaveGeneration persists a generation result in one transaction: new
// epics, stories, and tasks, plus the linked-task back-reference on
// each checklist item. A link whose item row no longer exists fails the
// whole transaction with a DanglingReferenceError so no partial
// hierarchy is committed.
func SaveGeneration(db *gorm.DB, res *hierarchy.Result) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range res.Epics {
			if err := tx.Create(&res.Epics[i]).Error; err != nil {
				return fmt.Errorf("store: create epic %s: %w", res.Epics[i].ID, err)
			}
		}
		for i := range res.Stories {
			if err := tx.Create(&res.Stories[i]).Error; err != nil {
				return fmt.Errorf("store: create story %s: %w", res.Stories[i].ID, err)
			}
		}
		for i := range res.Tasks {
			if err := tx.Create(&res.Tasks[i]).Error; err != nil {
				return fmt.Errorf("store: create task %s: %w", res.Tasks[i].ID, err)
			}
		}

		for itemID, taskID := range res.Links {
			result := tx.Model(&models.ChecklistItem{}).
				Where("id = ?", itemID).
				Update("linked_task_id", taskID)
			if result.Error != nil {
				return fmt.Errorf("store: link item %s: %w", itemID, result.Error)
			}
			if result.RowsAffected == 0 {
				return &hierarchy.DanglingReferenceError{
					TaskID:          taskID,
					ChecklistItemID: itemID,
				}
			}
		}
		return nil
	})
}
