package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/greenlight/internal/checklist"
	"github.com/zulandar/greenlight/internal/hierarchy"
	"github.com/zulandar/greenlight/internal/models"
	"github.com/zulandar/greenlight/internal/worksync"
	"gorm.io/gorm"
)

// ValidTaskStatuses lists the statuses a task may be set to.
var ValidTaskStatuses = map[string]bool{
	models.StatusBacklog:    true,
	models.StatusTodo:       true,
	models.StatusInProgress: true,
	models.StatusReview:     true,
	models.StatusDone:       true,
	models.StatusCancelled:  true,
}

// SyncResult holds the records updated by one sync pass. Task is nil
// when the checklist item has no linked task.
type SyncResult struct {
	Item     models.ChecklistItem
	Task     *models.Task
	Instance models.ChecklistInstance
}

// BecameProductionReady reports whether this pass flipped the instance
// to production-ready.
func (r *SyncResult) BecameProductionReady(before models.ChecklistInstance) bool {
	return r.Instance.ProductionReady && !before.ProductionReady
}

// ToggleItem checks or un-checks a checklist item, propagates the
// change to its linked task through the sync engine, recomputes the
// instance aggregates, and persists item, task, and instance in a
// single transaction. The (item, task) pair is the unit of consistency;
// this is where the caller-side atomicity requirement is discharged.
func ToggleItem(db *gorm.DB, itemID string, completed bool, by models.Actor) (*SyncResult, error) {
	var item models.ChecklistItem
	if err := db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: checklist item not found: %s", itemID)
		}
		return nil, fmt.Errorf("store: get item %s: %w", itemID, err)
	}

	if completed && !item.Completed {
		now := time.Now()
		item.Completed = true
		item.CompletedAt = &now
		item.CompletedBy = by.Name()
	}
	if !completed && item.Completed {
		item.Completed = false
		item.CompletedAt = nil
		item.CompletedBy = ""
	}

	var task *models.Task
	if item.LinkedTaskID != "" {
		var t models.Task
		if err := db.Where("id = ?", item.LinkedTaskID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &hierarchy.DanglingReferenceError{
					TaskID:          item.LinkedTaskID,
					ChecklistItemID: item.ID,
					InstanceID:      item.InstanceID,
				}
			}
			return nil, fmt.Errorf("store: get linked task %s: %w", item.LinkedTaskID, err)
		}
		_, synced, err := worksync.Bidirectional(item, t, worksync.OriginChecklist, "")
		if err != nil {
			return nil, err
		}
		task = &synced
	}

	inst, err := applyItemUpdate(db, item)
	if err != nil {
		return nil, err
	}

	res := &SyncResult{Item: item, Task: task, Instance: *inst}
	return res, persistSync(db, res)
}

// UpdateTaskStatus changes a task's status, propagates done/undone to
// the originating checklist item, recomputes the instance aggregates,
// and persists everything in a single transaction.
func UpdateTaskStatus(db *gorm.DB, taskID, status string, by models.Actor) (*SyncResult, error) {
	if !ValidTaskStatuses[status] {
		return nil, fmt.Errorf("store: invalid task status %q", status)
	}

	var task models.Task
	if err := db.Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: task not found: %s", taskID)
		}
		return nil, fmt.Errorf("store: get task %s: %w", taskID, err)
	}

	task.Status = status
	if status == models.StatusDone {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	// Tasks without a checklist back-reference (or that are not the
	// linked primary task) only update themselves.
	var item models.ChecklistItem
	linked := false
	if task.ChecklistItemID != "" {
		if err := db.Where("id = ?", task.ChecklistItemID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &hierarchy.DanglingReferenceError{
					TaskID:          task.ID,
					ChecklistItemID: task.ChecklistItemID,
					InstanceID:      task.ChecklistInstanceID,
				}
			}
			return nil, fmt.Errorf("store: get item %s: %w", task.ChecklistItemID, err)
		}
		linked = item.LinkedTaskID == task.ID
	}

	if !linked {
		if err := db.Save(&task).Error; err != nil {
			return nil, fmt.Errorf("store: save task %s: %w", task.ID, err)
		}
		return &SyncResult{Task: &task}, nil
	}

	completedBy := ""
	if !by.IsSystem() {
		completedBy = by.Name()
	}
	synced, _, err := worksync.Bidirectional(item, task, worksync.OriginTask, completedBy)
	if err != nil {
		return nil, err
	}

	inst, err := applyItemUpdate(db, synced)
	if err != nil {
		return nil, err
	}

	res := &SyncResult{Item: synced, Task: &task, Instance: *inst}
	return res, persistSync(db, res)
}

// applyItemUpdate loads the item's instance, swaps in the updated item,
// and recomputes the aggregates in memory.
func applyItemUpdate(db *gorm.DB, item models.ChecklistItem) (*models.ChecklistInstance, error) {
	inst, err := GetInstance(db, item.InstanceID)
	if err != nil {
		return nil, err
	}
	for i := range inst.Items {
		if inst.Items[i].ID == item.ID {
			inst.Items[i] = item
		}
	}
	updated := checklist.RecomputeProgress(*inst)
	return &updated, nil
}

// persistSync writes the item, task, and instance aggregates in one
// transaction so a reader never sees half a sync.
func persistSync(db *gorm.DB, res *SyncResult) error {
	return db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"completed":    res.Item.Completed,
			"completed_at": res.Item.CompletedAt,
			"completed_by": res.Item.CompletedBy,
		}
		if err := tx.Model(&models.ChecklistItem{}).
			Where("id = ?", res.Item.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("store: update item %s: %w", res.Item.ID, err)
		}

		if res.Task != nil {
			taskUpdates := map[string]interface{}{
				"status":       res.Task.Status,
				"completed_at": res.Task.CompletedAt,
			}
			if err := tx.Model(&models.Task{}).
				Where("id = ?", res.Task.ID).Updates(taskUpdates).Error; err != nil {
				return fmt.Errorf("store: update task %s: %w", res.Task.ID, err)
			}
		}

		instUpdates := map[string]interface{}{
			"completed_items":          res.Instance.CompletedItems,
			"completed_required_items": res.Instance.CompletedRequiredItems,
			"production_ready":         res.Instance.ProductionReady,
			"status":                   res.Instance.Status,
			"completed_at":             res.Instance.CompletedAt,
		}
		if err := tx.Model(&models.ChecklistInstance{}).
			Where("id = ?", res.Instance.ID).Updates(instUpdates).Error; err != nil {
			return fmt.Errorf("store: update instance %s: %w", res.Instance.ID, err)
		}
		return nil
	})
}

// ProjectReadiness rolls up checklist completion across a project.
func ProjectReadiness(db *gorm.DB, projectID string) (checklist.ProjectCompletion, error) {
	instances, err := InstancesForProject(db, projectID)
	if err != nil {
		return checklist.ProjectCompletion{}, err
	}
	return checklist.ProjectProgress(instances), nil
}
