package hierarchy

import (
	"fmt"

	"github.com/zulandar/greenlight/internal/models"
)

// DanglingReferenceError reports a cross-reference that points at a
// record which does not exist, indicating upstream corruption or a
// generation bug.
type DanglingReferenceError struct {
	TaskID          string
	ChecklistItemID string
	InstanceID      string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("hierarchy: task %s references checklist item %q not present in instance %s",
		e.TaskID, e.ChecklistItemID, e.InstanceID)
}

// Link sets the back-reference from the checklist item a task was
// generated from, completing the mutual item<->task link. The forward
// reference (Task.ChecklistItemID) is written at generation time; this
// writes ChecklistItem.LinkedTaskID in the given instance.
//
// If the referenced item does not exist in the instance, Link fails
// with a DanglingReferenceError and mutates nothing.
func Link(task *models.Task, inst *models.ChecklistInstance) error {
	if task.ChecklistItemID == "" {
		return &DanglingReferenceError{TaskID: task.ID, InstanceID: inst.ID}
	}
	for i := range inst.Items {
		if inst.Items[i].ID == task.ChecklistItemID {
			inst.Items[i].LinkedTaskID = task.ID
			return nil
		}
	}
	return &DanglingReferenceError{
		TaskID:          task.ID,
		ChecklistItemID: task.ChecklistItemID,
		InstanceID:      inst.ID,
	}
}

// FindItem returns a pointer to the item with the given ID inside the
// instance, or nil if absent.
func FindItem(inst *models.ChecklistInstance, itemID string) *models.ChecklistItem {
	for i := range inst.Items {
		if inst.Items[i].ID == itemID {
			return &inst.Items[i]
		}
	}
	return nil
}

// Linked reports whether an item and task reference each other
// mutually. Both halves must agree; a one-directional reference is a
// defect.
func Linked(item models.ChecklistItem, task models.Task) bool {
	return item.LinkedTaskID == task.ID && task.ChecklistItemID == item.ID
}
