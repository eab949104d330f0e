// Package worksync propagates completion state between a checklist
// item and its linked task. Each linked pair is a two-state machine
// (open/done) reachable from either side; the functions here are pure
// and return updated copies for the caller to persist atomically.
package worksync

import (
	"fmt"
	"time"

	"github.com/zulandar/greenlight/internal/models"
)

// Origin identifies which side of a linked pair triggered a sync.
type Origin string

const (
	OriginChecklist Origin = "checklist"
	OriginTask      Origin = "task"
)

// FromChecklist propagates a checklist item's completion state onto
// its task. A completed item forces the task to done; an un-checked
// item leaves the task untouched.
//
// The asymmetry is deliberate policy, not an oversight: checklist
// completion is one-way authoritative for marking done, but un-checking
// must not clobber intermediate task states like in_progress. Reverting
// a done task requires explicit review by the caller.
func FromChecklist(item models.ChecklistItem, task models.Task) models.Task {
	if item.Completed && task.Status != models.StatusDone {
		task.Status = models.StatusDone
		now := time.Now()
		task.CompletedAt = &now
	}
	return task
}

// FromTask mirrors a task's status onto its checklist item: done marks
// the item completed (stamping CompletedAt and CompletedBy, falling
// back to the task assignee when completedBy is empty), anything else
// un-completes it and clears both fields.
func FromTask(task models.Task, item models.ChecklistItem, completedBy string) models.ChecklistItem {
	done := task.Status == models.StatusDone

	if done && !item.Completed {
		item.Completed = true
		now := time.Now()
		item.CompletedAt = &now
		if completedBy == "" {
			completedBy = task.AssignedTo
		}
		item.CompletedBy = completedBy
	}
	if !done && item.Completed {
		item.Completed = false
		item.CompletedAt = nil
		item.CompletedBy = ""
	}
	return item
}

// Bidirectional dispatches to the correct one-way sync based on origin
// and returns both updated records. The caller must persist the pair as
// a unit — both writes in one transaction — or accept last-write-wins
// races under concurrent edits from both ends.
func Bidirectional(item models.ChecklistItem, task models.Task, origin Origin, completedBy string) (models.ChecklistItem, models.Task, error) {
	switch origin {
	case OriginChecklist:
		return item, FromChecklist(item, task), nil
	case OriginTask:
		return FromTask(task, item, completedBy), task, nil
	default:
		return item, task, fmt.Errorf("worksync: unknown origin %q", origin)
	}
}
