package store

import (
	"strings"
	"testing"

	"github.com/zulandar/greenlight/internal/hierarchy"
	"github.com/zulandar/greenlight/internal/models"
	"gorm.io/gorm"
)

// seedGenerated builds a project with one instantiated checklist and a
// fully generated, persisted hierarchy.
func seedGenerated(t *testing.T, db *gorm.DB) (*models.Project, *models.ChecklistInstance) {
	t.Helper()
	project, _ := seedInstance(t, db, launchTemplate())

	instances, err := InstancesForProject(db, project.ID)
	if err != nil {
		t.Fatalf("instances: %v", err)
	}
	prior, err := PriorGeneration(db, project.ID)
	if err != nil {
		t.Fatalf("prior: %v", err)
	}
	res, err := hierarchy.Generate(project.ID, instances, prior)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := SaveGeneration(db, res); err != nil {
		t.Fatalf("save generation: %v", err)
	}

	inst, err := GetInstance(db, instances[0].ID)
	if err != nil {
		t.Fatalf("reload instance: %v", err)
	}
	return project, inst
}

// linkedItem returns an item from the instance that has a linked task.
func linkedItem(t *testing.T, inst *models.ChecklistInstance) models.ChecklistItem {
	t.Helper()
	for _, item := range inst.Items {
		if item.LinkedTaskID != "" {
			return item
		}
	}
	t.Fatal("no linked item in instance")
	return models.ChecklistItem{}
}

func TestToggleItem_CheckCompletesLinkedTask(t *testing.T) {
	db := openTestDB(t)
	_, inst := seedGenerated(t, db)
	item := linkedItem(t, inst)

	res, err := ToggleItem(db, item.ID, true, models.User("alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Item.Completed || res.Item.CompletedBy != "alice" {
		t.Errorf("item = %+v, want completed by alice", res.Item)
	}
	if res.Task == nil || res.Task.Status != models.StatusDone {
		t.Fatalf("linked task should be done, got %+v", res.Task)
	}
	if res.Instance.CompletedItems != 1 {
		t.Errorf("completed items = %d, want 1", res.Instance.CompletedItems)
	}
	if res.Instance.Status != models.InstanceInProgress {
		t.Errorf("instance status = %q, want in_progress", res.Instance.Status)
	}

	// Everything persisted, not just returned.
	var dbItem models.ChecklistItem
	db.Where("id = ?", item.ID).First(&dbItem)
	if !dbItem.Completed || dbItem.CompletedAt == nil {
		t.Error("item completion not persisted")
	}
	var dbTask models.Task
	db.Where("id = ?", item.LinkedTaskID).First(&dbTask)
	if dbTask.Status != models.StatusDone || dbTask.CompletedAt == nil {
		t.Error("task completion not persisted")
	}
	var dbInst models.ChecklistInstance
	db.Where("id = ?", inst.ID).First(&dbInst)
	if dbInst.CompletedItems != 1 {
		t.Error("instance aggregates not persisted")
	}
}

func TestToggleItem_UncheckLeavesTaskDone(t *testing.T) {
	db := openTestDB(t)
	_, inst := seedGenerated(t, db)
	item := linkedItem(t, inst)

	if _, err := ToggleItem(db, item.ID, true, models.User("alice")); err != nil {
		t.Fatalf("check: %v", err)
	}
	res, err := ToggleItem(db, item.ID, false, models.User("alice"))
	if err != nil {
		t.Fatalf("uncheck: %v", err)
	}

	if res.Item.Completed {
		t.Error("item should be un-checked")
	}
	if res.Item.CompletedAt != nil || res.Item.CompletedBy != "" {
		t.Error("completion provenance should be cleared")
	}
	// The one-way rule: the task stays done.
	var dbTask models.Task
	db.Where("id = ?", item.LinkedTaskID).First(&dbTask)
	if dbTask.Status != models.StatusDone {
		t.Errorf("task status = %q, un-check must not revert done", dbTask.Status)
	}
	if res.Instance.CompletedItems != 0 {
		t.Errorf("completed items = %d, want 0", res.Instance.CompletedItems)
	}
}

func TestToggleItem_NoLinkedTask(t *testing.T) {
	db := openTestDB(t)
	_, inst := seedInstance(t, db, launchTemplate())

	// No generation has run, so no item has a task.
	res, err := ToggleItem(db, inst.Items[0].ID, true, models.System())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Task != nil {
		t.Errorf("task = %+v, want nil for unlinked item", res.Task)
	}
	if res.Item.CompletedBy != "system" {
		t.Errorf("completed by = %q, want system", res.Item.CompletedBy)
	}
}

func TestToggleItem_NotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := ToggleItem(db, "itm-ghost", true, models.System())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestToggleItem_ProductionReadyTransition(t *testing.T) {
	db := openTestDB(t)
	_, inst := seedGenerated(t, db)

	before := *inst
	var last *SyncResult
	for _, item := range inst.Items {
		if !item.Required {
			continue
		}
		res, err := ToggleItem(db, item.ID, true, models.User("alice"))
		if err != nil {
			t.Fatalf("toggle %s: %v", item.ID, err)
		}
		last = res
	}

	if last == nil {
		t.Fatal("template has no required items")
	}
	if !last.Instance.ProductionReady {
		t.Error("all required complete, instance should be production-ready")
	}
	if !last.BecameProductionReady(before) {
		t.Error("BecameProductionReady should flag the transition")
	}
	// Optional item still open, so not fully completed.
	if last.Instance.Status == models.InstanceCompleted {
		t.Error("instance should not be completed with an optional item open")
	}
}

func TestUpdateTaskStatus_DoneChecksItem(t *testing.T) {
	db := openTestDB(t)
	_, inst := seedGenerated(t, db)
	item := linkedItem(t, inst)

	res, err := UpdateTaskStatus(db, item.LinkedTaskID, models.StatusDone, models.User("bob"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Task.Status != models.StatusDone || res.Task.CompletedAt == nil {
		t.Errorf("task = %+v", res.Task)
	}
	if !res.Item.Completed || res.Item.CompletedBy != "bob" {
		t.Errorf("item = %+v, want completed by bob", res.Item)
	}
	if res.Instance.CompletedItems != 1 {
		t.Errorf("completed items = %d, want 1", res.Instance.CompletedItems)
	}

	var dbItem models.ChecklistItem
	db.Where("id = ?", item.ID).First(&dbItem)
	if !dbItem.Completed {
		t.Error("item completion not persisted")
	}
}

func TestUpdateTaskStatus_ReopenUnchecksItem(t *testing.T) {
	db := openTestDB(t)
	_, inst := seedGenerated(t, db)
	item := linkedItem(t, inst)

	if _, err := UpdateTaskStatus(db, item.LinkedTaskID, models.StatusDone, models.User("bob")); err != nil {
		t.Fatalf("done: %v", err)
	}
	res, err := UpdateTaskStatus(db, item.LinkedTaskID, models.StatusInProgress, models.User("bob"))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if res.Task.Status != models.StatusInProgress || res.Task.CompletedAt != nil {
		t.Errorf("task = %+v", res.Task)
	}
	if res.Item.Completed {
		t.Error("reopening the linked task should un-check the item")
	}
	if res.Instance.CompletedItems != 0 {
		t.Errorf("completed items = %d, want 0", res.Instance.CompletedItems)
	}
}

func TestUpdateTaskStatus_NonPrimaryTaskDoesNotSync(t *testing.T) {
	db := openTestDB(t)
	_, inst := seedGenerated(t, db)
	item := linkedItem(t, inst)

	// Find a secondary task for the same item (not the linked one).
	var secondary models.Task
	err := db.Where("checklist_item_id = ? AND id <> ?", item.ID, item.LinkedTaskID).
		First(&secondary).Error
	if err != nil {
		t.Skipf("no secondary task for item %s: %v", item.ID, err)
	}

	res, err := UpdateTaskStatus(db, secondary.ID, models.StatusDone, models.User("bob"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Task.Status != models.StatusDone {
		t.Errorf("task status = %q", res.Task.Status)
	}
	// The item is untouched: only the primary task drives the checklist.
	var dbItem models.ChecklistItem
	db.Where("id = ?", item.ID).First(&dbItem)
	if dbItem.Completed {
		t.Error("secondary task completion must not check the item")
	}
}

func TestUpdateTaskStatus_InvalidStatus(t *testing.T) {
	db := openTestDB(t)
	_, err := UpdateTaskStatus(db, "tsk-any", "blocked", models.System())
	if err == nil || !strings.Contains(err.Error(), "invalid task status") {
		t.Errorf("error = %v, want invalid status", err)
	}
}

func TestProjectReadiness_Rollup(t *testing.T) {
	db := openTestDB(t)
	project, inst := seedGenerated(t, db)

	pc, err := ProjectReadiness(db, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc.TotalItems != 3 || pc.CompletedItems != 0 {
		t.Errorf("items = %d/%d, want 0/3", pc.CompletedItems, pc.TotalItems)
	}
	if pc.AllProductionReady {
		t.Error("required items open, should not be ready")
	}

	for _, item := range inst.Items {
		if item.Required {
			if _, err := ToggleItem(db, item.ID, true, models.System()); err != nil {
				t.Fatalf("toggle: %v", err)
			}
		}
	}
	pc, err = ProjectReadiness(db, project.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pc.AllProductionReady {
		t.Error("all required done, project should be ready")
	}
}
