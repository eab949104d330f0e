package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/zulandar/greenlight/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDigestTestDB opens an in-memory SQLite DB with the tables the
// digest queries touch.
func openDigestTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.ChecklistInstance{},
		&models.ChecklistItem{},
		&models.Task{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func ptr(t time.Time) *time.Time { return &t }

func TestBuildDailyDigest_NoActivity(t *testing.T) {
	db := openDigestTestDB(t)

	evt, err := BuildDailyDigest(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt != nil {
		t.Errorf("expected nil when no activity, got %v", evt)
	}
}

func TestBuildDailyDigest_WithActivity(t *testing.T) {
	db := openDigestTestDB(t)
	recent := time.Now().Add(-2 * time.Hour)

	db.Create(&models.ChecklistItem{ID: "itm-1", InstanceID: "chk-1", Title: "Done item",
		Completed: true, CompletedAt: ptr(recent)})
	db.Create(&models.Task{ID: "tsk-1", ProjectID: "prj-1", StoryID: "sty-1", Title: "Done task",
		Status: models.StatusDone, CompletedAt: ptr(recent)})
	db.Create(&models.ChecklistInstance{ID: "chk-1", ProjectID: "prj-1", TemplateName: "Launch",
		ProductionReady: true})

	evt, err := BuildDailyDigest(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt == nil {
		t.Fatal("expected event, got nil")
	}
	if evt.Type != EventDailyDigest {
		t.Errorf("type = %v, want %v", evt.Type, EventDailyDigest)
	}
	if !strings.Contains(evt.Body, "1 items completed") || !strings.Contains(evt.Body, "1 tasks closed") {
		t.Errorf("body = %q", evt.Body)
	}
	found := false
	for _, f := range evt.Fields {
		if f.Name == "Production-ready" && strings.Contains(f.Value, "Launch") {
			found = true
		}
	}
	if !found {
		t.Error("expected a production-ready field naming the instance")
	}
}

func TestBuildDailyDigest_OldActivitySuppressed(t *testing.T) {
	db := openDigestTestDB(t)
	old := time.Now().Add(-48 * time.Hour)

	db.Create(&models.ChecklistItem{ID: "itm-1", InstanceID: "chk-1", Title: "Old",
		Completed: true, CompletedAt: ptr(old)})
	db.Create(&models.Task{ID: "tsk-1", ProjectID: "prj-1", StoryID: "sty-1", Title: "Old",
		Status: models.StatusDone, CompletedAt: ptr(old)})

	evt, err := BuildDailyDigest(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if evt != nil {
		t.Errorf("expected nil for old activity, got %v", evt)
	}
}
