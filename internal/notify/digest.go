package notify

import (
	"fmt"
	"time"

	"github.com/zulandar/greenlight/internal/models"
	"gorm.io/gorm"
)

// digestWindow is how far back the daily digest looks for activity.
const digestWindow = 24 * time.Hour

// BuildDailyDigest summarizes the last day of checklist activity:
// items completed, instances that became production-ready, and tasks
// closed. Returns nil when there was no activity.
func BuildDailyDigest(db *gorm.DB) (*Event, error) {
	since := time.Now().Add(-digestWindow)

	var itemsDone int64
	if err := db.Model(&models.ChecklistItem{}).
		Where("completed = ? AND completed_at >= ?", true, since).
		Count(&itemsDone).Error; err != nil {
		return nil, fmt.Errorf("notify: digest items: %w", err)
	}

	var tasksDone int64
	if err := db.Model(&models.Task{}).
		Where("status = ? AND completed_at >= ?", models.StatusDone, since).
		Count(&tasksDone).Error; err != nil {
		return nil, fmt.Errorf("notify: digest tasks: %w", err)
	}

	var readyInstances []models.ChecklistInstance
	if err := db.Where("production_ready = ? AND updated_at >= ?", true, since).
		Find(&readyInstances).Error; err != nil {
		return nil, fmt.Errorf("notify: digest instances: %w", err)
	}

	if itemsDone == 0 && tasksDone == 0 && len(readyInstances) == 0 {
		return nil, nil
	}

	fields := []Field{
		{Name: "Items completed", Value: fmt.Sprintf("%d", itemsDone), Short: true},
		{Name: "Tasks closed", Value: fmt.Sprintf("%d", tasksDone), Short: true},
	}
	for _, inst := range readyInstances {
		fields = append(fields, Field{
			Name:  "Production-ready",
			Value: fmt.Sprintf("%s (project %s)", inst.TemplateName, inst.ProjectID),
		})
	}

	return &Event{
		Type:      EventDailyDigest,
		Title:     "Daily Readiness Digest",
		Body:      fmt.Sprintf("Activity in the last 24h: %d items completed, %d tasks closed.", itemsDone, tasksDone),
		Severity:  "info",
		Color:     colorInfo,
		Fields:    fields,
		Timestamp: time.Now(),
	}, nil
}
