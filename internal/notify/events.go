package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/greenlight/internal/hierarchy"
	"github.com/zulandar/greenlight/internal/models"
)

// Severity colors for chat attachments.
const (
	colorSuccess = "#36a64f"
	colorWarning = "#daa038"
	colorInfo    = "#439fe0"
)

// ProductionReadyEvent announces that an instance's required items are
// all complete.
func ProductionReadyEvent(project models.Project, inst models.ChecklistInstance) Event {
	return Event{
		Type:     EventProductionReady,
		Title:    fmt.Sprintf("%s is production-ready", inst.TemplateName),
		Body:     fmt.Sprintf("All required checklist items for %q are complete.", project.Name),
		Severity: "success",
		Color:    colorSuccess,
		Fields: []Field{
			{Name: "Project", Value: project.Name, Short: true},
			{Name: "Checklist", Value: inst.TemplateName, Short: true},
			{Name: "Required", Value: fmt.Sprintf("%d/%d", inst.CompletedRequiredItems, inst.RequiredItems), Short: true},
			{Name: "Overall", Value: fmt.Sprintf("%d/%d", inst.CompletedItems, inst.TotalItems), Short: true},
		},
		Timestamp: time.Now(),
	}
}

// InstanceCompletedEvent announces that every item in an instance,
// optional ones included, is complete.
func InstanceCompletedEvent(project models.Project, inst models.ChecklistInstance) Event {
	return Event{
		Type:     EventInstanceCompleted,
		Title:    fmt.Sprintf("%s checklist completed", inst.TemplateName),
		Body:     fmt.Sprintf("Every item for %q is done (%d/%d).", project.Name, inst.CompletedItems, inst.TotalItems),
		Severity: "success",
		Color:    colorSuccess,
		Fields: []Field{
			{Name: "Project", Value: project.Name, Short: true},
			{Name: "Checklist", Value: inst.TemplateName, Short: true},
		},
		Timestamp: time.Now(),
	}
}

// OrphanWarningEvent reports items skipped during generation because
// their category had no epic. These are warnings: generation succeeded
// for everything else.
func OrphanWarningEvent(projectID string, warnings []*hierarchy.OrphanCategoryError) Event {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = fmt.Sprintf("item %s (category %q)", w.ItemID, w.Category)
	}
	return Event{
		Type:     EventOrphanCategories,
		Title:    fmt.Sprintf("%d checklist item(s) skipped during generation", len(warnings)),
		Body:     strings.Join(lines, "\n"),
		Severity: "warning",
		Color:    colorWarning,
		Fields: []Field{
			{Name: "Project", Value: projectID, Short: true},
		},
		Timestamp: time.Now(),
	}
}
