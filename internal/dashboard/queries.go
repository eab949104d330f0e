package dashboard

import (
	"time"

	"github.com/zulandar/greenlight/internal/checklist"
	"github.com/zulandar/greenlight/internal/models"
	"github.com/zulandar/greenlight/internal/store"
	"gorm.io/gorm"
)

// ProjectRow holds a project plus its readiness rollup for the list view.
type ProjectRow struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	OverallProgress int    `json:"overall_progress"`
	TotalItems      int    `json:"total_items"`
	CompletedItems  int    `json:"completed_items"`
	ProductionReady bool   `json:"production_ready"`
	InstanceCount   int    `json:"instance_count"`
}

// ProjectSummary returns every project with its readiness rollup.
func ProjectSummary(db *gorm.DB) ([]ProjectRow, error) {
	projects, err := store.ListProjects(db)
	if err != nil {
		return nil, err
	}

	rows := make([]ProjectRow, len(projects))
	for i, p := range projects {
		pc, err := store.ProjectReadiness(db, p.ID)
		if err != nil {
			return nil, err
		}
		rows[i] = ProjectRow{
			ID:              p.ID,
			Name:            p.Name,
			Type:            p.Type,
			OverallProgress: pc.OverallProgress,
			TotalItems:      pc.TotalItems,
			CompletedItems:  pc.CompletedItems,
			ProductionReady: pc.AllProductionReady,
			InstanceCount:   pc.InstanceCount,
		}
	}
	return rows, nil
}

// InstanceRow holds instance aggregates for the project detail view.
type InstanceRow struct {
	ID                     string     `json:"id"`
	TemplateID             string     `json:"template_id"`
	TemplateName           string     `json:"template_name"`
	Status                 string     `json:"status"`
	TotalItems             int        `json:"total_items"`
	CompletedItems         int        `json:"completed_items"`
	RequiredItems          int        `json:"required_items"`
	CompletedRequiredItems int        `json:"completed_required_items"`
	ProductionReady        bool       `json:"production_ready"`
	CompletedAt            *time.Time `json:"completed_at,omitempty"`
}

// ProjectReadiness holds the full readiness payload for one project.
type ProjectReadiness struct {
	ProjectID  string                      `json:"project_id"`
	Completion checklist.ProjectCompletion `json:"completion"`
	Instances  []InstanceRow               `json:"instances"`
}

// GetProjectReadiness builds the readiness payload for a project.
func GetProjectReadiness(db *gorm.DB, projectID string) (*ProjectReadiness, error) {
	if _, err := store.GetProject(db, projectID); err != nil {
		return nil, err
	}
	instances, err := store.InstancesForProject(db, projectID)
	if err != nil {
		return nil, err
	}

	out := &ProjectReadiness{
		ProjectID:  projectID,
		Completion: checklist.ProjectProgress(instances),
		Instances:  make([]InstanceRow, len(instances)),
	}
	for i, inst := range instances {
		out.Instances[i] = InstanceRow{
			ID:                     inst.ID,
			TemplateID:             inst.TemplateID,
			TemplateName:           inst.TemplateName,
			Status:                 inst.Status,
			TotalItems:             inst.TotalItems,
			CompletedItems:         inst.CompletedItems,
			RequiredItems:          inst.RequiredItems,
			CompletedRequiredItems: inst.CompletedRequiredItems,
			ProductionReady:        inst.ProductionReady,
			CompletedAt:            inst.CompletedAt,
		}
	}
	return out, nil
}

// ItemRow holds a checklist item for the instance detail view.
type ItemRow struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Required     bool       `json:"required"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CompletedBy  string     `json:"completed_by,omitempty"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	AssignedType string     `json:"assigned_type,omitempty"`
	LinkedTaskID string     `json:"linked_task_id,omitempty"`
}

// InstanceDetail holds an instance with its items.
type InstanceDetail struct {
	InstanceRow
	ProjectID string    `json:"project_id"`
	Items     []ItemRow `json:"items"`
}

// GetInstanceDetail returns one instance with all of its items.
func GetInstanceDetail(db *gorm.DB, id string) (*InstanceDetail, error) {
	inst, err := store.GetInstance(db, id)
	if err != nil {
		return nil, err
	}

	detail := &InstanceDetail{
		InstanceRow: InstanceRow{
			ID:                     inst.ID,
			TemplateID:             inst.TemplateID,
			TemplateName:           inst.TemplateName,
			Status:                 inst.Status,
			TotalItems:             inst.TotalItems,
			CompletedItems:         inst.CompletedItems,
			RequiredItems:          inst.RequiredItems,
			CompletedRequiredItems: inst.CompletedRequiredItems,
			ProductionReady:        inst.ProductionReady,
			CompletedAt:            inst.CompletedAt,
		},
		ProjectID: inst.ProjectID,
		Items:     make([]ItemRow, len(inst.Items)),
	}
	for i, item := range inst.Items {
		detail.Items[i] = ItemRow{
			ID:           item.ID,
			Title:        item.Title,
			Category:     item.Category,
			Required:     item.Required,
			Completed:    item.Completed,
			CompletedAt:  item.CompletedAt,
			CompletedBy:  item.CompletedBy,
			AssignedTo:   item.AssignedTo,
			AssignedType: item.AssignedType,
			LinkedTaskID: item.LinkedTaskID,
		}
	}
	return detail, nil
}

// EpicRow holds an epic plus live story/task progress counts.
type EpicRow struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	RequiredItems int    `json:"required_items"` // generation-time snapshot
	TotalItems    int    `json:"total_items"`    // generation-time snapshot
	StoryCount    int    `json:"story_count"`
	TaskCount     int    `json:"task_count"`
	DoneTasks     int    `json:"done_tasks"`
}

// EpicSummary returns a project's epics with story and task counts.
func EpicSummary(db *gorm.DB, projectID string) ([]EpicRow, error) {
	epics, err := store.EpicsForProject(db, projectID)
	if err != nil {
		return nil, err
	}

	rows := make([]EpicRow, len(epics))
	for i, e := range epics {
		rows[i] = EpicRow{
			ID:            e.ID,
			Title:         e.Title,
			Category:      e.Category,
			Priority:      e.Priority,
			Status:        e.Status,
			RequiredItems: e.RequiredItems,
			TotalItems:    e.TotalItems,
		}

		var storyCount, taskCount, doneTasks int64
		db.Model(&models.Story{}).Where("epic_id = ?", e.ID).Count(&storyCount)
		db.Model(&models.Task{}).Where("epic_id = ?", e.ID).Count(&taskCount)
		db.Model(&models.Task{}).Where("epic_id = ? AND status = ?", e.ID, models.StatusDone).Count(&doneTasks)
		rows[i].StoryCount = int(storyCount)
		rows[i].TaskCount = int(taskCount)
		rows[i].DoneTasks = int(doneTasks)
	}
	return rows, nil
}
