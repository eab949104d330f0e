package models

import "time"

// Checklist instance statuses.
const (
	InstanceNotStarted = "not_started"
	InstanceInProgress = "in_progress"
	InstanceCompleted  = "completed"
)

// Assignee kinds for checklist items.
const (
	AssigneeUser = "user"
	AssigneeTeam = "team"
)

// ChecklistInstance is a project-specific materialization of a checklist
// template. The aggregate counters are maintained by the progress
// recompute in internal/checklist; never write them directly.
type ChecklistInstance struct {
	ID           string `gorm:"primaryKey;size:32"`
	ProjectID    string `gorm:"size:32;index;not null"`
	TemplateID   string `gorm:"size:64;index"`
	TemplateName string `gorm:"size:128"`
	Status       string `gorm:"size:16;default:not_started;index"`

	TotalItems             int
	CompletedItems         int
	RequiredItems          int
	CompletedRequiredItems int
	ProductionReady        bool `gorm:"default:false"`

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []ChecklistItem `gorm:"foreignKey:InstanceID"`
}

// ChecklistItem is a single entry within an instance. Item IDs are
// generated fresh at instantiation and never reuse template item IDs.
//
// Invariant: Completed == true implies CompletedAt is set, and
// un-completing clears both CompletedAt and CompletedBy. LinkedTaskID
// is the back half of the item<->task link; it is written only by the
// link operation in internal/hierarchy so the two references stay
// mutual.
type ChecklistItem struct {
	ID          string `gorm:"primaryKey;size:32"`
	InstanceID  string `gorm:"size:32;index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:32;index"`
	Required    bool   `gorm:"default:false"`

	AssignedTo   string `gorm:"size:64"`
	AssignedType string `gorm:"size:8"`

	Completed    bool `gorm:"default:false;index"`
	CompletedAt  *time.Time
	CompletedBy  string `gorm:"size:64"`
	LinkedTaskID string `gorm:"size:32;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
