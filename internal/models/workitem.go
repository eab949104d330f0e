package models

import "time"

// Work item priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Work item statuses shared by epics, stories, and tasks.
const (
	StatusBacklog    = "backlog"
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusReview     = "review"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// Epic is the top level of the generated hierarchy: one epic per
// distinct checklist category on a project. RequiredItems/TotalItems
// are snapshots taken at generation time, not live counts.
type Epic struct {
	ID          string `gorm:"primaryKey;size:32"`
	ProjectID   string `gorm:"size:32;index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Priority    string `gorm:"size:8;default:medium"`
	Status      string `gorm:"size:16;default:backlog;index"`
	Category    string `gorm:"size:32;index"`
	Tags        string `gorm:"type:text"` // JSON array

	RequiredItems int
	TotalItems    int

	CreatedAt time.Time
	UpdatedAt time.Time

	Stories []Story `gorm:"foreignKey:EpicID"`
}

// Story is the middle level: exactly one story per checklist item,
// filed under the epic for the item's category. ChecklistItemID and
// ChecklistInstanceID are the forward half of the item<->task link.
type Story struct {
	ID          string `gorm:"primaryKey;size:32"`
	ProjectID   string `gorm:"size:32;index;not null"`
	EpicID      string `gorm:"size:32;index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Priority    string `gorm:"size:8;default:medium"`
	Status      string `gorm:"size:16;default:backlog;index"`
	Tags        string `gorm:"type:text"` // JSON array

	AssignedTo   string `gorm:"size:64"`
	AssignedType string `gorm:"size:8"`

	ChecklistItemID     string `gorm:"size:32;index"`
	ChecklistInstanceID string `gorm:"size:32;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Tasks []Task `gorm:"foreignKey:StoryID"`
}

// Task is the leaf level, derived from the per-category breakdown
// table. The checklist references are denormalized from the story so a
// task can reach its originating item without a story lookup; the link
// operation writes both copies together.
type Task struct {
	ID          string `gorm:"primaryKey;size:32"`
	ProjectID   string `gorm:"size:32;index;not null"`
	StoryID     string `gorm:"size:32;index;not null"`
	EpicID      string `gorm:"size:32;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Type        string `gorm:"size:16;default:task"`
	Status      string `gorm:"size:16;default:todo;index"`
	Priority    string `gorm:"size:8;default:medium"`

	AssignedTo     string `gorm:"size:64"`
	AssignedType   string `gorm:"size:8"`
	EstimatedHours int

	ChecklistItemID     string `gorm:"size:32;index"`
	ChecklistInstanceID string `gorm:"size:32;index"`

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
