// Package hierarchy derives the Epic -> Story -> Task work-item tree
// from checklist instances and maintains the item<->task link. The
// generator is pure: prior state comes in as explicit maps and new
// records go out in the Result for the store to persist.
package hierarchy

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zulandar/greenlight/internal/models"
)

// AutoGeneratedTag marks work items produced by the generator.
const AutoGeneratedTag = "auto-generated"

// OrphanCategoryError reports a checklist item whose category had no
// epic at story-derivation time. Orphans are collected as warnings and
// never abort generation.
type OrphanCategoryError struct {
	ItemID   string
	Category string
}

func (e *OrphanCategoryError) Error() string {
	return fmt.Sprintf("hierarchy: item %s: no epic for category %q", e.ItemID, e.Category)
}

// Prior carries the already-persisted generation state for a project,
// making re-generation an additive merge: existing categories keep
// their epic and already-generated items are skipped.
type Prior struct {
	EpicsByCategory  map[string]string // category -> epic ID
	GeneratedItemIDs map[string]bool   // checklist item IDs that already have a story
}

// Result holds everything one generation pass produced. Epics, Stories,
// and Tasks contain only new records; EpicsByCategory is the full index
// including prior entries. Links maps each checklist item ID to its
// primary task ID (the first task generated for the item), ready for
// the link operation.
type Result struct {
	Epics   []models.Epic
	Stories []models.Story
	Tasks   []models.Task

	EpicsByCategory map[string]string
	Links           map[string]string
	Warnings        []*OrphanCategoryError
}

// itemRef pairs a checklist item with its owning instance.
type itemRef struct {
	item       models.ChecklistItem
	instanceID string
}

// Generate derives epics, stories, and tasks for a project from its
// checklist instances.
//
// One epic is produced per distinct category not already present in
// prior, with required/total counts snapshotted at generation time.
// Every not-yet-generated item yields exactly one story (required items
// get high priority, others medium) and zero or more tasks from the
// category breakdown table, inheriting the story's priority and
// assignee. Items whose category has no epic are skipped and reported
// as warnings.
func Generate(projectID string, instances []models.ChecklistInstance, prior Prior) (*Result, error) {
	res := &Result{
		EpicsByCategory: make(map[string]string),
		Links:           make(map[string]string),
	}
	for cat, id := range prior.EpicsByCategory {
		res.EpicsByCategory[cat] = id
	}

	// Flatten items across instances and group counts by category.
	var refs []itemRef
	type catCount struct{ total, required int }
	counts := make(map[string]catCount)
	for _, inst := range instances {
		for _, item := range inst.Items {
			refs = append(refs, itemRef{item: item, instanceID: inst.ID})
			c := counts[item.Category]
			c.total++
			if item.Required {
				c.required++
			}
			counts[item.Category] = c
		}
	}

	// One epic per distinct category, created in sorted order for
	// deterministic output. Categories with a prior epic are kept as-is.
	categories := make([]string, 0, len(counts))
	for cat := range counts {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		// No epic for a blank category; its items surface as warnings.
		if cat == "" {
			continue
		}
		if _, exists := res.EpicsByCategory[cat]; exists {
			continue
		}
		epic, err := buildEpic(projectID, cat, counts[cat].required, counts[cat].total)
		if err != nil {
			return nil, err
		}
		res.Epics = append(res.Epics, epic)
		res.EpicsByCategory[cat] = epic.ID
	}

	// One story per item, plus breakdown tasks.
	for _, ref := range refs {
		if prior.GeneratedItemIDs[ref.item.ID] {
			continue
		}
		epicID, ok := res.EpicsByCategory[ref.item.Category]
		if !ok {
			res.Warnings = append(res.Warnings, &OrphanCategoryError{
				ItemID:   ref.item.ID,
				Category: ref.item.Category,
			})
			continue
		}

		story, err := buildStory(projectID, epicID, ref)
		if err != nil {
			return nil, err
		}
		res.Stories = append(res.Stories, story)

		for _, tt := range taskTemplatesFor(ref.item.Category, ref.item.Required) {
			task, err := buildTask(projectID, story, tt)
			if err != nil {
				return nil, err
			}
			res.Tasks = append(res.Tasks, task)
			if _, linked := res.Links[ref.item.ID]; !linked {
				res.Links[ref.item.ID] = task.ID
			}
		}
	}

	return res, nil
}

// buildEpic creates the epic record for a category with counts
// snapshotted from the current item group.
func buildEpic(projectID, category string, required, total int) (models.Epic, error) {
	id, err := models.NewID(models.PrefixEpic)
	if err != nil {
		return models.Epic{}, err
	}
	info := infoFor(category)
	tags, err := marshalTags(category)
	if err != nil {
		return models.Epic{}, err
	}
	return models.Epic{
		ID:            id,
		ProjectID:     projectID,
		Title:         info.Title,
		Description:   info.Description,
		Priority:      info.Priority,
		Status:        models.StatusBacklog,
		Category:      category,
		Tags:          tags,
		RequiredItems: required,
		TotalItems:    total,
	}, nil
}

// buildStory creates the story for a checklist item under its epic.
func buildStory(projectID, epicID string, ref itemRef) (models.Story, error) {
	id, err := models.NewID(models.PrefixStory)
	if err != nil {
		return models.Story{}, err
	}
	priority := models.PriorityMedium
	if ref.item.Required {
		priority = models.PriorityHigh
	}
	tags, err := marshalTags(ref.item.Category)
	if err != nil {
		return models.Story{}, err
	}
	return models.Story{
		ID:                  id,
		ProjectID:           projectID,
		EpicID:              epicID,
		Title:               ref.item.Title,
		Description:         ref.item.Description,
		Priority:            priority,
		Status:              models.StatusBacklog,
		Tags:                tags,
		AssignedTo:          ref.item.AssignedTo,
		AssignedType:        ref.item.AssignedType,
		ChecklistItemID:     ref.item.ID,
		ChecklistInstanceID: ref.instanceID,
	}, nil
}

// buildTask instantiates one breakdown entry under a story, inheriting
// the story's priority, assignee, and checklist references.
func buildTask(projectID string, story models.Story, tt TaskTemplate) (models.Task, error) {
	id, err := models.NewID(models.PrefixTask)
	if err != nil {
		return models.Task{}, err
	}
	return models.Task{
		ID:                  id,
		ProjectID:           projectID,
		StoryID:             story.ID,
		EpicID:              story.EpicID,
		Title:               tt.Title,
		Description:         tt.Description,
		Type:                tt.Type,
		Status:              models.StatusTodo,
		Priority:            story.Priority,
		AssignedTo:          story.AssignedTo,
		AssignedType:        story.AssignedType,
		EstimatedHours:      tt.EstimatedHours,
		ChecklistItemID:     story.ChecklistItemID,
		ChecklistInstanceID: story.ChecklistInstanceID,
	}, nil
}

// marshalTags builds the JSON tag array for a generated work item.
func marshalTags(category string) (string, error) {
	data, err := json.Marshal([]string{category, AutoGeneratedTag})
	if err != nil {
		return "", fmt.Errorf("hierarchy: marshal tags: %w", err)
	}
	return string(data), nil
}
