// Package checklist materializes catalog templates into project
// checklist instances and recomputes their completion aggregates. All
// functions are pure transformations; persistence belongs to the store.
package checklist

import (
	"fmt"

	"github.com/zulandar/greenlight/internal/catalog"
	"github.com/zulandar/greenlight/internal/models"
)

// InvalidTemplateError indicates a template that cannot be
// instantiated, e.g. one with zero items.
type InvalidTemplateError struct {
	TemplateID string
	Reason     string
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("checklist: invalid template %q: %s", e.TemplateID, e.Reason)
}

// Assignment maps a template item to an assignee at instantiation time.
type Assignment struct {
	AssignedTo   string
	AssignedType string // models.AssigneeUser or models.AssigneeTeam
}

// Instantiate builds a ChecklistInstance for a project from a template
// and a per-item assignment map. Assignment keys are template item IDs
// and need not cover every item; unassigned items carry no assignee.
//
// Every produced item gets a freshly generated ID — template item IDs
// are never reused — with Completed false and no completion timestamps.
// The caller persists the returned instance.
func Instantiate(projectID string, tmpl catalog.Template, assignments map[string]Assignment) (*models.ChecklistInstance, error) {
	if len(tmpl.Items) == 0 {
		return nil, &InvalidTemplateError{TemplateID: tmpl.ID, Reason: "template has no items"}
	}

	instID, err := models.NewID(models.PrefixInstance)
	if err != nil {
		return nil, err
	}

	inst := &models.ChecklistInstance{
		ID:            instID,
		ProjectID:     projectID,
		TemplateID:    tmpl.ID,
		TemplateName:  tmpl.Name,
		Status:        models.InstanceNotStarted,
		TotalItems:    len(tmpl.Items),
		RequiredItems: tmpl.RequiredCount(),
	}

	for _, ti := range tmpl.Items {
		itemID, err := models.NewID(models.PrefixItem)
		if err != nil {
			return nil, err
		}
		item := models.ChecklistItem{
			ID:          itemID,
			InstanceID:  instID,
			Title:       ti.Title,
			Description: ti.Description,
			Category:    ti.Category,
			Required:    ti.Required,
		}
		if a, ok := assignments[ti.ID]; ok {
			item.AssignedTo = a.AssignedTo
			item.AssignedType = a.AssignedType
			if item.AssignedType == "" {
				item.AssignedType = models.AssigneeUser
			}
		}
		inst.Items = append(inst.Items, item)
	}

	return inst, nil
}
