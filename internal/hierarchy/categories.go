package hierarchy

import "github.com/zulandar/greenlight/internal/catalog"

// CategoryInfo supplies the epic title, description, and priority for a
// checklist category.
type CategoryInfo struct {
	Title       string
	Description string
	Priority    string
}

// TaskTemplate is one entry in the per-category task breakdown table.
type TaskTemplate struct {
	Title          string
	Description    string
	Type           string
	EstimatedHours int
}

// categoryInfo maps each known category to its epic text. Categories
// absent from this table (e.g. from custom template files) fall back to
// a generated title so the epic is still produced.
var categoryInfo = map[string]CategoryInfo{
	catalog.CategorySetup: {
		Title:       "Project Setup & Environment",
		Description: "Repository, environment, and account groundwork for the project.",
		Priority:    "high",
	},
	catalog.CategorySecurity: {
		Title:       "Security Hardening",
		Description: "Authentication, secrets handling, and security review work.",
		Priority:    "high",
	},
	catalog.CategoryTesting: {
		Title:       "Quality & Testing",
		Description: "Automated test coverage and pre-launch verification.",
		Priority:    "medium",
	},
	catalog.CategoryDeployment: {
		Title:       "Deployment Readiness",
		Description: "Release process, runbooks, and rollback preparation.",
		Priority:    "high",
	},
	catalog.CategoryMonitoring: {
		Title:       "Monitoring & Alerting",
		Description: "Observability, dashboards, and on-call configuration.",
		Priority:    "medium",
	},
	catalog.CategoryDocumentation: {
		Title:       "Documentation",
		Description: "User-facing and operational documentation.",
		Priority:    "low",
	},
	catalog.CategoryCompliance: {
		Title:       "Compliance & Contracts",
		Description: "Legal agreements, policy acknowledgements, and audit trail.",
		Priority:    "high",
	},
	catalog.CategoryTraining: {
		Title:       "Training & Enablement",
		Description: "Onboarding sessions and skill ramp-up.",
		Priority:    "low",
	},
}

// taskBreakdown maps categories to the implementation tasks generated
// under each story. Categories without an entry still get a story —
// not every category needs implementation tasks.
var taskBreakdown = map[string][]TaskTemplate{
	catalog.CategorySetup: {
		{Title: "Provision resources", Description: "Create the accounts, services, or infrastructure this item needs.", Type: "chore", EstimatedHours: 4},
		{Title: "Verify configuration", Description: "Confirm the provisioned setup works end to end.", Type: "chore", EstimatedHours: 2},
	},
	catalog.CategorySecurity: {
		{Title: "Implement control", Description: "Apply the security control described by the checklist item.", Type: "task", EstimatedHours: 6},
		{Title: "Security review", Description: "Have a second engineer review the control.", Type: "review", EstimatedHours: 2},
	},
	catalog.CategoryTesting: {
		{Title: "Write tests", Description: "Add the automated coverage this item calls for.", Type: "task", EstimatedHours: 8},
	},
	catalog.CategoryDeployment: {
		{Title: "Prepare release artifacts", Description: "Scripts, manifests, and runbook updates for the release step.", Type: "chore", EstimatedHours: 4},
		{Title: "Dry-run in staging", Description: "Exercise the procedure against staging before launch.", Type: "task", EstimatedHours: 3},
	},
	catalog.CategoryMonitoring: {
		{Title: "Configure instrumentation", Description: "Wire up the metrics, alerts, or dashboards for this item.", Type: "task", EstimatedHours: 4},
	},
	catalog.CategoryCompliance: {
		{Title: "Collect sign-off", Description: "Obtain and file the approval or document this item requires.", Type: "chore", EstimatedHours: 2},
	},
}

// signOffTask is appended for required items in any category that has a
// breakdown entry, so required work always ends with an explicit
// verification step.
var signOffTask = TaskTemplate{
	Title:          "Final sign-off",
	Description:    "Confirm the checklist item is fully satisfied and mark it complete.",
	Type:           "review",
	EstimatedHours: 1,
}

// infoFor returns the epic text for a category, synthesizing a fallback
// for categories outside the known set.
func infoFor(category string) CategoryInfo {
	if info, ok := categoryInfo[category]; ok {
		return info
	}
	return CategoryInfo{
		Title:       category + " checklist work",
		Description: "Work items generated from the " + category + " checklist category.",
		Priority:    "medium",
	}
}

// taskTemplatesFor returns the breakdown entries for a category,
// including the sign-off step for required items. A nil return means
// the story gets no tasks.
func taskTemplatesFor(category string, required bool) []TaskTemplate {
	base, ok := taskBreakdown[category]
	if !ok {
		return nil
	}
	templates := make([]TaskTemplate, len(base))
	copy(templates, base)
	if required {
		templates = append(templates, signOffTask)
	}
	return templates
}
