package catalog

// Checklist item categories used by the built-in templates. Custom
// template files may introduce new categories; the hierarchy generator
// still produces an epic and stories for them, just without entries in
// the task breakdown table.
const (
	CategorySetup         = "setup"
	CategorySecurity      = "security"
	CategoryTesting       = "testing"
	CategoryDeployment    = "deployment"
	CategoryMonitoring    = "monitoring"
	CategoryDocumentation = "documentation"
	CategoryCompliance    = "compliance"
	CategoryTraining      = "training"
)

// Builtin returns the built-in template set. The slice is rebuilt on
// every call so callers can't mutate the definitions.
func Builtin() []Template {
	return []Template{
		{
			ID:           "web-app-launch",
			Name:         "Web App Production Launch",
			Description:  "Production-readiness checklist for customer-facing web applications.",
			ProjectTypes: []string{"web_app"},
			Items: []Item{
				{ID: "repo-setup", Title: "Repository and CI pipeline configured", Category: CategorySetup, Required: true},
				{ID: "env-config", Title: "Staging and production environments provisioned", Category: CategorySetup, Required: true},
				{ID: "auth-review", Title: "Authentication flows reviewed", Category: CategorySecurity, Required: true},
				{ID: "secrets-audit", Title: "Secrets moved out of source control", Description: "All credentials in the secret manager, none in config files.", Category: CategorySecurity, Required: true},
				{ID: "pen-test", Title: "Penetration test scheduled", Category: CategorySecurity, Required: false},
				{ID: "unit-coverage", Title: "Unit test coverage meets team threshold", Category: CategoryTesting, Required: true},
				{ID: "load-test", Title: "Load test against production-like data", Category: CategoryTesting, Required: false},
				{ID: "deploy-runbook", Title: "Deployment runbook written", Category: CategoryDeployment, Required: true},
				{ID: "rollback-plan", Title: "Rollback procedure tested", Category: CategoryDeployment, Required: true},
				{ID: "alerting", Title: "Alerting rules and on-call rotation configured", Category: CategoryMonitoring, Required: true},
				{ID: "dashboards", Title: "Service dashboards created", Category: CategoryMonitoring, Required: false},
				{ID: "api-docs", Title: "Public API documentation published", Category: CategoryDocumentation, Required: false},
			},
		},
		{
			ID:          "client-onboarding",
			Name:        "Client Onboarding",
			Description: "Standard intake checklist for new client engagements.",
			Items: []Item{
				{ID: "contract-signed", Title: "Contract signed and filed", Category: CategoryCompliance, Required: true},
				{ID: "billing-setup", Title: "Billing account and invoice schedule configured", Category: CategorySetup, Required: true},
				{ID: "data-agreement", Title: "Data processing agreement executed", Category: CategoryCompliance, Required: true},
				{ID: "kickoff-scheduled", Title: "Kickoff meeting scheduled", Category: CategorySetup, Required: false},
				{ID: "access-granted", Title: "Client granted portal access", Category: CategorySecurity, Required: true},
			},
		},
		{
			ID:          "employee-onboarding",
			Name:        "Employee Onboarding",
			Description: "HR checklist for new hires.",
			Items: []Item{
				{ID: "accounts-created", Title: "Email and tooling accounts created", Category: CategorySetup, Required: true},
				{ID: "security-training", Title: "Security awareness training completed", Category: CategoryTraining, Required: true},
				{ID: "policy-ack", Title: "Company policies acknowledged", Category: CategoryCompliance, Required: true},
				{ID: "equipment-issued", Title: "Laptop and equipment issued", Category: CategorySetup, Required: true},
				{ID: "team-intro", Title: "Introductions with the team scheduled", Category: CategoryTraining, Required: false},
			},
		},
	}
}
