package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/catalog"
	"github.com/zulandar/greenlight/internal/checklist"
	"github.com/zulandar/greenlight/internal/config"
	"github.com/zulandar/greenlight/internal/models"
	"github.com/zulandar/greenlight/internal/notify"
	"github.com/zulandar/greenlight/internal/store"
	"gorm.io/gorm"
)

func newChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Checklist instance commands",
	}

	cmd.AddCommand(newChecklistAddCmd())
	cmd.AddCommand(newChecklistListCmd())
	cmd.AddCommand(newChecklistShowCmd())
	cmd.AddCommand(newChecklistCheckCmd(true))
	cmd.AddCommand(newChecklistCheckCmd(false))
	return cmd
}

// parseAssignments parses repeated --assign values of the form
// "templateItemID=assignee" or "templateItemID=team:assignee".
func parseAssignments(values []string) (map[string]checklist.Assignment, error) {
	assignments := make(map[string]checklist.Assignment)
	for _, v := range values {
		itemID, assignee, ok := strings.Cut(v, "=")
		if !ok || itemID == "" || assignee == "" {
			return nil, fmt.Errorf("invalid --assign %q, want item=assignee or item=team:assignee", v)
		}
		a := checklist.Assignment{AssignedTo: assignee, AssignedType: models.AssigneeUser}
		if rest, found := strings.CutPrefix(assignee, "team:"); found {
			a.AssignedTo = rest
			a.AssignedType = models.AssigneeTeam
		}
		assignments[itemID] = a
	}
	return assignments, nil
}

func newChecklistAddCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
		templateID string
		assigns    []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Instantiate a checklist template for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			templates, err := catalog.LoadDir(cfg.Catalog.Dir)
			if err != nil {
				return err
			}
			tmpl, ok := catalog.Find(templates, templateID)
			if !ok {
				return fmt.Errorf("template not found: %s", templateID)
			}

			assignments, err := parseAssignments(assigns)
			if err != nil {
				return err
			}

			inst, err := checklist.Instantiate(projectID, tmpl, assignments)
			if err != nil {
				return err
			}
			if err := store.SaveInstance(gormDB, inst); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created checklist %s from %s: %d items (%d required)\n",
				inst.ID, tmpl.ID, inst.TotalItems, inst.RequiredItems)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID (required)")
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "template ID (required)")
	cmd.Flags().StringArrayVarP(&assigns, "assign", "a", nil, "item assignment, item=assignee or item=team:assignee (repeatable)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("template")
	return cmd
}

func newChecklistListCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checklist instances for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			instances, err := store.InstancesForProject(gormDB, projectID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(instances) == 0 {
				fmt.Fprintln(out, "No checklists.")
				return nil
			}
			for _, inst := range instances {
				ready := ""
				if inst.ProductionReady {
					ready = "  production-ready"
				}
				fmt.Fprintf(out, "%-13s %-32s %-12s %d/%d items, %d/%d required%s\n",
					inst.ID, truncate(inst.TemplateName, 32), inst.Status,
					inst.CompletedItems, inst.TotalItems,
					inst.CompletedRequiredItems, inst.RequiredItems, ready)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newChecklistShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <instance-id>",
		Short: "Show a checklist instance and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			inst, err := store.GetInstance(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s) on project %s\n", inst.TemplateName, inst.ID, inst.ProjectID)
			fmt.Fprintf(out, "Status: %s  Items: %d/%d  Required: %d/%d  Production-ready: %v\n\n",
				inst.Status, inst.CompletedItems, inst.TotalItems,
				inst.CompletedRequiredItems, inst.RequiredItems, inst.ProductionReady)

			for _, item := range inst.Items {
				line := fmt.Sprintf("  %s %s %-13s %-16s %s",
					checkbox(item.Completed), requiredMark(item.Required),
					item.ID, item.Category, item.Title)
				if item.AssignedTo != "" {
					line += fmt.Sprintf("  (%s)", item.AssignedTo)
				}
				if item.LinkedTaskID != "" {
					line += "  -> " + item.LinkedTaskID
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	return cmd
}

// newChecklistCheckCmd builds both "check" and "uncheck".
func newChecklistCheckCmd(completed bool) *cobra.Command {
	var (
		configPath string
		by         string
	)

	use, short := "check <item-id>", "Mark a checklist item complete and sync its task"
	if !completed {
		use, short = "uncheck <item-id>", "Un-check a checklist item (linked task keeps its status)"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}

			actor := models.System()
			if by != "" {
				actor = models.User(by)
			}

			before, err := store.InstanceForItem(gormDB, args[0])
			if err != nil {
				return err
			}
			res, err := store.ToggleItem(gormDB, args[0], completed, actor)
			if err != nil {
				return err
			}
			notifyTransitions(cmd, cfg, gormDB, before, res)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", checkbox(res.Item.Completed), res.Item.Title)
			if res.Task != nil {
				fmt.Fprintf(out, "Linked task %s status: %s\n", res.Task.ID, res.Task.Status)
			}
			fmt.Fprintf(out, "Checklist %s: %d/%d items, production-ready: %v\n",
				res.Instance.ID, res.Instance.CompletedItems, res.Instance.TotalItems,
				res.Instance.ProductionReady)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVar(&by, "by", "", "user performing the change (defaults to system)")
	return cmd
}

// notifyTransitions sends readiness events for transitions this change
// caused. Best-effort: notification problems never fail the command.
func notifyTransitions(cmd *cobra.Command, cfg *config.Config, gormDB *gorm.DB, before *models.ChecklistInstance, res *store.SyncResult) {
	notifier, err := buildNotifier(cfg.Notify)
	if err != nil || !notifier.Enabled() {
		return
	}
	defer notifier.Close()

	project, err := store.GetProject(gormDB, res.Instance.ProjectID)
	if err != nil {
		return
	}
	if res.BecameProductionReady(*before) {
		notifier.Notify(cmd.Context(), notify.ProductionReadyEvent(*project, res.Instance))
	}
	if res.Instance.Status == models.InstanceCompleted && before.Status != models.InstanceCompleted {
		notifier.Notify(cmd.Context(), notify.InstanceCompletedEvent(*project, res.Instance))
	}
}
