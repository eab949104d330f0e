package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/models"
	"github.com/zulandar/greenlight/internal/store"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work item task commands",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			tasks, err := store.TasksForProject(gormDB, projectID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			shown := 0
			for _, t := range tasks {
				if status != "" && t.Status != status {
					continue
				}
				shown++
				line := fmt.Sprintf("%-13s %-12s %-8s %s",
					t.ID, t.Status, t.Priority, truncate(t.Title, 48))
				if t.AssignedTo != "" {
					line += fmt.Sprintf("  (%s)", t.AssignedTo)
				}
				if t.ChecklistItemID != "" {
					line += "  <- " + t.ChecklistItemID
				}
				fmt.Fprintln(out, line)
			}
			if shown == 0 {
				fmt.Fprintln(out, "No tasks.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID (required)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		configPath string
		status     string
		by         string
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task's status and sync its checklist item",
		Long: "Sets the task's status. Moving the linked task to \"done\" checks off\n" +
			"its checklist item; moving it away from \"done\" un-checks it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one task ID")
			}
			if !store.ValidTaskStatuses[status] {
				return fmt.Errorf("invalid status %q, want one of: %s", status, strings.Join(statusNames(), ", "))
			}

			_, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}

			actor := models.System()
			if by != "" {
				actor = models.User(by)
			}

			res, err := store.UpdateTaskStatus(gormDB, args[0], status, actor)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Task %s -> %s\n", res.Task.ID, res.Task.Status)
			if res.Item.ID != "" {
				fmt.Fprintf(out, "Checklist item %s %s\n", res.Item.ID, checkbox(res.Item.Completed))
				fmt.Fprintf(out, "Checklist %s: %d/%d items, production-ready: %v\n",
					res.Instance.ID, res.Instance.CompletedItems, res.Instance.TotalItems,
					res.Instance.ProductionReady)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status (required)")
	cmd.Flags().StringVar(&by, "by", "", "user performing the change (defaults to system)")
	cmd.MarkFlagRequired("status")
	return cmd
}

func statusNames() []string {
	names := make([]string, 0, len(store.ValidTaskStatuses))
	for s := range store.ValidTaskStatuses {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}
