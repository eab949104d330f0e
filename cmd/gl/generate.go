package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/hierarchy"
	"github.com/zulandar/greenlight/internal/notify"
	"github.com/zulandar/greenlight/internal/store"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate epics, stories, and tasks from a project's checklists",
		Long: "Derives the work item hierarchy from every checklist instance on the\n" +
			"project. Running it again only adds items for checklists created since\n" +
			"the last run; existing epics and stories are left alone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			if _, err := store.GetProject(gormDB, projectID); err != nil {
				return err
			}

			instances, err := store.InstancesForProject(gormDB, projectID)
			if err != nil {
				return err
			}
			if len(instances) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No checklists on this project; nothing to generate.")
				return nil
			}

			prior, err := store.PriorGeneration(gormDB, projectID)
			if err != nil {
				return err
			}

			res, err := hierarchy.Generate(projectID, instances, prior)
			if err != nil {
				return err
			}
			if err := store.SaveGeneration(gormDB, res); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d epics, %d stories, %d tasks\n",
				len(res.Epics), len(res.Stories), len(res.Tasks))
			for _, e := range res.Epics {
				fmt.Fprintf(out, "  epic %s  %-16s %s\n", e.ID, e.Category, e.Title)
			}
			for _, w := range res.Warnings {
				fmt.Fprintf(out, "warning: %v\n", w)
			}
			if len(res.Warnings) > 0 {
				if notifier, nerr := buildNotifier(cfg.Notify); nerr == nil && notifier.Enabled() {
					notifier.Notify(cmd.Context(), notify.OrphanWarningEvent(projectID, res.Warnings))
					notifier.Close()
				}
			}
			if len(res.Epics)+len(res.Stories)+len(res.Tasks) == 0 {
				fmt.Fprintln(out, "Everything is already generated; nothing new.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}
