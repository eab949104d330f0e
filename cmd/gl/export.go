package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/export"
	"github.com/zulandar/greenlight/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export work items to external trackers",
	}

	cmd.AddCommand(newExportGitHubCmd())
	return cmd
}

func newExportGitHubCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
	)

	cmd := &cobra.Command{
		Use:   "github",
		Short: "Export a project's open tasks as GitHub issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			if cfg.GitHub.Token == "" {
				return fmt.Errorf("github.token is not configured")
			}

			tasks, err := store.TasksForProject(gormDB, projectID)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc := export.NewIssuesService(ctx, cfg.GitHub.Token)
			created, err := export.Tasks(ctx, svc, cfg.GitHub.Owner, cfg.GitHub.Repo, tasks)

			out := cmd.OutOrStdout()
			for _, c := range created {
				fmt.Fprintf(out, "%-13s -> #%d %s\n", c.TaskID, c.IssueNumber, c.URL)
			}
			if err != nil {
				return fmt.Errorf("exported %d issues before failure: %w", len(created), err)
			}
			fmt.Fprintf(out, "Exported %d issues to %s/%s\n", len(created), cfg.GitHub.Owner, cfg.GitHub.Repo)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "project ID (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}
