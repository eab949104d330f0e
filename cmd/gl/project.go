package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/store"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
	}

	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectListCmd())
	return cmd
}

func newProjectAddCmd() *cobra.Command {
	var (
		configPath  string
		projectType string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			project, err := store.CreateProject(gormDB, args[0], projectType)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s, type %s)\n", project.ID, project.Name, project.Type)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&projectType, "type", "t", "web_app", "project type (web_app, mobile_app, internal_tool)")
	return cmd
}

func newProjectListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects with readiness rollups",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			projects, err := store.ListProjects(gormDB)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects.")
				return nil
			}

			nameWidth := termWidth() - 60
			if nameWidth < 20 {
				nameWidth = 20
			}
			for _, p := range projects {
				pc, err := store.ProjectReadiness(gormDB, p.ID)
				if err != nil {
					return err
				}
				ready := " "
				if pc.AllProductionReady && pc.InstanceCount > 0 {
					ready = "R"
				}
				fmt.Fprintf(out, "%-13s %s %-*s %s (%d/%d items, %d checklists)\n",
					p.ID, ready, nameWidth, truncate(p.Name, nameWidth),
					progressBar(pc.OverallProgress, 10),
					pc.CompletedItems, pc.TotalItems, pc.InstanceCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	return cmd
}
