package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/store"
)

func newStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status <project-id>",
		Short: "Show a project's readiness rollup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			project, err := store.GetProject(gormDB, args[0])
			if err != nil {
				return err
			}

			pc, err := store.ProjectReadiness(gormDB, project.ID)
			if err != nil {
				return err
			}
			instances, err := store.InstancesForProject(gormDB, project.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, type %s)\n\n", project.Name, project.ID, project.Type)
			fmt.Fprintf(out, "Overall   %s\n", progressBar(pc.OverallProgress, 20))
			fmt.Fprintf(out, "Items     %d/%d\n", pc.CompletedItems, pc.TotalItems)
			fmt.Fprintf(out, "Checklists %d (%d completed)\n", pc.InstanceCount, pc.CompletedInstances)
			fmt.Fprintf(out, "Production-ready: %v\n", pc.AllProductionReady)

			if len(instances) > 0 {
				fmt.Fprintln(out)
				for _, inst := range instances {
					ready := " "
					if inst.ProductionReady {
						ready = "R"
					}
					fmt.Fprintf(out, "  %s %-13s %-32s %d/%d items, %d/%d required\n",
						ready, inst.ID, truncate(inst.TemplateName, 32),
						inst.CompletedItems, inst.TotalItems,
						inst.CompletedRequiredItems, inst.RequiredItems)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	return cmd
}
