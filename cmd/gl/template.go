package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/greenlight/internal/catalog"
	"github.com/zulandar/greenlight/internal/config"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Checklist template catalog commands",
	}

	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateShowCmd())
	return cmd
}

// loadCatalog loads the built-in templates plus any from the configured
// catalog directory.
func loadCatalog(configPath string) ([]catalog.Template, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return catalog.LoadDir(cfg.Catalog.Dir)
}

func newTemplateListCmd() *cobra.Command {
	var (
		configPath  string
		projectType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available checklist templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := loadCatalog(configPath)
			if err != nil {
				return err
			}
			if projectType != "" {
				templates = catalog.ForProjectType(templates, projectType)
			}

			out := cmd.OutOrStdout()
			for _, t := range templates {
				fmt.Fprintf(out, "%-22s %-32s %d items (%d required)\n",
					t.ID, truncate(t.Name, 32), len(t.Items), t.RequiredCount())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	cmd.Flags().StringVarP(&projectType, "type", "t", "", "filter by project type")
	return cmd
}

func newTemplateShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := loadCatalog(configPath)
			if err != nil {
				return err
			}
			t, ok := catalog.Find(templates, args[0])
			if !ok {
				return fmt.Errorf("template not found: %s", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", t.Name, t.ID)
			if t.Description != "" {
				fmt.Fprintln(out, t.Description)
			}
			fmt.Fprintln(out)
			for _, item := range t.Items {
				fmt.Fprintf(out, "  %s %-16s %-20s %s\n",
					requiredMark(item.Required), item.ID, item.Category, item.Title)
			}
			fmt.Fprintf(out, "\n%d items, %d required (*). Categories: %v\n",
				len(t.Items), t.RequiredCount(), t.Categories())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "greenlight.yaml", "path to Greenlight config file")
	return cmd
}
