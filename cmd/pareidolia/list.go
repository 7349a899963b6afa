package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/pareidolia/internal/generate"
	"github.com/gerunddev/pareidolia/internal/naming"
	"github.com/gerunddev/pareidolia/internal/store"
	"github.com/gerunddev/pareidolia/internal/tools"
)

func listCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:       "list <personas|actions|examples|variants|tools|conventions>",
		Short:     "List template store contents and available tools",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"personas", "actions", "examples", "variants", "tools", "conventions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "tools":
				return listTools(cmd)
			case "conventions":
				return listConventions(cmd)
			}

			cfg, err := loadConfig(configPath, "", "", "")
			if err != nil {
				return err
			}
			fsys, err := generate.OpenRoot(cfg.Root)
			if err != nil {
				return err
			}
			s := store.New(fsys, "")

			var names []string
			switch args[0] {
			case "personas":
				names, err = s.ListPersonas()
			case "actions":
				names, err = s.ListActions()
			case "examples":
				names, err = s.ListExamples()
			case "variants":
				names, err = s.ListVariants()
			default:
				return fmt.Errorf("unknown listing %q", args[0])
			}
			if err != nil {
				return err
			}

			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s found\n", args[0])
				return nil
			}
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file (default: pareidolia.toml)")

	return cmd
}

func listTools(cmd *cobra.Command) error {
	for _, t := range tools.DefaultRegistry() {
		status := errorStyle.Render("not installed")
		if t.IsAvailable() {
			status = successStyle.Render("available")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %-10s %s\n", t.Name(), t.Command(), status)
	}
	return nil
}

func listConventions(cmd *cobra.Command) error {
	for _, c := range naming.List() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", c.Name(), c.Description())
	}
	return nil
}
