package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/pareidolia/internal/scaffold"
)

func initCmd() *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter project",
		Long: `Init writes a pareidolia.toml, a template store with one persona, one
action, one example, and two variant instruction templates, plus an empty
output directory.

Example:
  pareidolia init --dir my-prompts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scaffold.Init(dir, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized pareidolia project in %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to initialize")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project")

	return cmd
}
