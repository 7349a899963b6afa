// Package main is the entry point for the pareidolia CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gerunddev/pareidolia/internal/config"
	"github.com/gerunddev/pareidolia/internal/log"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "pareidolia",
		Short: "Generate collections of AI prompt templates for persona-based agents",
		Long: `Pareidolia composes prompt documents from reusable personas, action
templates, and examples. Configured variants of each prompt are produced
either from pre-authored templates or by transforming the base prompt with an
external AI CLI tool, and AI-produced variants can be promoted into durable
templates so later runs are deterministic and tool-free.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(generateCmd())
	cmd.AddCommand(saveCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig reads the configuration file (or defaults) and applies CLI
// overrides.
func loadConfig(path, tool, library, outputDir string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	cfg = cfg.MergeOverrides(tool, library, outputDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
