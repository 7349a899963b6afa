package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gerunddev/pareidolia/internal/cache"
	"github.com/gerunddev/pareidolia/internal/generate"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func generateCmd() *cobra.Command {
	var (
		configPath string
		persona    string
		action     string
		examples   []string
		tool       string
		library    string
		outputDir  string
		timeout    time.Duration
		save       bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate prompt files from personas, actions, and examples",
		Long: `Generate renders every action in the template store (or one action with
--action) against a persona and writes the results to the output directory.
Variants configured in pareidolia.toml are produced alongside their base
prompts. With --save, AI-produced variants are promoted to durable templates
in the same run.

Example:
  pareidolia generate --persona researcher --examples report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, tool, library, outputDir)
			if err != nil {
				return err
			}
			if timeout > 0 {
				cfg.Generate.Timeout = timeout
			}

			c := cache.New()
			g, err := generate.New(cfg, c)
			if err != nil {
				return err
			}

			var result generate.Result
			if action != "" {
				if persona == "" {
					return fmt.Errorf("--persona is required when generating a specific action")
				}
				result = g.GenerateAction(cmd.Context(), action, persona, examples)
			} else {
				result = g.GenerateAll(cmd.Context(), persona, examples)
			}

			printResult(cmd.OutOrStdout(), result)

			if save && c.HasVariants() {
				saver := generate.NewSaver(cfg.Root, g.Store())
				if err := runSave(cmd.OutOrStdout(), saver, c.All(), false, force); err != nil {
					return err
				}
			}

			if !result.Success {
				return fmt.Errorf("generation finished with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file (default: pareidolia.toml)")
	cmd.Flags().StringVar(&persona, "persona", "", "Persona name to use (defaults to first available)")
	cmd.Flags().StringVar(&action, "action", "", "Generate a single action instead of all")
	cmd.Flags().StringSliceVar(&examples, "examples", nil, "Example names to include")
	cmd.Flags().StringVar(&tool, "tool", "", "Target tool naming convention (standard, copilot, claude-code)")
	cmd.Flags().StringVar(&library, "library", "", "Library name for bundled outputs")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory for generated prompts")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Timeout for one external AI tool invocation")
	cmd.Flags().BoolVar(&save, "save", false, "Promote AI-generated variants to templates after generating")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing templates when promoting with --save")

	return cmd
}

func printResult(w io.Writer, result generate.Result) {
	if len(result.FilesGenerated) > 0 {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Generated %d prompt(s):", len(result.FilesGenerated))))
		for _, path := range result.FilesGenerated {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
	if len(result.Errors) > 0 {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("Encountered %d error(s):", len(result.Errors))))
		for _, msg := range result.Errors {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
}
