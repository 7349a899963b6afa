package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gerunddev/pareidolia/internal/cache"
	pfs "github.com/gerunddev/pareidolia/internal/fs"
	"github.com/gerunddev/pareidolia/internal/generate"
)

func saveCmd() *cobra.Command {
	var (
		configPath string
		persona    string
		variant    string
		action     string
		examples   []string
		list       bool
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Promote AI-generated variants to durable templates",
		Long: `Save runs generation to produce the configured variants, then writes each
AI-generated variant into the template store as action/<variant>-<action>.md.j2
with the persona content replaced by a {{ persona }} placeholder. Variants
rendered from existing templates need no promotion and are not touched.

Once promoted, later runs render the variant directly and never invoke an
external tool.

Example:
  pareidolia save --variant refine --action research`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, "", "", "")
			if err != nil {
				return err
			}
			if pfs.IsGitHubURL(cfg.Root) {
				return fmt.Errorf("cannot save to a remote template store: %s", cfg.Root)
			}

			c := cache.New()
			g, err := generate.New(cfg, c)
			if err != nil {
				return err
			}

			// Populate the cache: the variant generator records every
			// AI-produced variant as it runs.
			result := g.GenerateAll(cmd.Context(), persona, examples)
			if !result.Success {
				printResult(cmd.OutOrStdout(), result)
				return fmt.Errorf("generation finished with %d error(s)", len(result.Errors))
			}

			matched := generate.FilterCached(c.All(), variant, action)
			if len(matched) == 0 {
				return fmt.Errorf("no cached variants match the given filters")
			}

			saver := generate.NewSaver(cfg.Root, g.Store())
			return runSave(cmd.OutOrStdout(), saver, matched, list, force)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file (default: pareidolia.toml)")
	cmd.Flags().StringVar(&persona, "persona", "", "Persona name to use (defaults to first available)")
	cmd.Flags().StringVar(&variant, "variant", "", "Only save variants with this name")
	cmd.Flags().StringVar(&action, "action", "", "Only save variants of this action")
	cmd.Flags().StringSliceVar(&examples, "examples", nil, "Example names to include during generation")
	cmd.Flags().BoolVar(&list, "list", false, "List matching cached variants without writing")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")

	return cmd
}

// runSave promotes the cached variants and prints a per-file summary. Skips
// are reported but only hard failures produce a non-zero exit.
func runSave(w io.Writer, saver *generate.Saver, variants []cache.CachedVariant, dryRun, force bool) error {
	if dryRun {
		printCached(w, variants)
		return nil
	}

	var failures int
	for _, v := range variants {
		path, saved, err := saver.SaveVariant(v, force)
		switch {
		case saved:
			fmt.Fprintf(w, "  %s %s\n", successStyle.Render("saved"), path)
		case errors.Is(err, generate.ErrFileExists):
			fmt.Fprintf(w, "  %s %s (use --force to overwrite)\n", skipStyle.Render("skipped"), path)
		default:
			failures++
			fmt.Fprintf(w, "  %s %s: %v\n", errorStyle.Render("failed"), path, err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d variant(s) failed to save", failures)
	}
	return nil
}

func printCached(w io.Writer, variants []cache.CachedVariant) {
	fmt.Fprintf(w, "%d cached variant(s):\n", len(variants))
	for _, v := range variants {
		fmt.Fprintf(w, "  %s-%s (persona: %s, generated: %s)\n",
			v.VariantName, v.ActionName, v.PersonaName, v.GeneratedAt.Format("15:04:05"))
	}
}
