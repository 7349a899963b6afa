package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gerunddev/pareidolia/internal/cache"
	"github.com/gerunddev/pareidolia/internal/compose"
	"github.com/gerunddev/pareidolia/internal/config"
	"github.com/gerunddev/pareidolia/internal/fs"
	"github.com/gerunddev/pareidolia/internal/log"
	"github.com/gerunddev/pareidolia/internal/naming"
	"github.com/gerunddev/pareidolia/internal/render"
	"github.com/gerunddev/pareidolia/internal/store"
	"github.com/gerunddev/pareidolia/internal/tools"
)

// Generator drives a full generation run: base prompts plus their configured
// variants, with results aggregated per run. One Generator serves one command
// invocation.
type Generator struct {
	cfg        *config.Config
	store      *store.Store
	composer   *compose.Composer
	convention naming.Convention
	prompts    *PromptGenerator
	variants   *VariantGenerator
	registry   []tools.Tool

	// selectedTool memoizes lazy tool selection across the variant loop.
	// Selection happens only when an AI fallback is actually needed, so runs
	// where every variant has a direct template work with no tools installed.
	selectedTool tools.Tool
	selectErr    error
	selected     bool
}

// New creates a Generator from the configuration, opening the template store
// at cfg.Root (a local directory or a github:// URL).
func New(cfg *config.Config, c *cache.Cache) (*Generator, error) {
	fsys, err := OpenRoot(cfg.Root)
	if err != nil {
		return nil, err
	}
	return NewWithFS(cfg, c, fsys, tools.DefaultRegistry()), nil
}

// NewWithFS creates a Generator over an explicit filesystem and tool
// registry. Used by tests and by callers that already hold an open store.
func NewWithFS(cfg *config.Config, c *cache.Cache, fsys fs.FileSystem, registry []tools.Tool) *Generator {
	s := store.New(fsys, "")
	engine := render.NewJinja()
	composer := compose.New(s, engine, cfg.Generate)

	convention, err := naming.Get(cfg.Generate.Tool)
	if err != nil {
		// Validate catches unknown tools before construction; default
		// rather than panic if a caller skipped validation.
		convention = naming.Standard{}
		log.Warn("unknown naming tool, using standard", "tool", cfg.Generate.Tool)
	}

	return &Generator{
		cfg:        cfg,
		store:      s,
		composer:   composer,
		convention: convention,
		prompts:    NewPromptGenerator(composer, convention),
		variants:   NewVariantGenerator(composer, c, registry, cfg.Generate),
		registry:   registry,
	}
}

// OpenRoot opens the filesystem backing a store root: a GitHub repository for
// github:// URLs, the local disk otherwise. A missing local root fails here,
// before any generation starts.
func OpenRoot(root string) (fs.FileSystem, error) {
	if fs.IsGitHubURL(root) {
		url, err := fs.ParseGitHubURL(root)
		if err != nil {
			return nil, err
		}
		return fs.NewGitHub(url), nil
	}

	local := fs.NewLocal(root)
	if !local.Exists(".") {
		return nil, fmt.Errorf("template root does not exist: %s", root)
	}
	return local, nil
}

// Store returns the template store backing this generator.
func (g *Generator) Store() *store.Store {
	return g.store
}

// GenerateAction renders one action's base prompt, writes it, and produces
// any variants configured for that action. Variant failures are logged and
// skipped; they never remove the base file or stop sibling variants.
func (g *Generator) GenerateAction(ctx context.Context, actionName, personaName string, exampleNames []string) Result {
	var files, errs []string
	g.generateOne(ctx, actionName, personaName, exampleNames, &files, &errs)
	return newResult(files, errs)
}

// GenerateAll renders every action in the store against one persona. When
// personaName is empty the first persona (sorted order) is used. Actions that
// exist only as promoted variant templates of a configured prompt are skipped
// here and produced through the variant path instead.
func (g *Generator) GenerateAll(ctx context.Context, personaName string, exampleNames []string) Result {
	runID := uuid.NewString()
	log.Debug("starting generation run", "run", runID)

	actions, err := g.store.ListActions()
	if err != nil {
		return newResult(nil, []string{err.Error()})
	}
	if len(actions) == 0 {
		return newResult(nil, []string{"no actions found in project"})
	}
	actions = g.filterVariantActions(actions)

	if personaName == "" {
		personas, err := g.store.ListPersonas()
		if err != nil {
			return newResult(nil, []string{err.Error()})
		}
		if len(personas) == 0 {
			return newResult(nil, []string{"no personas found in project"})
		}
		personaName = personas[0]
	}

	var files, errs []string
	for _, actionName := range actions {
		g.generateOne(ctx, actionName, personaName, exampleNames, &files, &errs)
	}

	log.Debug("generation run finished", "run", runID, "files", len(files), "errors", len(errs))
	return newResult(files, errs)
}

// generateOne performs the per-action work shared by GenerateAction and
// GenerateAll: base write first, then variants. A base failure is one error
// entry; it never aborts sibling actions.
func (g *Generator) generateOne(ctx context.Context, actionName, personaName string, exampleNames []string, files, errs *[]string) {
	promptCfg := g.promptFor(actionName)

	basePath, basePrompt, err := g.prompts.Generate(
		actionName, personaName, g.cfg.Generate.OutputDir, g.cfg.Generate.Library, exampleNames, promptCfg)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("failed to generate %s: %v", actionName, err))
		return
	}
	*files = append(*files, basePath)
	log.Info("generated prompt", "action", actionName, "path", basePath)

	if promptCfg == nil {
		return
	}

	for _, variantName := range promptCfg.Variants {
		path, ok := g.generateVariantFile(ctx, variantName, *promptCfg, personaName, basePrompt, exampleNames)
		if ok {
			*files = append(*files, path)
		}
	}
}

// generateVariantFile produces and writes one variant. Failures are logged
// and reported as a skip, never as an error in the run result.
func (g *Generator) generateVariantFile(ctx context.Context, variantName string, promptCfg config.PromptConfig, personaName, basePrompt string, exampleNames []string) (string, bool) {
	variantAction := variantName + "-" + promptCfg.Action

	_, err := g.store.LoadAction(variantAction, personaName)
	switch {
	case err == nil:
		// Promoted or pre-authored template: render like any other action.
		path, _, err := g.prompts.Generate(
			variantAction, personaName, g.cfg.Generate.OutputDir, g.cfg.Generate.Library, exampleNames, &promptCfg)
		if err != nil {
			log.Error("failed to generate variant", "variant", variantName, "error", err)
			return "", false
		}
		log.Info("generated variant from action template", "variant", variantName)
		return path, true

	case errors.Is(err, store.ErrActionNotFound):
		tool, err := g.selectTool(promptCfg.CLITool)
		if err != nil {
			log.Error("skipping variant", "variant", variantName, "error", err)
			return "", false
		}

		content, err := g.variants.GenerateSingle(ctx, variantName, personaName, promptCfg, basePrompt, tool, g.cfg.Generate.Timeout)
		if err != nil {
			log.Error("failed to generate variant", "variant", variantName, "error", err)
			return "", false
		}

		path := g.convention.OutputPath(g.cfg.Generate.OutputDir, variantAction, g.cfg.Generate.Library)
		if err := writePrompt(path, content); err != nil {
			log.Error("failed to write variant", "variant", variantName, "error", err)
			return "", false
		}
		log.Info("generated variant using AI transformation", "variant", variantName)
		return path, true

	default:
		log.Error("failed to load variant action", "variant", variantName, "error", err)
		return "", false
	}
}

// selectTool resolves the external tool once per run and caches the outcome,
// failure included.
func (g *Generator) selectTool(requested string) (tools.Tool, error) {
	if !g.selected {
		g.selectedTool, g.selectErr = tools.Select(g.registry, requested)
		g.selected = true
	}
	return g.selectedTool, g.selectErr
}

func (g *Generator) promptFor(actionName string) *config.PromptConfig {
	if pc, ok := g.cfg.PromptFor(actionName); ok {
		return &pc
	}
	return nil
}

// filterVariantActions drops action names of the form <variant>-<action> that
// a configured prompt will already produce through the variant path, so a
// promoted variant is not also generated as a standalone base prompt.
func (g *Generator) filterVariantActions(actions []string) []string {
	covered := make(map[string]bool)
	for _, pc := range g.cfg.Prompts {
		for _, variantName := range pc.Variants {
			covered[variantName+"-"+pc.Action] = true
		}
	}

	out := make([]string, 0, len(actions))
	for _, name := range actions {
		if covered[name] {
			continue
		}
		out = append(out, name)
	}
	return out
}
