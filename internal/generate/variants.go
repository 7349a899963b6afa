package generate

import (
	"context"
	"errors"
	"time"

	"github.com/gerunddev/pareidolia/internal/cache"
	"github.com/gerunddev/pareidolia/internal/compose"
	"github.com/gerunddev/pareidolia/internal/config"
	"github.com/gerunddev/pareidolia/internal/log"
	"github.com/gerunddev/pareidolia/internal/store"
	"github.com/gerunddev/pareidolia/internal/tools"
)

// VariantGenerator produces variant content for a base prompt. Each variant
// takes one of two paths:
//
//   - direct: an action template named "<variant>-<action>" exists and is
//     rendered like any other action; the cache is never touched.
//   - AI-transform: the variant's instruction template is rendered and fed to
//     an external tool along with the base prompt; on success the result is
//     appended to the cache for later promotion.
//
// Per-variant failures skip that variant and never fail the batch; only an
// unsatisfiable tool selection aborts before per-variant work starts.
type VariantGenerator struct {
	composer *compose.Composer
	cache    *cache.Cache
	registry []tools.Tool
	generate config.GenerateConfig
}

// NewVariantGenerator creates a VariantGenerator sharing the orchestrator's
// composer and cache handles.
func NewVariantGenerator(composer *compose.Composer, c *cache.Cache, registry []tools.Tool, gen config.GenerateConfig) *VariantGenerator {
	return &VariantGenerator{
		composer: composer,
		cache:    c,
		registry: registry,
		generate: gen,
	}
}

// GenerateVariants produces every variant named in promptCfg, in list order,
// from the already-rendered base prompt. The returned map holds the variants
// that succeeded; skipped variants are simply absent.
//
// Tool selection happens before any per-variant work: an explicit cli_tool
// that is unknown or unavailable, or an empty set of installed tools, fails
// the whole batch with tools.ErrNoAvailableTool.
//
// This is the strict entry point for callers that hold a base prompt and
// want the full batch in one call, such as embedding the generator in a
// server or script. The CLI's Generator instead drives GenerateSingle per
// variant, deferring tool selection until an AI fallback is actually needed
// so fully-promoted projects run with no tools installed; the persona it
// passes is the runtime persona, which may override promptCfg.Persona.
func (v *VariantGenerator) GenerateVariants(ctx context.Context, promptCfg config.PromptConfig, basePrompt string, timeout time.Duration) (map[string]string, error) {
	tool, err := tools.Select(v.registry, promptCfg.CLITool)
	if err != nil {
		return nil, err
	}
	log.Debug("selected CLI tool", "tool", tool.Name())

	variants := make(map[string]string)
	for _, variantName := range promptCfg.Variants {
		content, err := v.generateOne(ctx, variantName, promptCfg, basePrompt, tool, timeout)
		if err != nil {
			if errors.Is(err, store.ErrVariantTemplateNotFound) {
				log.Warn("skipping variant", "variant", variantName, "reason", err)
			} else {
				log.Error("failed to generate variant", "variant", variantName, "error", err)
			}
			continue
		}
		variants[variantName] = content
		log.Info("generated variant", "variant", variantName)
	}
	return variants, nil
}

// generateOne tries the direct-template path and falls back to the AI
// transform.
func (v *VariantGenerator) generateOne(ctx context.Context, variantName string, promptCfg config.PromptConfig, basePrompt string, tool tools.Tool, timeout time.Duration) (string, error) {
	variantAction := variantName + "-" + promptCfg.Action

	if _, err := v.composer.Store().LoadAction(variantAction, promptCfg.Persona); err == nil {
		log.Debug("variant has a direct template", "variant", variantName, "action", variantAction)
		return v.composer.Compose(variantAction, promptCfg.Persona, nil, &promptCfg)
	} else if !errors.Is(err, store.ErrActionNotFound) {
		return "", err
	}

	return v.GenerateSingle(ctx, variantName, promptCfg.Persona, promptCfg, basePrompt, tool, timeout)
}

// GenerateSingle produces one variant via the AI-transform path: render the
// variant's instruction template, invoke the tool, and record the result in
// the cache. personaName is the effective persona of the run, which may
// differ from promptCfg.Persona when the caller overrides it; the cache
// entry records the persona whose content actually flowed into the base
// prompt, so promotion substitutes the right text. The direct-template probe
// is the caller's responsibility.
func (v *VariantGenerator) GenerateSingle(ctx context.Context, variantName, personaName string, promptCfg config.PromptConfig, basePrompt string, tool tools.Tool, timeout time.Duration) (string, error) {
	template, err := v.composer.Store().LoadVariantTemplate(variantName)
	if err != nil {
		return "", err
	}

	instructions, err := v.composer.Engine().Render(template, map[string]any{
		"persona_name": personaName,
		"action_name":  promptCfg.Action,
		"variant_name": variantName,
		"tool":         v.generate.Tool,
		"library":      v.generate.Library,
		"metadata":     metadataOrEmpty(promptCfg.Metadata),
	})
	if err != nil {
		return "", err
	}

	content, err := tool.GenerateVariant(ctx, instructions, basePrompt, timeout)
	if err != nil {
		return "", err
	}

	// Only AI-sourced content enters the cache: membership signals "needs
	// promotion" to the saver.
	v.cache.Add(cache.CachedVariant{
		VariantName: variantName,
		ActionName:  promptCfg.Action,
		PersonaName: personaName,
		Content:     content,
		GeneratedAt: time.Now(),
		Metadata:    metadataOrEmpty(promptCfg.Metadata),
	})

	return content, nil
}

func metadataOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
