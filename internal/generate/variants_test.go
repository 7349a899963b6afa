package generate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gerunddev/pareidolia/internal/cache"
	"github.com/gerunddev/pareidolia/internal/compose"
	"github.com/gerunddev/pareidolia/internal/config"
	"github.com/gerunddev/pareidolia/internal/fs"
	"github.com/gerunddev/pareidolia/internal/render"
	"github.com/gerunddev/pareidolia/internal/store"
	"github.com/gerunddev/pareidolia/internal/tools"
)

func newVariantGenerator(t *testing.T, root string, c *cache.Cache, registry []tools.Tool) *VariantGenerator {
	t.Helper()
	gen := config.GenerateConfig{Tool: "standard", Timeout: 5 * time.Second}
	s := store.New(fs.NewLocal(root), "")
	composer := compose.New(s, render.NewJinja(), gen)
	return NewVariantGenerator(composer, c, registry, gen)
}

func TestGenerateVariantsExplicitToolUnsatisfiable(t *testing.T) {
	tests := []struct {
		name     string
		registry []tools.Tool
		cliTool  string
	}{
		{
			name:     "unknown tool",
			registry: []tools.Tool{&mockTool{name: "mock", available: true}},
			cliTool:  "nonexistent-tool",
		},
		{
			name:     "known but unavailable",
			registry: []tools.Tool{&mockTool{name: "mock", available: false}},
			cliTool:  "mock",
		},
		{
			name:     "nothing installed",
			registry: []tools.Tool{&mockTool{name: "mock", available: false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := basicStore(t)
			writeTree(t, root, map[string]string{
				"variant/refine.md": "Refine this prompt.",
			})
			c := cache.New()
			v := newVariantGenerator(t, root, c, tt.registry)

			promptCfg := config.PromptConfig{
				Persona:  "researcher",
				Action:   "research",
				Variants: []string{"refine"},
				CLITool:  tt.cliTool,
			}
			_, err := v.GenerateVariants(context.Background(), promptCfg, "base", 0)
			if !errors.Is(err, tools.ErrNoAvailableTool) {
				t.Fatalf("err = %v, want ErrNoAvailableTool", err)
			}
			if c.Count() != 0 {
				t.Errorf("cache must stay empty, count = %d", c.Count())
			}
		})
	}
}

func TestGenerateVariantsCacheExclusivity(t *testing.T) {
	root := basicStore(t)
	writeTree(t, root, map[string]string{
		"action/update-research.md.j2": "{{ persona }}\n\nUpdate.",
		"variant/refine.md.j2":         "Refine for {{ persona_name }}.",
	})

	c := cache.New()
	tool := &mockTool{name: "mock", available: true, output: "refined"}
	v := newVariantGenerator(t, root, c, []tools.Tool{tool})

	promptCfg := config.PromptConfig{
		Persona:  "researcher",
		Action:   "research",
		Variants: []string{"update", "refine"},
	}
	variants, err := v.GenerateVariants(context.Background(), promptCfg, "base prompt", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 2 {
		t.Fatalf("variants = %v, want update and refine", variants)
	}
	if variants["refine"] != "refined" {
		t.Errorf("refine = %q", variants["refine"])
	}

	// Exactly one entry: the AI-produced variant. The direct-template
	// variant never touches the cache.
	if c.Count() != 1 {
		t.Fatalf("cache count = %d, want 1", c.Count())
	}
	if got := c.All()[0].VariantName; got != "refine" {
		t.Errorf("cached variant = %s, want refine", got)
	}
	if tool.calls != 1 {
		t.Errorf("tool calls = %d, want 1", tool.calls)
	}
}

func TestGenerateVariantsSkipsAndContinues(t *testing.T) {
	root := basicStore(t)
	writeTree(t, root, map[string]string{
		"variant/refine.md": "Refine this prompt.",
		// no template at all for "missing"
	})

	c := cache.New()
	tool := &mockTool{name: "mock", available: true, output: "refined"}
	v := newVariantGenerator(t, root, c, []tools.Tool{tool})

	promptCfg := config.PromptConfig{
		Persona:  "researcher",
		Action:   "research",
		Variants: []string{"missing", "refine"},
	}
	variants, err := v.GenerateVariants(context.Background(), promptCfg, "base", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 1 {
		t.Fatalf("variants = %v, want only refine", variants)
	}
	if _, ok := variants["missing"]; ok {
		t.Error("missing variant should have been skipped")
	}
	if c.Count() != 1 {
		t.Errorf("cache count = %d, want 1", c.Count())
	}
}

func TestGenerateSingleRendersInstructionContext(t *testing.T) {
	root := basicStore(t)
	writeTree(t, root, map[string]string{
		"variant/refine.md.j2": "Refine {{ action_name }} as {{ variant_name }} for {{ persona_name }}.",
	})

	var gotInstructions, gotBase string
	tool := &recordingTool{output: "ok", record: func(variantPrompt, basePrompt string) {
		gotInstructions = variantPrompt
		gotBase = basePrompt
	}}

	c := cache.New()
	v := newVariantGenerator(t, root, c, []tools.Tool{tool})
	promptCfg := config.PromptConfig{
		Persona:  "researcher",
		Action:   "research",
		Variants: []string{"refine"},
		Metadata: map[string]any{"priority": "high"},
	}

	content, err := v.GenerateSingle(context.Background(), "refine", "researcher", promptCfg, "the base prompt", tool, 0)
	if err != nil {
		t.Fatal(err)
	}
	if content != "ok" {
		t.Errorf("content = %q", content)
	}
	if gotInstructions != "Refine research as refine for researcher." {
		t.Errorf("instructions = %q", gotInstructions)
	}
	if gotBase != "the base prompt" {
		t.Errorf("base prompt = %q", gotBase)
	}

	if c.Count() != 1 {
		t.Fatalf("cache count = %d", c.Count())
	}
	entry := c.All()[0]
	if entry.Metadata["priority"] != "high" {
		t.Errorf("metadata not carried into cache: %+v", entry.Metadata)
	}
	if entry.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

// recordingTool captures the prompts handed to it.
type recordingTool struct {
	output string
	record func(variantPrompt, basePrompt string)
}

func (r *recordingTool) Name() string      { return "recorder" }
func (r *recordingTool) Command() string   { return "recorder" }
func (r *recordingTool) IsAvailable() bool { return true }

func (r *recordingTool) GenerateVariant(_ context.Context, variantPrompt, basePrompt string, _ time.Duration) (string, error) {
	r.record(variantPrompt, basePrompt)
	return r.output, nil
}
