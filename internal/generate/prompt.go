package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/pareidolia/internal/compose"
	"github.com/gerunddev/pareidolia/internal/config"
	"github.com/gerunddev/pareidolia/internal/naming"
)

// PromptGenerator renders a single base prompt and writes it to the path the
// active naming convention computes.
type PromptGenerator struct {
	composer   *compose.Composer
	convention naming.Convention
}

// NewPromptGenerator creates a PromptGenerator.
func NewPromptGenerator(composer *compose.Composer, convention naming.Convention) *PromptGenerator {
	return &PromptGenerator{composer: composer, convention: convention}
}

// Generate composes the prompt for action+persona and writes it under
// outputDir, creating parent directories as needed. Returns the written path
// and the rendered content; the orchestrator feeds the content to variant
// generation without re-reading the file.
func (g *PromptGenerator) Generate(actionName, personaName, outputDir, library string, exampleNames []string, promptCfg *config.PromptConfig) (string, string, error) {
	prompt, err := g.composer.Compose(actionName, personaName, exampleNames, promptCfg)
	if err != nil {
		return "", "", err
	}

	outputPath := g.convention.OutputPath(outputDir, actionName, library)
	if err := writePrompt(outputPath, prompt); err != nil {
		return "", "", err
	}
	return outputPath, prompt, nil
}

// writePrompt writes content to path, creating parent directories. I/O
// failures are wrapped, never propagated raw.
func writePrompt(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
