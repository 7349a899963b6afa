// Package scaffold writes the starter layout for a new project: a commented
// configuration file, one persona, one action, one example, and two variant
// instruction templates.
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/pareidolia/internal/config"
	"github.com/gerunddev/pareidolia/internal/log"
)

// ErrExists is returned when the target directory already holds a
// configuration file and force was not set.
var ErrExists = errors.New("project already initialized")

const configTemplate = `# Pareidolia configuration.

[pareidolia]
# Directory holding persona/, action/, example/, and variant/ templates.
# Also accepts github://org/repo[@ref][/subpath] for a shared remote store.
root = "pareidolia"

[generate]
# Output naming convention: "standard", "copilot", or "claude-code".
tool = "standard"

# Optional grouping label applied to output file names.
# library = "my-prompts"

# Directory where generated prompts are written.
output_dir = "prompts"

# Wall-clock limit for one external AI tool invocation.
timeout = "60s"

# Variant requests. Each [[prompt]] block binds variants to one action.
# [[prompt]]
# persona = "researcher"
# action = "research"
# variants = ["update", "refine"]
# cli_tool = "claude"  # optional, auto-detects when omitted
`

const starterPersona = `# Researcher

You are an expert research analyst with deep expertise in synthesizing
information from multiple sources and identifying key insights.

## Approach
- Cite sources when making claims
- Consider multiple perspectives before drawing conclusions
- Acknowledge limitations and uncertainties
- Focus on actionable insights
`

const starterAction = `{{ persona }}

## Objective
Research the following topic and provide a comprehensive assessment.

## Requirements
- Identify key themes and patterns
- Highlight important insights
- Note gaps or limitations in the available information
- Provide actionable recommendations

{% if examples %}
## Example Output Format
{% for example in examples %}
{{ example }}
{% endfor %}
{% endif %}
`

const starterExample = `# Example Research Output

## Executive Summary
High-level overview of the key findings.

## Key Findings
1. **Finding One**: Description and supporting evidence
2. **Finding Two**: Description and supporting evidence

## Recommendations
- Specific actionable item
- Specific actionable item
`

const updateVariant = `Rewrite the following prompt so that it asks for an update to an existing
piece of work rather than producing it from scratch. Preserve the persona,
tone, and all requirements. Output only the rewritten prompt.
`

const refineVariant = `Rewrite the following prompt to be sharper and more specific. Tighten vague
instructions, remove redundancy, and preserve the persona and all
requirements. Output only the rewritten prompt.
`

const outputGitignore = `*
!.gitignore
`

// Init writes a starter project into dir. The configuration file is the
// overwrite guard: when it already exists, nothing is touched unless force is
// set.
func Init(dir string, force bool) error {
	configPath := filepath.Join(dir, config.DefaultFilename)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrExists, configPath)
	}

	root := filepath.Join(dir, "pareidolia")
	files := []struct {
		path    string
		content string
	}{
		{configPath, configTemplate},
		{filepath.Join(root, "persona", "researcher.md"), starterPersona},
		{filepath.Join(root, "action", "research.md.j2"), starterAction},
		{filepath.Join(root, "example", "report.md"), starterExample},
		{filepath.Join(root, "variant", "update.md"), updateVariant},
		{filepath.Join(root, "variant", "refine.md"), refineVariant},
		{filepath.Join(dir, "prompts", ".gitignore"), outputGitignore},
	}

	for _, f := range files {
		if err := writeFile(f.path, f.content); err != nil {
			return err
		}
		log.Debug("created", "path", f.path)
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
