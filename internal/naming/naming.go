// Package naming computes output file paths for generated prompts. Each
// target tool has its own convention for how library-scoped prompts are laid
// out on disk.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Convention maps an action name (and optional library) to an output file.
// Implementations are pure; they never touch the filesystem.
type Convention interface {
	// Name is the tool identifier this convention serves.
	Name() string

	// Description is a short human-readable summary for CLI listings.
	Description() string

	// Filename returns the output file name for an action.
	Filename(action, library string) string

	// OutputPath returns the full output path under outputDir.
	OutputPath(outputDir, action, library string) string
}

// Standard writes <action>.prompt.md, ignoring the library.
type Standard struct{}

func (Standard) Name() string        { return "standard" }
func (Standard) Description() string { return "Standard format (.prompt.md)" }

func (Standard) Filename(action, _ string) string {
	return action + ".prompt.md"
}

func (s Standard) OutputPath(outputDir, action, library string) string {
	return filepath.Join(outputDir, s.Filename(action, library))
}

// Copilot writes flat files with a library prefix:
// <library>.<action>.prompt.md.
type Copilot struct{}

func (Copilot) Name() string        { return "copilot" }
func (Copilot) Description() string { return "GitHub Copilot format (.prompt.md)" }

func (Copilot) Filename(action, library string) string {
	if library != "" {
		return library + "." + action + ".prompt.md"
	}
	return action + ".prompt.md"
}

func (c Copilot) OutputPath(outputDir, action, library string) string {
	return filepath.Join(outputDir, c.Filename(action, library))
}

// ClaudeCode writes <library>/<action>.md, using the library as a
// subdirectory.
type ClaudeCode struct{}

func (ClaudeCode) Name() string        { return "claude-code" }
func (ClaudeCode) Description() string { return "Claude Code format (.md)" }

func (ClaudeCode) Filename(action, _ string) string {
	return action + ".md"
}

func (c ClaudeCode) OutputPath(outputDir, action, library string) string {
	if library != "" {
		return filepath.Join(outputDir, library, c.Filename(action, library))
	}
	return filepath.Join(outputDir, c.Filename(action, library))
}

// conventions is the closed set of shipping conventions, in listing order.
var conventions = []Convention{
	Standard{},
	Copilot{},
	ClaudeCode{},
}

// Get returns the convention registered for tool.
func Get(tool string) (Convention, error) {
	for _, c := range conventions {
		if c.Name() == tool {
			return c, nil
		}
	}

	known := make([]string, len(conventions))
	for i, c := range conventions {
		known[i] = c.Name()
	}
	return nil, fmt.Errorf("unknown tool %q, available: %s", tool, strings.Join(known, ", "))
}

// List returns all registered conventions.
func List() []Convention {
	out := make([]Convention, len(conventions))
	copy(out, conventions)
	return out
}
