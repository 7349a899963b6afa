// Package tools wraps the external AI command-line tools used for variant
// generation. Each tool is a thin argv recipe over a shared subprocess
// runner; availability is a PATH presence check only.
package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Error families for tool invocation.
var (
	// ErrTool is returned when a tool invocation fails: timeout, non-zero
	// exit, or failure to start. Raw exec errors never escape this package.
	ErrTool = errors.New("cli tool error")

	// ErrNoAvailableTool is returned when no tool can serve a request:
	// either nothing in the registry is installed, or an explicitly
	// requested tool is unknown or unavailable.
	ErrNoAvailableTool = errors.New("no available CLI tool")
)

// DefaultTimeout bounds a single tool invocation unless the caller supplies
// its own limit.
const DefaultTimeout = 60 * time.Second

// Tool is one external AI CLI. Concrete tools differ only in the argument
// vector used to invoke the process; the two prompts are always combined into
// its input stream.
type Tool interface {
	// Name is the registry identifier (e.g. "claude").
	Name() string

	// Command is the binary probed for availability.
	Command() string

	// IsAvailable reports whether the command is present in PATH. This is a
	// presence check, not a functional check.
	IsAvailable() bool

	// GenerateVariant feeds the rendered variant instructions plus the base
	// prompt to the tool and returns its output, trimmed. Timeout is a hard
	// wall-clock bound; expiry is reported as an ErrTool failure, not a hang.
	GenerateVariant(ctx context.Context, variantPrompt, basePrompt string, timeout time.Duration) (string, error)
}

// CommandCreator builds the exec.Cmd for a tool invocation. Tests inject a
// fake to avoid spawning real processes.
type CommandCreator func(ctx context.Context, name string, args ...string) *exec.Cmd

// LookPath resolves a command in PATH. Injectable for tests.
type LookPath func(name string) (string, error)

// runner holds the process-spawning hooks shared by every tool.
type runner struct {
	create CommandCreator
	look   LookPath
}

func defaultRunner() *runner {
	return &runner{
		create: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, name, args...)
		},
		look: exec.LookPath,
	}
}

func (r *runner) run(ctx context.Context, name string, argv []string, input string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := r.create(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w: %s timed out after %s", ErrTool, name, timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = fmt.Sprintf("exit code %d", exitErr.ExitCode())
			}
			return "", fmt.Errorf("%w: %s failed: %s", ErrTool, name, msg)
		}
		return "", fmt.Errorf("%w: %s invocation failed: %v", ErrTool, name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// cliTool is the single Tool implementation; instances differ only in name,
// probe command, and argv.
type cliTool struct {
	name    string
	command string
	argv    []string
	runner  *runner
}

func (t *cliTool) Name() string    { return t.name }
func (t *cliTool) Command() string { return t.command }

func (t *cliTool) IsAvailable() bool {
	_, err := t.runner.look(t.command)
	return err == nil
}

func (t *cliTool) GenerateVariant(ctx context.Context, variantPrompt, basePrompt string, timeout time.Duration) (string, error) {
	if !t.IsAvailable() {
		return "", fmt.Errorf("%w: %s is not available in PATH", ErrTool, t.name)
	}

	combined := variantPrompt + "\n\nOriginal prompt:\n" + basePrompt
	return t.runner.run(ctx, t.name, t.argv, combined, timeout)
}

// DefaultRegistry returns the fixed-order tool registry. Auto-detection picks
// the first available entry, so order is part of the contract.
func DefaultRegistry() []Tool {
	return registryWithRunner(defaultRunner())
}

func registryWithRunner(r *runner) []Tool {
	return []Tool{
		&cliTool{name: "codex", command: "codex", argv: []string{"codex", "--mode", "command"}, runner: r},
		&cliTool{name: "copilot", command: "gh", argv: []string{"gh", "copilot", "suggest", "-t", "shell"}, runner: r},
		&cliTool{name: "claude", command: "claude", argv: []string{"claude"}, runner: r},
		&cliTool{name: "gemini", command: "gemini", argv: []string{"gemini", "command"}, runner: r},
	}
}

// ByName finds a tool in the registry by its name.
func ByName(registry []Tool, name string) (Tool, bool) {
	for _, t := range registry {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Available filters the registry down to installed tools, order preserved.
func Available(registry []Tool) []Tool {
	var out []Tool
	for _, t := range registry {
		if t.IsAvailable() {
			out = append(out, t)
		}
	}
	return out
}

// Select implements tool selection: an explicitly requested tool must exist
// and be available; otherwise the first available tool wins. Both failure
// modes are ErrNoAvailableTool, raised before any per-variant work starts.
func Select(registry []Tool, requested string) (Tool, error) {
	if requested != "" {
		tool, ok := ByName(registry, requested)
		if !ok {
			return nil, fmt.Errorf("%w: CLI tool not found: %s", ErrNoAvailableTool, requested)
		}
		if !tool.IsAvailable() {
			return nil, fmt.Errorf("%w: CLI tool not available: %s", ErrNoAvailableTool, requested)
		}
		return tool, nil
	}

	available := Available(registry)
	if len(available) == 0 {
		names := make([]string, len(registry))
		for i, t := range registry {
			names[i] = t.Name()
		}
		return nil, fmt.Errorf("%w: install one of: %s", ErrNoAvailableTool, strings.Join(names, ", "))
	}
	return available[0], nil
}
