package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root := rootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "pareidolia ") {
		t.Errorf("output = %q", out)
	}
}

func TestListConventions(t *testing.T) {
	out, err := executeCommand(t, "list", "conventions")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"standard", "copilot", "claude-code"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %q", want, out)
		}
	}
}

func TestInitThenGenerate(t *testing.T) {
	dir := t.TempDir()

	if _, err := executeCommand(t, "init", "--dir", dir); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(dir, "pareidolia.toml")
	out, err := executeCommand(t, "generate", "--config", configPath)
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}

	promptPath := filepath.Join(dir, "prompts", "research.prompt.md")
	content, err := os.ReadFile(promptPath)
	if err != nil {
		t.Fatalf("expected generated prompt: %v", err)
	}
	if !strings.Contains(string(content), "expert research analyst") {
		t.Errorf("persona not rendered into prompt: %q", content)
	}
}

func TestInitRefusesExistingProject(t *testing.T) {
	dir := t.TempDir()
	if _, err := executeCommand(t, "init", "--dir", dir); err != nil {
		t.Fatal(err)
	}
	if _, err := executeCommand(t, "init", "--dir", dir); err == nil {
		t.Fatal("expected second init to fail without --force")
	}
	if _, err := executeCommand(t, "init", "--dir", dir, "--force"); err != nil {
		t.Fatalf("forced init: %v", err)
	}
}

func TestGenerateSingleActionRequiresPersona(t *testing.T) {
	dir := t.TempDir()
	if _, err := executeCommand(t, "init", "--dir", dir); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(dir, "pareidolia.toml")
	_, err := executeCommand(t, "generate", "--config", configPath, "--action", "research")
	if err == nil || !strings.Contains(err.Error(), "--persona") {
		t.Fatalf("err = %v", err)
	}
}

func TestListPersonas(t *testing.T) {
	dir := t.TempDir()
	if _, err := executeCommand(t, "init", "--dir", dir); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(dir, "pareidolia.toml")
	out, err := executeCommand(t, "list", "personas", "--config", configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "researcher") {
		t.Errorf("output = %q", out)
	}
}
