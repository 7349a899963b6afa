package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gerunddev/pareidolia/internal/config"
)

func TestInitCreatesProject(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, false); err != nil {
		t.Fatal(err)
	}

	wantFiles := []string{
		"pareidolia.toml",
		"pareidolia/persona/researcher.md",
		"pareidolia/action/research.md.j2",
		"pareidolia/example/report.md",
		"pareidolia/variant/update.md",
		"pareidolia/variant/refine.md",
		"prompts/.gitignore",
	}
	for _, f := range wantFiles {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f))); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	// The generated config file must load cleanly.
	cfg, err := config.LoadFromPath(filepath.Join(dir, "pareidolia.toml"))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Root != filepath.Join(dir, "pareidolia") {
		t.Errorf("root = %s", cfg.Root)
	}
	if cfg.Generate.Tool != "standard" {
		t.Errorf("tool = %s", cfg.Generate.Tool)
	}
}

func TestInitRefusesReinit(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, false); err != nil {
		t.Fatal(err)
	}

	marker := filepath.Join(dir, "pareidolia", "persona", "researcher.md")
	if err := os.WriteFile(marker, []byte("edited"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Init(dir, false)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
	content, err := os.ReadFile(marker)
	if err != nil || string(content) != "edited" {
		t.Errorf("refused init must not touch existing files: %q %v", content, err)
	}

	if err := Init(dir, true); err != nil {
		t.Fatalf("forced init: %v", err)
	}
	content, _ = os.ReadFile(marker)
	if string(content) == "edited" {
		t.Error("forced init should rewrite starter files")
	}
}
