package naming

import (
	"path/filepath"
	"testing"
)

func TestConventionFilenames(t *testing.T) {
	tests := []struct {
		tool    string
		action  string
		library string
		want    string
	}{
		{"standard", "research", "", "research.prompt.md"},
		{"standard", "research", "mylib", "research.prompt.md"},
		{"copilot", "research", "", "research.prompt.md"},
		{"copilot", "research", "mylib", "mylib.research.prompt.md"},
		// Library prefix applies to the full compound name for variants.
		{"copilot", "update-research", "mylib", "mylib.update-research.prompt.md"},
		{"claude-code", "research", "", "research.md"},
		{"claude-code", "research", "mylib", "research.md"},
	}

	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.action, func(t *testing.T) {
			c, err := Get(tt.tool)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := c.Filename(tt.action, tt.library); got != tt.want {
				t.Errorf("Filename(%q, %q) = %q, want %q", tt.action, tt.library, got, tt.want)
			}
		})
	}
}

func TestConventionOutputPaths(t *testing.T) {
	tests := []struct {
		tool    string
		action  string
		library string
		want    string
	}{
		{"standard", "research", "mylib", filepath.Join("out", "research.prompt.md")},
		{"copilot", "research", "mylib", filepath.Join("out", "mylib.research.prompt.md")},
		{"claude-code", "research", "mylib", filepath.Join("out", "mylib", "research.md")},
		{"claude-code", "research", "", filepath.Join("out", "research.md")},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			c, err := Get(tt.tool)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := c.OutputPath("out", tt.action, tt.library); got != tt.want {
				t.Errorf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetUnknownTool(t *testing.T) {
	if _, err := Get("vscodius"); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestList(t *testing.T) {
	got := List()
	if len(got) != 3 {
		t.Fatalf("expected 3 conventions, got %d", len(got))
	}
	if got[0].Name() != "standard" {
		t.Errorf("expected standard first, got %s", got[0].Name())
	}
}
