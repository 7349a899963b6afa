package render

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderSubstitution(t *testing.T) {
	e := NewJinja()

	out, err := e.Render("You are {{ persona }}.", map[string]any{"persona": "a researcher"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "You are a researcher." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderMissingKeyIsEmpty(t *testing.T) {
	e := NewJinja()

	out, err := e.Render("before {{ absent }} after", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "before  after" {
		t.Errorf("missing key should render empty, got %q", out)
	}
}

func TestRenderPreservesTrailingNewline(t *testing.T) {
	e := NewJinja()

	out, err := e.Render("line\n", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("trailing newline lost: %q", out)
	}
}

func TestRenderNoHTMLEscaping(t *testing.T) {
	e := NewJinja()

	out, err := e.Render("{{ snippet }}", map[string]any{"snippet": `<b>"x" & 'y'</b>`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `<b>"x" & 'y'</b>` {
		t.Errorf("output was escaped: %q", out)
	}
}

func TestRenderSyntaxError(t *testing.T) {
	e := NewJinja()

	_, err := e.Render("{% if %}", map[string]any{})
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !errors.Is(err, ErrRender) {
		t.Errorf("error should wrap ErrRender, got %v", err)
	}
}

func TestRenderLoopOverExamples(t *testing.T) {
	e := NewJinja()

	tmpl := "{% for ex in examples %}- {{ ex }}\n{% endfor %}"
	out, err := e.Render(tmpl, map[string]any{"examples": []string{"one", "two"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "- one\n- two\n" {
		t.Errorf("unexpected output: %q", out)
	}
}
