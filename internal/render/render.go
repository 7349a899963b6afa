// Package render wraps the template engine behind a minimal rendering
// contract. Templates use the jinja2 dialect, matching the .j2/.jinja files
// the store serves.
package render

import (
	"errors"
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// ErrRender is returned when a template fails to parse or evaluate.
var ErrRender = errors.New("render error")

// Engine renders a template string against a context mapping. Missing context
// keys render as empty output; only genuinely invalid operations fail.
type Engine interface {
	Render(template string, context map[string]any) (string, error)
}

// Jinja is the pongo2-backed Engine used in production.
type Jinja struct{}

// NewJinja creates the engine. Output is never HTML-escaped: prompts are
// plain text, not markup.
func NewJinja() *Jinja {
	pongo2.SetAutoescape(false)
	return &Jinja{}
}

// Render renders the template with the given context.
func (j *Jinja) Render(template string, context map[string]any) (string, error) {
	tpl, err := pongo2.FromString(template)
	if err != nil {
		return "", wrapRenderErr("template syntax error", err)
	}

	out, err := tpl.Execute(pongo2.Context(context))
	if err != nil {
		return "", wrapRenderErr("template rendering failed", err)
	}
	return out, nil
}

func wrapRenderErr(msg string, err error) error {
	var perr *pongo2.Error
	if errors.As(err, &perr) && perr.Line > 0 {
		return fmt.Errorf("%w: %s at line %d: %v", ErrRender, msg, perr.Line, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrRender, msg, err)
}
