// Package compose builds complete base prompts from personas, action
// templates, and examples.
package compose

import (
	"fmt"

	"github.com/gerunddev/pareidolia/internal/config"
	"github.com/gerunddev/pareidolia/internal/render"
	"github.com/gerunddev/pareidolia/internal/store"
)

// Composer renders action templates with the full composition context.
type Composer struct {
	store    *store.Store
	engine   render.Engine
	generate config.GenerateConfig
}

// New creates a Composer. The generate config supplies the tool and library
// values exposed to templates.
func New(s *store.Store, e render.Engine, gen config.GenerateConfig) *Composer {
	return &Composer{store: s, engine: e, generate: gen}
}

// Store returns the template store the composer reads from.
func (c *Composer) Store() *store.Store {
	return c.store
}

// Engine returns the render engine.
func (c *Composer) Engine() render.Engine {
	return c.engine
}

// Compose loads the persona, action template, and examples, then renders the
// action with the composition context. promptCfg may be nil when no variant
// request targets the action; its metadata then defaults to empty.
func (c *Composer) Compose(actionName, personaName string, exampleNames []string, promptCfg *config.PromptConfig) (string, error) {
	persona, err := c.store.LoadPersona(personaName)
	if err != nil {
		return "", err
	}
	action, err := c.store.LoadAction(actionName, personaName)
	if err != nil {
		return "", err
	}

	context := c.baseContext(persona.Content, promptCfg)

	if len(exampleNames) > 0 {
		rendered := make([]string, 0, len(exampleNames))
		for _, name := range exampleNames {
			example, err := c.store.LoadExample(name)
			if err != nil {
				return "", err
			}
			if example.IsTemplate {
				out, err := c.engine.Render(example.Content, context)
				if err != nil {
					return "", fmt.Errorf("example %s: %w", name, err)
				}
				rendered = append(rendered, out)
			} else {
				rendered = append(rendered, example.Content)
			}
		}
		context["examples"] = rendered
	}

	return c.engine.Render(action.Template, context)
}

func (c *Composer) baseContext(personaContent string, promptCfg *config.PromptConfig) map[string]any {
	context := map[string]any{
		"persona": personaContent,
		"tool":    c.generate.Tool,
		"library": c.generate.Library,
	}
	if promptCfg != nil && promptCfg.Metadata != nil {
		context["metadata"] = promptCfg.Metadata
	} else {
		context["metadata"] = map[string]any{}
	}
	return context
}
