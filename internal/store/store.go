// Package store resolves and loads named prompt components (personas, action
// templates, examples, variant templates) from a backing filesystem.
//
// Layout under the store root:
//
//	persona/<name>.md
//	action/<name>.md.j2     (or .md.jinja, .md.jinja2)
//	example/<name>.md       (or a template extension)
//	variant/<name>.md       (or a template extension)
//
// Loads are cached by name for the lifetime of the Store; there is no
// invalidation. The action/ layout is shared with the variant saver: a
// promoted variant saved as action/<variant>-<action>.md.j2 is found by
// LoadAction("<variant>-<action>") on the next run.
package store

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gerunddev/pareidolia/internal/fs"
	"github.com/gerunddev/pareidolia/internal/models"
)

// Typed not-found failures, matched with errors.Is at batch boundaries.
var (
	ErrPersonaNotFound         = errors.New("persona not found")
	ErrActionNotFound          = errors.New("action template not found")
	ErrExampleNotFound         = errors.New("example not found")
	ErrVariantTemplateNotFound = errors.New("variant template not found")
)

// actionExtensions is the probe order for action templates.
var actionExtensions = []string{".md.j2", ".md.jinja", ".md.jinja2"}

// variantExtensions is the probe order for variant (instruction) templates,
// which may also be plain markdown.
var variantExtensions = []string{".md.jinja2", ".md.jinja", ".md.j2", ".md"}

// Store loads and caches template files from a FileSystem.
type Store struct {
	fsys fs.FileSystem
	root string

	personas map[string]models.Persona
	actions  map[string]models.Action
	examples map[string]models.Example
	variants map[string]string
}

// New creates a Store over fsys. root is an optional path prefix inside the
// filesystem (e.g. "pareidolia"); pass "" when the filesystem is already
// rooted at the store.
func New(fsys fs.FileSystem, root string) *Store {
	return &Store{
		fsys:     fsys,
		root:     strings.TrimSuffix(root, "/"),
		personas: make(map[string]models.Persona),
		actions:  make(map[string]models.Action),
		examples: make(map[string]models.Example),
		variants: make(map[string]string),
	}
}

func (s *Store) path(parts ...string) string {
	p := path.Join(parts...)
	if s.root != "" {
		return path.Join(s.root, p)
	}
	return p
}

// LoadPersona loads a persona by name.
func (s *Store) LoadPersona(name string) (models.Persona, error) {
	if p, ok := s.personas[name]; ok {
		return p, nil
	}

	personaPath := s.path("persona", name+".md")
	if !s.fsys.Exists(personaPath) {
		return models.Persona{}, fmt.Errorf("%w: %s", ErrPersonaNotFound, name)
	}

	content, err := s.fsys.ReadFile(personaPath)
	if err != nil {
		return models.Persona{}, fmt.Errorf("load persona %s: %w", name, err)
	}

	persona, err := models.NewPersona(name, content)
	if err != nil {
		return models.Persona{}, fmt.Errorf("load persona %s: %w", name, err)
	}
	s.personas[name] = persona
	return persona, nil
}

// LoadAction loads an action template by name. The cache key includes the
// persona because rendering context varies per persona.
func (s *Store) LoadAction(name, personaName string) (models.Action, error) {
	cacheKey := personaName + ":" + name
	if a, ok := s.actions[cacheKey]; ok {
		return a, nil
	}

	var template string
	found := false
	for _, ext := range actionExtensions {
		actionPath := s.path("action", name+ext)
		if s.fsys.Exists(actionPath) {
			content, err := s.fsys.ReadFile(actionPath)
			if err != nil {
				return models.Action{}, fmt.Errorf("load action %s: %w", name, err)
			}
			template = content
			found = true
			break
		}
	}
	if !found {
		return models.Action{}, fmt.Errorf("%w: %s", ErrActionNotFound, name)
	}

	action, err := models.NewAction(name, template, personaName)
	if err != nil {
		return models.Action{}, fmt.Errorf("load action %s: %w", name, err)
	}
	s.actions[cacheKey] = action
	return action, nil
}

// LoadExample loads an example by name. Template extensions are probed first;
// a plain .md example is used verbatim during composition.
func (s *Store) LoadExample(name string) (models.Example, error) {
	if e, ok := s.examples[name]; ok {
		return e, nil
	}

	var content string
	isTemplate := false
	found := false

	for _, ext := range actionExtensions {
		examplePath := s.path("example", name+ext)
		if s.fsys.Exists(examplePath) {
			c, err := s.fsys.ReadFile(examplePath)
			if err != nil {
				return models.Example{}, fmt.Errorf("load example %s: %w", name, err)
			}
			content, isTemplate, found = c, true, true
			break
		}
	}

	if !found {
		examplePath := s.path("example", name+".md")
		if s.fsys.Exists(examplePath) {
			c, err := s.fsys.ReadFile(examplePath)
			if err != nil {
				return models.Example{}, fmt.Errorf("load example %s: %w", name, err)
			}
			content, found = c, true
		}
	}

	if !found {
		return models.Example{}, fmt.Errorf("%w: %s", ErrExampleNotFound, name)
	}

	example, err := models.NewExample(name, content, isTemplate)
	if err != nil {
		return models.Example{}, fmt.Errorf("load example %s: %w", name, err)
	}
	s.examples[name] = example
	return example, nil
}

// LoadVariantTemplate loads the instruction template for a variant. These are
// a separate family from actions: prose meant to steer an external tool.
func (s *Store) LoadVariantTemplate(name string) (string, error) {
	if v, ok := s.variants[name]; ok {
		return v, nil
	}

	for _, ext := range variantExtensions {
		variantPath := s.path("variant", name+ext)
		if s.fsys.Exists(variantPath) {
			content, err := s.fsys.ReadFile(variantPath)
			if err != nil {
				return "", fmt.Errorf("load variant template %s: %w", name, err)
			}
			s.variants[name] = content
			return content, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrVariantTemplateNotFound, name)
}

// ListActions returns all action names, sorted, with extensions stripped.
func (s *Store) ListActions() ([]string, error) {
	return s.listTemplates("action", []string{"*.md.j2", "*.md.jinja", "*.md.jinja2"})
}

// ListPersonas returns all persona names, sorted.
func (s *Store) ListPersonas() ([]string, error) {
	files, err := s.fsys.ListFiles(s.path("persona"), "*.md")
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// ListExamples returns all example names, sorted, with extensions stripped.
func (s *Store) ListExamples() ([]string, error) {
	return s.listTemplates("example", []string{"*.md", "*.md.j2", "*.md.jinja", "*.md.jinja2"})
}

// ListVariants returns all variant template names, sorted.
func (s *Store) ListVariants() ([]string, error) {
	return s.listTemplates("variant", []string{"*.md", "*.md.j2", "*.md.jinja", "*.md.jinja2"})
}

func (s *Store) listTemplates(dir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		files, err := s.fsys.ListFiles(s.path(dir), pattern)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		for _, f := range files {
			seen[stripTemplateExt(path.Base(f))] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// stripTemplateExt removes all template and markdown extensions from a
// filename, leaving the bare component name.
func stripTemplateExt(name string) string {
	for {
		switch {
		case strings.HasSuffix(name, ".jinja2"):
			name = strings.TrimSuffix(name, ".jinja2")
		case strings.HasSuffix(name, ".jinja"):
			name = strings.TrimSuffix(name, ".jinja")
		case strings.HasSuffix(name, ".j2"):
			name = strings.TrimSuffix(name, ".j2")
		case strings.HasSuffix(name, ".md"):
			name = strings.TrimSuffix(name, ".md")
		default:
			return name
		}
	}
}
