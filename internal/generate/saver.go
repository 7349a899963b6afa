package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/pareidolia/internal/cache"
	"github.com/gerunddev/pareidolia/internal/store"
)

// ErrFileExists marks a save that was skipped because the target template
// already exists and force was not set. A skip, not a failure.
var ErrFileExists = errors.New("file exists")

// personaPlaceholder is substituted for the persona's literal text during
// promotion, so the saved template re-renders against any persona.
const personaPlaceholder = "{{ persona }}"

// Saver promotes cached variants into durable action templates under the
// local store root. Promotion closes the loop: once saved, regeneration takes
// the direct-template path and needs no external tool.
type Saver struct {
	root  string
	store *store.Store
}

// NewSaver creates a Saver writing under root, the local template store
// directory. The store supplies persona content for placeholder substitution.
func NewSaver(root string, s *store.Store) *Saver {
	return &Saver{root: root, store: s}
}

// SaveResult is the outcome of one save attempt.
type SaveResult struct {
	Saved bool
	Err   error
}

// TemplatePath returns where a cached variant is promoted to. The path is
// exactly what action loading probes first for "<variant>-<action>", which is
// how a promoted variant is discovered on the next run.
func (s *Saver) TemplatePath(variantName, actionName string) string {
	return filepath.Join(s.root, "action", variantName+"-"+actionName+".md.j2")
}

// SaveVariant writes one cached variant as an action template. The persona's
// literal content is replaced with the persona placeholder; content that does
// not contain it verbatim (the tool paraphrased, or the text is already
// templated) is written unchanged. Returns the target path, whether the file
// was written, and an error classifying a skip (ErrFileExists) or a hard
// failure. Errors are reported, never panicked.
func (s *Saver) SaveVariant(v cache.CachedVariant, force bool) (string, bool, error) {
	path := s.TemplatePath(v.VariantName, v.ActionName)

	if _, err := os.Stat(path); err == nil && !force {
		return path, false, ErrFileExists
	}

	persona, err := s.store.LoadPersona(v.PersonaName)
	if err != nil {
		return path, false, fmt.Errorf("convert template: %w", err)
	}
	content := convertToTemplate(v.Content, persona.Content)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, false, fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return path, false, fmt.Errorf("write file: %w", err)
	}
	return path, true, nil
}

// SaveAll saves each cached variant independently; one failure never affects
// the others. Two variants targeting the same path collide last-write-wins,
// in input order.
func (s *Saver) SaveAll(variants []cache.CachedVariant, force bool) map[string]SaveResult {
	results := make(map[string]SaveResult, len(variants))
	for _, v := range variants {
		path, saved, err := s.SaveVariant(v, force)
		results[path] = SaveResult{Saved: saved, Err: err}
	}
	return results
}

// FilterCached narrows cached variants to those matching the optional exact
// variant and action name filters. Empty filters match everything; both set
// means the intersection. Order is preserved.
func FilterCached(variants []cache.CachedVariant, variantName, actionName string) []cache.CachedVariant {
	var out []cache.CachedVariant
	for _, v := range variants {
		if variantName != "" && v.VariantName != variantName {
			continue
		}
		if actionName != "" && v.ActionName != actionName {
			continue
		}
		out = append(out, v)
	}
	return out
}

// convertToTemplate swaps the persona's literal text for the placeholder.
// Content without a verbatim match passes through unchanged.
func convertToTemplate(content, personaContent string) string {
	if strings.Contains(content, personaContent) {
		return strings.ReplaceAll(content, personaContent, personaPlaceholder)
	}
	return content
}
