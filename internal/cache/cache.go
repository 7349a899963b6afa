// Package cache records AI-generated variant results for later promotion to
// durable templates. Variants produced from pre-authored templates are never
// cached: membership in the cache is exactly the set of content that still
// needs promotion.
package cache

import "time"

// CachedVariant is one AI-produced variant result. Immutable value record.
type CachedVariant struct {
	VariantName string
	ActionName  string
	PersonaName string
	Content     string
	GeneratedAt time.Time
	Metadata    map[string]any
}

// Cache is an in-memory, insertion-ordered collection of cached variants.
// Duplicates are permitted. One instance is constructed at process start and
// passed through the CLI and the generator; the cache has no persistence and
// no internal locking, being scoped to a single-threaded command invocation.
type Cache struct {
	variants []CachedVariant
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Add appends a variant to the cache.
func (c *Cache) Add(v CachedVariant) {
	c.variants = append(c.variants, v)
}

// All returns a copy of the cached variants in insertion order. Callers never
// observe mutations made after the call.
func (c *Cache) All() []CachedVariant {
	out := make([]CachedVariant, len(c.variants))
	copy(out, c.variants)
	return out
}

// ByAction returns the cached variants for an action, order preserved.
func (c *Cache) ByAction(actionName string) []CachedVariant {
	var out []CachedVariant
	for _, v := range c.variants {
		if v.ActionName == actionName {
			out = append(out, v)
		}
	}
	return out
}

// ByVariant returns the cached entries for a variant name, order preserved.
func (c *Cache) ByVariant(variantName string) []CachedVariant {
	var out []CachedVariant
	for _, v := range c.variants {
		if v.VariantName == variantName {
			out = append(out, v)
		}
	}
	return out
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.variants = nil
}

// Count returns the number of cached variants.
func (c *Cache) Count() int {
	return len(c.variants)
}

// HasVariants reports whether the cache holds anything.
func (c *Cache) HasVariants() bool {
	return len(c.variants) > 0
}
