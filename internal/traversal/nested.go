package traversal

import (
	"maps"

	"github.com/persistorai/trv/internal/models"
)

// ChildPredicate decides whether a node's sub-traversal, and so the node,
// stays in a nested frontier. path is the parent's path to the node.
type ChildPredicate func(child *Traversal, path []models.Step) bool

// Deepen nests every flat leaf: each node of a leaf frontier gets its own
// sub-traversal starting at that node and inheriting the leaf's paths.
// The leaf keeps its result, path and cache.
func (t *Traversal) Deepen() *Traversal {
	if t.IsDeep() {
		for _, key := range sortedKeys(t.children) {
			t.children[key].Deepen()
		}

		t.depth++

		return t
	}

	children := make(map[string]*Traversal, len(t.result))

	for _, key := range sortedKeys(t.result) {
		nodeKey := t.result[key].Key()
		children[nodeKey] = NewWithPath(t.graph, t.path, nodeKey)
	}

	t.children = children
	t.depth = 1

	return t
}

// Flatten collapses the deepest nested level. The collapsed level's errors
// are replaced by its children's errors in key order. Flatten on a flat
// traversal does nothing.
func (t *Traversal) Flatten() *Traversal {
	if !t.IsDeep() {
		return t
	}

	if t.depth > 1 {
		for _, key := range sortedKeys(t.children) {
			t.children[key].Flatten()
		}

		t.depth--

		return t
	}

	var errs []error
	for _, key := range sortedKeys(t.children) {
		errs = append(errs, t.children[key].errors...)
	}

	t.errors = errs
	t.children = nil
	t.depth = 0

	return t
}

// DeepSave stores, at the deepest nested level, each child's cache in the
// parent cache under name. It does nothing on a flat traversal.
func (t *Traversal) DeepSave(name string) *Traversal {
	if !t.IsDeep() {
		return t
	}

	if t.depth > 1 {
		for _, key := range sortedKeys(t.children) {
			t.children[key].DeepSave(name)
		}

		return t
	}

	edit := newCacheEdit(t.cache)

	for _, key := range sortedKeys(t.children) {
		edit.set(key, name, t.children[key].Cache())
	}

	t.cache = edit.done()

	return t
}

// DeepFilter removes, at the deepest nested level, every node whose child
// fails keep from both the frontier and the children. Paths are kept.
// It does nothing on a flat traversal.
func (t *Traversal) DeepFilter(keep ChildPredicate) *Traversal {
	if !t.IsDeep() {
		return t
	}

	if t.depth > 1 {
		for _, key := range sortedKeys(t.children) {
			t.children[key].DeepFilter(keep)
		}

		return t
	}

	var discard []string

	for _, key := range sortedKeys(t.children) {
		if !keep(t.children[key], t.path[key]) {
			discard = append(discard, key)
		}
	}

	if len(discard) == 0 {
		return t
	}

	result := maps.Clone(t.result)

	for _, key := range discard {
		delete(result, key)
		delete(t.children, key)
	}

	t.result = result

	return t
}
