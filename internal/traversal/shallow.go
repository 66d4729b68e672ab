package traversal

import (
	"strings"

	"github.com/persistorai/trv/internal/models"
)

// KeySeparator splits a save key into the property read and the name saved.
const KeySeparator = "::"

// NodePredicate decides whether a node stays in the frontier.
type NodePredicate func(node *models.Node, path []models.Step) bool

// ParseKey splits a save key of the form "name" or "old::new". Segments
// after the second are ignored.
func ParseKey(key string) (oldKey, newKey string) {
	parts := strings.Split(key, KeySeparator)
	if len(parts) == 1 {
		return parts[0], parts[0]
	}

	return parts[0], parts[1]
}

// ShallowFilter keeps the leaf frontier nodes for which keep returns true.
// The path entries of dropped nodes are removed as well.
func (t *Traversal) ShallowFilter(keep NodePredicate) *Traversal {
	if t.IsDeep() {
		for _, key := range sortedKeys(t.children) {
			t.children[key].ShallowFilter(keep)
		}

		return t
	}

	result := make(models.Result, len(t.result))
	path := make(models.Path, len(t.result))

	for _, key := range sortedKeys(t.result) {
		node := t.result[key]
		if !keep(node, t.path[key]) {
			continue
		}

		result[key] = node
		path[key] = t.path[key]
	}

	t.result = result
	t.path = path

	return t
}

// ShallowSave copies node properties of the leaf frontier into the cache.
// Each key is parsed with ParseKey. A property the graph does not have is
// recorded as a *MissingPropertyError and nothing is saved for it.
func (t *Traversal) ShallowSave(keys ...string) *Traversal {
	if t.IsDeep() {
		for _, key := range sortedKeys(t.children) {
			t.children[key].ShallowSave(keys...)
		}

		return t
	}

	edit := newCacheEdit(t.cache)

	for _, nodeKey := range sortedKeys(t.result) {
		for _, key := range keys {
			oldKey, newKey := ParseKey(key)

			value, ok := t.graph.GetNodeProp(nodeKey, oldKey)
			if !ok {
				t.addError(&MissingPropertyError{Key: oldKey, NodeKey: nodeKey})
				continue
			}

			edit.set(nodeKey, newKey, value)
		}
	}

	t.cache = edit.done()

	return t
}
