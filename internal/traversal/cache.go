package traversal

import (
	"maps"
	"slices"

	"github.com/persistorai/trv/internal/models"
)

// cacheEdit applies writes to a copy of a cache. The top-level map and each
// touched node entry are copied once, so the original stays unchanged.
type cacheEdit struct {
	base   models.Cache
	out    models.Cache
	copied map[string]bool
}

func newCacheEdit(base models.Cache) *cacheEdit {
	return &cacheEdit{base: base}
}

func (e *cacheEdit) set(nodeKey, name string, value any) {
	if e.out == nil {
		e.out = make(models.Cache, len(e.base)+1)
		maps.Copy(e.out, e.base)
		e.copied = make(map[string]bool)
	}

	if !e.copied[nodeKey] {
		entry := make(map[string]any, len(e.out[nodeKey])+1)
		maps.Copy(entry, e.out[nodeKey])
		e.out[nodeKey] = entry
		e.copied[nodeKey] = true
	}

	e.out[nodeKey][name] = value
}

// done returns the edited cache, or the base when nothing was written.
func (e *cacheEdit) done() models.Cache {
	if e.out == nil {
		return e.base
	}

	return e.out
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
