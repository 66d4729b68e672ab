// Package traversal evaluates incremental traversals over a domain.Graph.
//
// A Traversal holds a frontier of reached nodes with per-node provenance
// paths, a cache of saved output and a log of non-fatal errors. Deepen
// branches the traversal into one child Traversal per reached node, so
// chained operations build a tree-shaped result that mirrors nested
// selections. Flatten folds the deepest level back.
//
// A Traversal is either flat or nested. Hops, shallow filters and shallow
// saves always descend to the flat leaves. Deep saves, deep filters and
// flatten act on the deepest nested level only.
//
// Every mutating method changes the receiver and returns it for chaining.
// Result, Path and Cache snapshots returned by accessors are never modified
// afterwards; operations install new maps instead. A Traversal is not safe
// for concurrent use.
package traversal

import (
	"github.com/persistorai/trv/internal/domain"
	"github.com/persistorai/trv/internal/models"
)

// Traversal is one level of a traversal tree.
type Traversal struct {
	graph  domain.Graph
	result models.Result
	path   models.Path
	cache  models.Cache
	errors []error

	// children is keyed by result node key and is only set while nested.
	children map[string]*Traversal

	// depth is the number of nested levels below this one; 0 means flat.
	// Every child of a nested traversal has depth one less than its parent.
	depth int
}

// New creates a flat Traversal whose frontier is every start key present in g.
// Keys g does not contain are dropped.
func New(g domain.Graph, starts ...string) *Traversal {
	return NewWithPath(g, nil, starts...)
}

// NewWithPath is New with an inherited path map. When inherited is empty
// each reached start key gets an empty path; otherwise each reached key takes
// its entry from inherited.
func NewWithPath(g domain.Graph, inherited models.Path, starts ...string) *Traversal {
	result := make(models.Result, len(starts))

	for _, key := range starts {
		if !g.HasNode(key) {
			continue
		}

		if node, ok := g.GetNode(key); ok {
			result[key] = node
		}
	}

	path := make(models.Path, len(result))

	for key := range result {
		if len(inherited) > 0 {
			path[key] = inherited[key]
		} else {
			path[key] = []models.Step{}
		}
	}

	return &Traversal{
		graph:  g,
		result: result,
		path:   path,
		cache:  models.Cache{},
	}
}

// IsDeep reports whether the traversal is nested.
func (t *Traversal) IsDeep() bool {
	return t.depth > 0
}

// IsVeryDeep reports whether the traversal is nested and its first child,
// in key order, is nested too. It is false for a nested traversal without
// children.
func (t *Traversal) IsVeryDeep() bool {
	if !t.IsDeep() || len(t.children) == 0 {
		return false
	}

	return t.children[sortedKeys(t.children)[0]].IsDeep()
}

// Depth returns the number of nested levels below this traversal.
func (t *Traversal) Depth() int {
	return t.depth
}

// Size returns the number of nodes in the frontier.
func (t *Traversal) Size() int {
	return len(t.result)
}

// Result returns the current frontier.
func (t *Traversal) Result() models.Result {
	return t.result
}

// Keys returns the frontier's node keys in ascending order.
func (t *Traversal) Keys() []string {
	return sortedKeys(t.result)
}

// Path returns the provenance path of every node in the frontier.
func (t *Traversal) Path() models.Path {
	return t.path
}

// Cache returns the data saved so far.
func (t *Traversal) Cache() models.Cache {
	return t.cache
}

// Graph returns the graph the traversal walks.
func (t *Traversal) Graph() domain.Graph {
	return t.graph
}

// Errors returns the non-fatal errors recorded at this level.
func (t *Traversal) Errors() []error {
	return t.errors
}

// Child returns the sub-traversal rooted at nodeKey while nested.
func (t *Traversal) Child(nodeKey string) (*Traversal, bool) {
	c, ok := t.children[nodeKey]
	return c, ok
}

// ChildKeys returns the keys of the sub-traversals in ascending order.
func (t *Traversal) ChildKeys() []string {
	return sortedKeys(t.children)
}

func (t *Traversal) addError(err error) {
	t.errors = append(t.errors, err)
}
