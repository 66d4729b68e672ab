package traversal

import "github.com/persistorai/trv/internal/models"

// InV moves the frontier backwards along incoming edges with the given label
// ("" for any). When rememberPath is set each hop is recorded in the path.
func (t *Traversal) InV(label string, rememberPath bool) *Traversal {
	return t.Hop(models.Incoming, label, rememberPath)
}

// OutV moves the frontier forwards along outgoing edges with the given label
// ("" for any). When rememberPath is set each hop is recorded in the path.
func (t *Traversal) OutV(label string, rememberPath bool) *Traversal {
	return t.Hop(models.Outgoing, label, rememberPath)
}

// Hop replaces the frontier with the nodes one edge away in direction dir.
// While nested it hops inside every leaf instead.
//
// Sources are visited in key order and their edges in edge key order. When
// several edges reach the same node the last one visited determines that
// node's path.
func (t *Traversal) Hop(dir models.Direction, label string, rememberPath bool) *Traversal {
	if t.IsDeep() {
		for _, key := range sortedKeys(t.children) {
			t.children[key].Hop(dir, label, rememberPath)
		}

		return t
	}

	result := make(models.Result, len(t.result))
	path := make(models.Path, len(t.result))

	for _, aKey := range sortedKeys(t.result) {
		edges := t.edgeKeys(dir, aKey, label)

		for _, edgeKey := range sortedKeys(edges) {
			b, ok := t.graph.Hop(edgeKey, aKey)
			if !ok || b == nil {
				continue
			}

			bKey := b.Key()
			result[bKey] = b

			if rememberPath {
				path[bKey] = appendStep(t.path[aKey], models.Step{NodeKey: aKey, EdgeKey: edgeKey})
			} else {
				path[bKey] = t.path[aKey]
			}
		}
	}

	t.result = result
	t.path = path

	return t
}

func (t *Traversal) edgeKeys(dir models.Direction, nodeKey, label string) map[string]string {
	if dir == models.Incoming {
		return t.graph.InEKeys(nodeKey, label)
	}

	return t.graph.OutEKeys(nodeKey, label)
}

// appendStep returns steps followed by s without sharing steps' backing array.
func appendStep(steps []models.Step, s models.Step) []models.Step {
	out := make([]models.Step, len(steps), len(steps)+1)
	copy(out, steps)

	return append(out, s)
}
