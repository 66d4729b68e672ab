// Package memgraph provides an in-memory domain.Graph with deterministic,
// key-ordered node and edge iteration.
package memgraph

import (
	"fmt"
	"sync"

	"github.com/tidwall/btree"

	"github.com/persistorai/trv/internal/domain"
	"github.com/persistorai/trv/internal/models"
)

// Compile-time check: *Graph must satisfy domain.Graph.
var _ domain.Graph = (*Graph)(nil)

// adjacency is one entry of an incidence index: edge key at a node.
type adjacency struct {
	node string
	key  string
}

func adjacencyLess(a, b adjacency) bool {
	if a.node != b.node {
		return a.node < b.node
	}

	return a.key < b.key
}

func nodeLess(a, b *models.Node) bool {
	return a.ID < b.ID
}

// Graph is an in-memory property graph. It is safe for concurrent use.
type Graph struct {
	mu    sync.RWMutex
	nodes *btree.BTreeG[*models.Node]
	edges map[string]*models.Edge
	out   *btree.BTreeG[adjacency]
	in    *btree.BTreeG[adjacency]
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: btree.NewBTreeG[*models.Node](nodeLess),
		edges: make(map[string]*models.Edge),
		out:   btree.NewBTreeG[adjacency](adjacencyLess),
		in:    btree.NewBTreeG[adjacency](adjacencyLess),
	}
}

// FromExport builds a Graph from a graph document.
func FromExport(doc *models.ExportFormat) (*Graph, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("validating graph document: %w", err)
	}

	g := New()

	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if _, err := g.AddNode(models.CreateNodeRequest{ID: n.ID, Type: n.Type, Label: n.Label, Properties: n.Properties}); err != nil {
			return nil, fmt.Errorf("adding node %s: %w", n.ID, err)
		}
	}

	for i := range doc.Edges {
		e := &doc.Edges[i]
		if _, err := g.AddEdge(models.CreateEdgeRequest{Source: e.Source, Target: e.Target, Relation: e.Relation, Properties: e.Properties}); err != nil {
			return nil, fmt.Errorf("adding edge %d: %w", i, err)
		}
	}

	return g, nil
}

// AddNode validates req and stores the node, replacing any node with the same ID.
func (g *Graph) AddNode(req models.CreateNodeRequest) (*models.Node, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := req.Node()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes.Set(n)

	return n, nil
}

// AddEdge validates req and stores the edge. Both endpoints must exist.
// An edge with the same source, relation and target is replaced.
func (g *Graph) AddEdge(req models.CreateEdgeRequest) (*models.Edge, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := req.Edge()

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range []string{e.Source, e.Target} {
		if _, ok := g.nodes.Get(&models.Node{ID: id}); !ok {
			return nil, fmt.Errorf("edge endpoint %s: %w", id, models.ErrNodeNotFound)
		}
	}

	key := e.Key()
	g.edges[key] = e
	g.out.Set(adjacency{node: e.Source, key: key})
	g.in.Set(adjacency{node: e.Target, key: key})

	return e, nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodes.Len()
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// NodeKeys returns every node key in ascending order.
func (g *Graph) NodeKeys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0, g.nodes.Len())
	g.nodes.Scan(func(n *models.Node) bool {
		keys = append(keys, n.ID)
		return true
	})

	return keys
}

// Edge returns the edge stored under key.
func (g *Graph) Edge(key string) (*models.Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.edges[key]

	return e, ok
}

// HasNode reports whether a node with key exists.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.GetNode(key)
	return ok
}

// GetNode returns the node with key.
func (g *Graph) GetNode(key string) (*models.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodes.Get(&models.Node{ID: key})
}

// GetNodeProp returns a node property, falling back to the node's id, type
// and label fields.
func (g *Graph) GetNodeProp(nodeKey, prop string) (any, bool) {
	n, ok := g.GetNode(nodeKey)
	if !ok {
		return nil, false
	}

	return n.Prop(prop)
}

// InEKeys maps each edge pointing into nodeKey, optionally filtered by label, to its label.
func (g *Graph) InEKeys(nodeKey, label string) map[string]string {
	return g.incident(g.in, nodeKey, label)
}

// OutEKeys maps each edge leaving nodeKey, optionally filtered by label, to its label.
func (g *Graph) OutEKeys(nodeKey, label string) map[string]string {
	return g.incident(g.out, nodeKey, label)
}

func (g *Graph) incident(index *btree.BTreeG[adjacency], nodeKey, label string) map[string]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[string]string)

	index.Ascend(adjacency{node: nodeKey}, func(a adjacency) bool {
		if a.node != nodeKey {
			return false
		}

		e := g.edges[a.key]
		if label == "" || e.Relation == label {
			out[a.key] = e.Relation
		}

		return true
	})

	return out
}

// Hop returns the node at the other end of edgeKey from fromNodeKey. A
// self-loop resolves to the node itself.
func (g *Graph) Hop(edgeKey, fromNodeKey string) (*models.Node, bool) {
	g.mu.RLock()
	e, ok := g.edges[edgeKey]
	g.mu.RUnlock()

	if !ok {
		return nil, false
	}

	switch fromNodeKey {
	case e.Source:
		return g.GetNode(e.Target)
	case e.Target:
		return g.GetNode(e.Source)
	default:
		return nil, false
	}
}
