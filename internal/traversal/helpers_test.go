package traversal_test

import (
	"reflect"
	"testing"

	"github.com/persistorai/trv/internal/memgraph"
	"github.com/persistorai/trv/internal/models"
)

// newSocialGraph builds:
//
//	alice -knows-> bob -knows-> dave
//	alice -knows-> carol -knows-> dave
//	alice -works_at-> acme <-works_at- bob
func newSocialGraph(t *testing.T) *memgraph.Graph {
	t.Helper()

	g := memgraph.New()

	for _, n := range []models.CreateNodeRequest{
		{ID: "alice", Type: "person", Label: "Alice", Properties: map[string]any{"name": "Alice", "age": 30}},
		{ID: "bob", Type: "person", Label: "Bob", Properties: map[string]any{"name": "Bob", "age": 25}},
		{ID: "carol", Type: "person", Label: "Carol", Properties: map[string]any{"name": "Carol"}},
		{ID: "dave", Type: "person", Label: "Dave", Properties: map[string]any{"name": "Dave", "age": 40}},
		{ID: "acme", Type: "company", Label: "Acme", Properties: map[string]any{"name": "Acme"}},
	} {
		if _, err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode %s: %v", n.ID, err)
		}
	}

	for _, e := range []models.CreateEdgeRequest{
		{Source: "alice", Target: "bob", Relation: "knows"},
		{Source: "alice", Target: "carol", Relation: "knows"},
		{Source: "bob", Target: "dave", Relation: "knows"},
		{Source: "carol", Target: "dave", Relation: "knows"},
		{Source: "alice", Target: "acme", Relation: "works_at"},
		{Source: "bob", Target: "acme", Relation: "works_at"},
	} {
		if _, err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge %s: %v", e.Edge().Key(), err)
		}
	}

	return g
}

func assertKeys(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) == 0 && len(want) == 0 {
		return
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
}

func assertErrors(t *testing.T, got []error, want ...string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}

	for i := range want {
		if got[i].Error() != want[i] {
			t.Errorf("errors[%d] = %q, want %q", i, got[i].Error(), want[i])
		}
	}
}

// stubGraph answers from fixed tables; used where memgraph cannot produce
// the situation under test.
type stubGraph struct {
	nodes map[string]*models.Node
	out   map[string]map[string]string
	hops  map[string]string // edge key -> far node key; absent means unresolvable
}

func (s *stubGraph) HasNode(key string) bool {
	_, ok := s.nodes[key]
	return ok
}

func (s *stubGraph) GetNode(key string) (*models.Node, bool) {
	n, ok := s.nodes[key]
	return n, ok
}

func (s *stubGraph) GetNodeProp(nodeKey, prop string) (any, bool) {
	n, ok := s.nodes[nodeKey]
	if !ok {
		return nil, false
	}

	return n.Prop(prop)
}

func (s *stubGraph) InEKeys(string, string) map[string]string {
	return map[string]string{}
}

func (s *stubGraph) OutEKeys(nodeKey, _ string) map[string]string {
	return s.out[nodeKey]
}

func (s *stubGraph) Hop(edgeKey, _ string) (*models.Node, bool) {
	key, ok := s.hops[edgeKey]
	if !ok {
		return nil, false
	}

	return s.GetNode(key)
}
