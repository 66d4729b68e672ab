package traversal_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/persistorai/trv/internal/models"
	"github.com/persistorai/trv/internal/traversal"
)

func TestNew_DropsUnknownStarts(t *testing.T) {
	g := newSocialGraph(t)

	tests := []struct {
		name   string
		starts []string
		want   []string
	}{
		{name: "all known", starts: []string{"bob", "alice"}, want: []string{"alice", "bob"}},
		{name: "some unknown", starts: []string{"alice", "zed", "yan"}, want: []string{"alice"}},
		{name: "all unknown", starts: []string{"zed"}, want: nil},
		{name: "none", starts: nil, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trv := traversal.New(g, tc.starts...)

			assertKeys(t, trv.Keys(), tc.want)

			if trv.Size() != len(tc.want) {
				t.Errorf("Size() = %d, want %d", trv.Size(), len(tc.want))
			}

			if len(trv.Path()) != len(tc.want) {
				t.Errorf("len(Path()) = %d, want %d", len(trv.Path()), len(tc.want))
			}

			for _, k := range tc.want {
				if steps, ok := trv.Path()[k]; !ok || len(steps) != 0 {
					t.Errorf("Path()[%s] = %v, %v; want empty entry", k, steps, ok)
				}
			}

			if trv.IsDeep() || len(trv.Errors()) != 0 || len(trv.Cache()) != 0 {
				t.Errorf("new traversal not flat and empty: deep=%v errors=%v cache=%v", trv.IsDeep(), trv.Errors(), trv.Cache())
			}

			if trv.Graph() != g {
				t.Error("Graph() does not return the construction graph")
			}
		})
	}
}

func TestNewWithPath_InheritsPath(t *testing.T) {
	g := newSocialGraph(t)
	inherited := models.Path{
		"bob":   {{NodeKey: "alice", EdgeKey: "alice-[knows]->bob"}},
		"carol": {{NodeKey: "alice", EdgeKey: "alice-[knows]->carol"}},
	}

	trv := traversal.NewWithPath(g, inherited, "bob")

	want := models.Path{"bob": inherited["bob"]}
	if !reflect.DeepEqual(trv.Path(), want) {
		t.Errorf("Path() = %v, want %v", trv.Path(), want)
	}
}

func TestHop_Directions(t *testing.T) {
	g := newSocialGraph(t)

	tests := []struct {
		name  string
		start []string
		run   func(*traversal.Traversal) *traversal.Traversal
		want  []string
	}{
		{
			name:  "out with label",
			start: []string{"alice"},
			run:   func(t *traversal.Traversal) *traversal.Traversal { return t.OutV("knows", false) },
			want:  []string{"bob", "carol"},
		},
		{
			name:  "out without label",
			start: []string{"alice"},
			run:   func(t *traversal.Traversal) *traversal.Traversal { return t.OutV("", false) },
			want:  []string{"acme", "bob", "carol"},
		},
		{
			name:  "in with label",
			start: []string{"acme"},
			run:   func(t *traversal.Traversal) *traversal.Traversal { return t.InV("works_at", false) },
			want:  []string{"alice", "bob"},
		},
		{
			name:  "in on a root",
			start: []string{"alice"},
			run:   func(t *traversal.Traversal) *traversal.Traversal { return t.InV("", false) },
			want:  nil,
		},
		{
			name:  "unknown label",
			start: []string{"alice"},
			run:   func(t *traversal.Traversal) *traversal.Traversal { return t.OutV("hates", false) },
			want:  nil,
		},
		{
			name:  "two hops",
			start: []string{"alice"},
			run:   func(t *traversal.Traversal) *traversal.Traversal { return t.OutV("knows", false).OutV("knows", false) },
			want:  []string{"dave"},
		},
		{
			name:  "generic hop",
			start: []string{"dave"},
			run:   func(t *traversal.Traversal) *traversal.Traversal { return t.Hop(models.Incoming, "knows", false) },
			want:  []string{"bob", "carol"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trv := tc.run(traversal.New(g, tc.start...))
			assertKeys(t, trv.Keys(), tc.want)

			if len(trv.Path()) != trv.Size() {
				t.Errorf("path has %d entries for %d results", len(trv.Path()), trv.Size())
			}
		})
	}
}

func TestHop_RecordsPath(t *testing.T) {
	g := newSocialGraph(t)

	trv := traversal.New(g, "alice").OutV("knows", true)

	want := models.Path{
		"bob":   {{NodeKey: "alice", EdgeKey: "alice-[knows]->bob"}},
		"carol": {{NodeKey: "alice", EdgeKey: "alice-[knows]->carol"}},
	}
	if !reflect.DeepEqual(trv.Path(), want) {
		t.Errorf("Path() = %v, want %v", trv.Path(), want)
	}

	// Without recording, the source path is inherited unchanged.
	trv.OutV("works_at", false)

	want = models.Path{"acme": {{NodeKey: "alice", EdgeKey: "alice-[knows]->bob"}}}
	if !reflect.DeepEqual(trv.Path(), want) {
		t.Errorf("Path() = %v, want %v", trv.Path(), want)
	}
}

func TestHop_ConvergingEdgesLastWriterWins(t *testing.T) {
	g := newSocialGraph(t)

	trv := traversal.New(g, "alice").OutV("knows", true).OutV("knows", true)

	assertKeys(t, trv.Keys(), []string{"dave"})

	// bob and carol both reach dave; carol is visited last.
	want := []models.Step{
		{NodeKey: "alice", EdgeKey: "alice-[knows]->carol"},
		{NodeKey: "carol", EdgeKey: "carol-[knows]->dave"},
	}
	if got := trv.Path()["dave"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Path()[dave] = %v, want %v", got, want)
	}
}

func TestHop_RoundTripDoesNotRestoreFrontier(t *testing.T) {
	g := newSocialGraph(t)

	trv := traversal.New(g, "bob").OutV("knows", false).InV("knows", false)

	// dave is known by bob and carol, so the way back finds both.
	assertKeys(t, trv.Keys(), []string{"bob", "carol"})
}

func TestHop_SkipsUnresolvableEdges(t *testing.T) {
	g := &stubGraph{
		nodes: map[string]*models.Node{
			"a": {ID: "a"},
			"b": {ID: "b"},
		},
		out: map[string]map[string]string{
			"a": {"e1": "x", "e2": "x"},
		},
		hops: map[string]string{"e2": "b"},
	}

	trv := traversal.New(g, "a").OutV("x", true)

	assertKeys(t, trv.Keys(), []string{"b"})

	want := []models.Step{{NodeKey: "a", EdgeKey: "e2"}}
	if got := trv.Path()["b"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Path()[b] = %v, want %v", got, want)
	}
}

func TestHop_DoesNotShareStepSlices(t *testing.T) {
	g := newSocialGraph(t)

	trv := traversal.New(g, "alice").OutV("knows", true)
	before := trv.Path()
	bobSteps := append([]models.Step(nil), before["bob"]...)

	trv.OutV("", true)

	if !reflect.DeepEqual(before["bob"], bobSteps) {
		t.Errorf("earlier path snapshot changed: %v, want %v", before["bob"], bobSteps)
	}

	if len(trv.Path()["acme"]) != 2 || len(trv.Path()["dave"]) != 2 {
		t.Errorf("Path() after second hop = %v", trv.Path())
	}
}

func TestSnapshotsAreStable(t *testing.T) {
	g := newSocialGraph(t)

	trv := traversal.New(g, "alice")
	result := trv.Result()
	cache := trv.Cache()

	trv.ShallowSave("name").OutV("knows", false).ShallowSave("name")

	if len(result) != 1 || result["alice"] == nil {
		t.Errorf("result snapshot changed: %v", result)
	}

	if len(cache) != 0 {
		t.Errorf("cache snapshot changed: %v", cache)
	}

	want := models.Cache{
		"alice": {"name": "Alice"},
		"bob":   {"name": "Bob"},
		"carol": {"name": "Carol"},
	}
	if !reflect.DeepEqual(trv.Cache(), want) {
		t.Errorf("Cache() = %v, want %v", trv.Cache(), want)
	}
}

func TestShallowFilter(t *testing.T) {
	g := newSocialGraph(t)

	trv := traversal.New(g, "alice").OutV("", true).ShallowFilter(func(n *models.Node, path []models.Step) bool {
		return n.Type == "person" && len(path) == 1
	})

	assertKeys(t, trv.Keys(), []string{"bob", "carol"})

	if _, ok := trv.Path()["acme"]; ok {
		t.Error("path entry of filtered node acme was kept")
	}
}

func TestShallowSave(t *testing.T) {
	g := newSocialGraph(t)

	tests := []struct {
		name      string
		start     []string
		keys      []string
		wantCache models.Cache
		wantErrs  []string
	}{
		{
			name:      "plain key",
			start:     []string{"alice", "bob"},
			keys:      []string{"age"},
			wantCache: models.Cache{"alice": {"age": 30}, "bob": {"age": 25}},
		},
		{
			name:      "missing property",
			start:     []string{"carol"},
			keys:      []string{"age"},
			wantCache: models.Cache{},
			wantErrs:  []string{"Key age not found for node carol"},
		},
		{
			name:      "missing does not stop other keys",
			start:     []string{"bob", "carol"},
			keys:      []string{"age", "name"},
			wantCache: models.Cache{"bob": {"age": 25, "name": "Bob"}, "carol": {"name": "Carol"}},
			wantErrs:  []string{"Key age not found for node carol"},
		},
		{
			name:      "rename",
			start:     []string{"alice"},
			keys:      []string{"name::who"},
			wantCache: models.Cache{"alice": {"who": "Alice"}},
		},
		{
			name:      "rename ignores extra segments",
			start:     []string{"alice"},
			keys:      []string{"age::years::ignored"},
			wantCache: models.Cache{"alice": {"years": 30}},
		},
		{
			name:      "rename reports the source key",
			start:     []string{"carol"},
			keys:      []string{"age::years"},
			wantCache: models.Cache{},
			wantErrs:  []string{"Key age not found for node carol"},
		},
		{
			name:      "reserved fields",
			start:     []string{"acme"},
			keys:      []string{"type", "label::title"},
			wantCache: models.Cache{"acme": {"type": "company", "title": "Acme"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trv := traversal.New(g, tc.start...).ShallowSave(tc.keys...)

			if !reflect.DeepEqual(trv.Cache(), tc.wantCache) {
				t.Errorf("Cache() = %v, want %v", trv.Cache(), tc.wantCache)
			}

			assertErrors(t, trv.Errors(), tc.wantErrs...)
		})
	}
}

func TestShallowSave_RenameLeavesTargetPropertyAlone(t *testing.T) {
	g := newSocialGraph(t)

	// bob has a real "name" property; saving age under "name" must not read it.
	trv := traversal.New(g, "bob").ShallowSave("age::name")

	want := models.Cache{"bob": {"name": 25}}
	if !reflect.DeepEqual(trv.Cache(), want) {
		t.Errorf("Cache() = %v, want %v", trv.Cache(), want)
	}

	if v, _ := g.GetNodeProp("bob", "name"); v != "Bob" {
		t.Errorf("graph property name = %v, want Bob", v)
	}
}

func TestShallowSave_MissingPropertyErrorType(t *testing.T) {
	g := newSocialGraph(t)

	trv := traversal.New(g, "carol").ShallowSave("age")

	var mpe *traversal.MissingPropertyError
	if !errors.As(trv.Errors()[0], &mpe) {
		t.Fatalf("error %T is not *MissingPropertyError", trv.Errors()[0])
	}

	if mpe.Key != "age" || mpe.NodeKey != "carol" {
		t.Errorf("MissingPropertyError = %+v", mpe)
	}

	got := traversal.ErrorStrings(trv.Errors())
	if !reflect.DeepEqual(got, []string{"Key age not found for node carol"}) {
		t.Errorf("ErrorStrings() = %v", got)
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key, wantOld, wantNew string
	}{
		{key: "name", wantOld: "name", wantNew: "name"},
		{key: "name::who", wantOld: "name", wantNew: "who"},
		{key: "a::b::c", wantOld: "a", wantNew: "b"},
		{key: "a::", wantOld: "a", wantNew: ""},
		{key: "a:b", wantOld: "a:b", wantNew: "a:b"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			gotOld, gotNew := traversal.ParseKey(tc.key)
			if gotOld != tc.wantOld || gotNew != tc.wantNew {
				t.Errorf("ParseKey(%q) = %q, %q; want %q, %q", tc.key, gotOld, gotNew, tc.wantOld, tc.wantNew)
			}
		})
	}
}
