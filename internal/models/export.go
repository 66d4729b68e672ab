package models

import (
	"fmt"
	"time"
)

// ExportFormat is the top-level structure of a graph document. It matches
// the persistor export file so exports can be traversed directly.
type ExportFormat struct {
	SchemaVersion    int          `json:"schema_version" yaml:"schema_version"`
	PersistorVersion string       `json:"persistor_version,omitempty" yaml:"persistor_version,omitempty"`
	ExportedAt       time.Time    `json:"exported_at" yaml:"exported_at"`
	TenantID         string       `json:"tenant_id,omitempty" yaml:"tenant_id,omitempty"`
	Stats            ExportStats  `json:"stats" yaml:"stats"`
	Nodes            []ExportNode `json:"nodes" yaml:"nodes"`
	Edges            []ExportEdge `json:"edges" yaml:"edges"`
}

// ExportStats summarises the contents of a graph document.
type ExportStats struct {
	NodeCount int `json:"node_count" yaml:"node_count"`
	EdgeCount int `json:"edge_count" yaml:"edge_count"`
}

// ExportNode is the portable representation of a node.
type ExportNode struct {
	ID         string         `json:"id" yaml:"id"`
	Type       string         `json:"type" yaml:"type"`
	Label      string         `json:"label" yaml:"label"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// ExportEdge is the portable representation of an edge.
type ExportEdge struct {
	Source     string         `json:"source" yaml:"source"`
	Target     string         `json:"target" yaml:"target"`
	Relation   string         `json:"relation" yaml:"relation"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// Validate reports the first structural problem in the document.
// Stats are advisory and only checked when non-zero.
func (f *ExportFormat) Validate() error {
	if f.Stats.NodeCount != 0 && f.Stats.NodeCount != len(f.Nodes) {
		return fmt.Errorf("stats.node_count is %d but document has %d nodes", f.Stats.NodeCount, len(f.Nodes))
	}

	if f.Stats.EdgeCount != 0 && f.Stats.EdgeCount != len(f.Edges) {
		return fmt.Errorf("stats.edge_count is %d but document has %d edges", f.Stats.EdgeCount, len(f.Edges))
	}

	seen := make(map[string]bool, len(f.Nodes))

	for i := range f.Nodes {
		n := &f.Nodes[i]
		req := CreateNodeRequest{ID: n.ID, Type: n.Type, Label: n.Label, Properties: n.Properties}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}

		if seen[n.ID] {
			return fmt.Errorf("node %d: duplicate id %q", i, n.ID)
		}

		seen[n.ID] = true
	}

	for i := range f.Edges {
		e := &f.Edges[i]
		req := CreateEdgeRequest{Source: e.Source, Target: e.Target, Relation: e.Relation}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("edge %d: %w", i, err)
		}

		if !seen[e.Source] || !seen[e.Target] {
			return fmt.Errorf("edge %d (%s): %w", i, EdgeKey(e.Source, e.Relation, e.Target), ErrNodeNotFound)
		}
	}

	return nil
}
