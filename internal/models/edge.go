package models

import (
	"fmt"
	"strings"
)

// Edge represents a directed, labeled relationship between two nodes.
type Edge struct {
	Source     string         `json:"source" yaml:"source"`
	Target     string         `json:"target" yaml:"target"`
	Relation   string         `json:"relation" yaml:"relation"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// EdgeKey returns the key identifying the edge source-[relation]->target.
func EdgeKey(source, relation, target string) string {
	return source + "-[" + relation + "]->" + target
}

// Key returns the edge key.
func (e *Edge) Key() string {
	return EdgeKey(e.Source, e.Relation, e.Target)
}

// String implements fmt.Stringer.
func (e *Edge) String() string {
	return e.Key()
}

// CreateEdgeRequest is the payload for adding an edge to a graph.
type CreateEdgeRequest struct {
	Source     string         `json:"source" yaml:"source"`
	Target     string         `json:"target" yaml:"target"`
	Relation   string         `json:"relation" yaml:"relation"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Validate checks that required fields are present and within limits.
func (r *CreateEdgeRequest) Validate() error {
	if r.Source == "" {
		return ErrMissingSource
	}

	if len(r.Source) > 255 {
		return ErrFieldTooLong("source", 255)
	}

	if r.Target == "" {
		return ErrMissingTarget
	}

	if len(r.Target) > 255 {
		return ErrFieldTooLong("target", 255)
	}

	if r.Relation == "" {
		return ErrMissingRelation
	}

	if len(r.Relation) > 255 {
		return ErrFieldTooLong("relation", 255)
	}

	// The key format must stay unambiguous.
	if strings.ContainsAny(r.Relation, "[]") {
		return fmt.Errorf("relation must not contain brackets, got %q", r.Relation)
	}

	return nil
}

// Edge builds the Edge described by the request.
func (r *CreateEdgeRequest) Edge() *Edge {
	return &Edge{Source: r.Source, Target: r.Target, Relation: r.Relation, Properties: r.Properties}
}
