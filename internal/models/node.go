// Package models defines data types for graph traversal.
package models

import (
	"encoding/json"
	"fmt"
)

// Reserved node fields that resolve as properties when not shadowed.
const (
	FieldID    = "id"
	FieldType  = "type"
	FieldLabel = "label"
)

// Node represents a vertex in the graph. Its ID is the node key.
type Node struct {
	ID         string         `json:"id" yaml:"id"`
	Type       string         `json:"type" yaml:"type"`
	Label      string         `json:"label" yaml:"label"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// Key returns the node key.
func (n *Node) Key() string {
	return n.ID
}

// Prop returns a named property. Properties shadow the reserved fields
// id, type and label.
func (n *Node) Prop(name string) (any, bool) {
	if v, ok := n.Properties[name]; ok {
		return v, true
	}

	switch name {
	case FieldID:
		return n.ID, true
	case FieldType:
		return n.Type, true
	case FieldLabel:
		return n.Label, true
	}

	return nil, false
}

// CreateNodeRequest is the payload for adding a node to a graph.
type CreateNodeRequest struct {
	ID         string         `json:"id" yaml:"id"`
	Type       string         `json:"type" yaml:"type"`
	Label      string         `json:"label" yaml:"label"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Validate checks that required fields are present and within limits.
func (r *CreateNodeRequest) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}

	if len(r.ID) > 255 {
		return ErrFieldTooLong("id", 255)
	}

	if r.Type == "" {
		return ErrMissingType
	}

	if len(r.Type) > 100 {
		return ErrFieldTooLong("type", 100)
	}

	if len(r.Label) > 10000 {
		return ErrFieldTooLong("label", 10000)
	}

	if r.Properties != nil {
		data, err := json.Marshal(r.Properties)
		if err != nil {
			return fmt.Errorf("invalid properties: %w", err)
		}
		if len(data) > 65536 {
			return ErrFieldTooLong("properties", 65536)
		}
	}

	return nil
}

// Node builds the Node described by the request.
func (r *CreateNodeRequest) Node() *Node {
	props := make(map[string]any, len(r.Properties))
	for k, v := range r.Properties {
		props[k] = v
	}

	return &Node{ID: r.ID, Type: r.Type, Label: r.Label, Properties: props}
}
