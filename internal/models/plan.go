package models

import (
	"fmt"
)

// Op names a traversal operation in a Plan.
type Op string

// Plan operations.
const (
	OpInV           Op = "inV"
	OpOutV          Op = "outV"
	OpDeepen        Op = "deepen"
	OpFlatten       Op = "flatten"
	OpShallowSave   Op = "shallowSave"
	OpDeepSave      Op = "deepSave"
	OpShallowFilter Op = "shallowFilter"
	OpDeepFilter    Op = "deepFilter"
)

// Plan is an ordered list of traversal operations applied from a start set.
type Plan struct {
	Start []string   `json:"start" yaml:"start"`
	Steps []PlanStep `json:"steps" yaml:"steps"`
}

// PlanStep is a single operation with its op-specific arguments.
type PlanStep struct {
	Op           Op             `json:"op" yaml:"op"`
	Label        string         `json:"label,omitempty" yaml:"label,omitempty"`
	RememberPath bool           `json:"remember_path,omitempty" yaml:"remember_path,omitempty"`
	Keys         []string       `json:"keys,omitempty" yaml:"keys,omitempty"`
	Name         string         `json:"name,omitempty" yaml:"name,omitempty"`
	Where        *NodeCondition `json:"where,omitempty" yaml:"where,omitempty"`
	MinSize      *int           `json:"min_size,omitempty" yaml:"min_size,omitempty"`
	MaxSize      *int           `json:"max_size,omitempty" yaml:"max_size,omitempty"`
}

// NodeCondition is a conjunction of checks against a node and its path.
// Zero-valued fields are not checked.
type NodeCondition struct {
	Prop    string `json:"prop,omitempty" yaml:"prop,omitempty"`
	Equals  any    `json:"equals,omitempty" yaml:"equals,omitempty"`
	Exists  *bool  `json:"exists,omitempty" yaml:"exists,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	MinPath int    `json:"min_path,omitempty" yaml:"min_path,omitempty"`
}

// Match reports whether node and path satisfy every set check.
// Equals compares printed values so 3 and 3.0 decoded from different
// document formats compare equal.
func (c *NodeCondition) Match(node *Node, path []Step) bool {
	if c.Type != "" && node.Type != c.Type {
		return false
	}

	if len(path) < c.MinPath {
		return false
	}

	if c.Prop == "" {
		return true
	}

	v, ok := node.Prop(c.Prop)
	if c.Exists != nil && ok != *c.Exists {
		return false
	}

	if c.Equals != nil {
		return ok && fmt.Sprint(v) == fmt.Sprint(c.Equals)
	}

	return c.Exists != nil || ok
}

// Depth returns the nesting depth reached after all steps, assuming each
// flatten on a flat traversal is a no-op.
func (p *Plan) Depth() int {
	depth := 0

	for _, s := range p.Steps {
		switch s.Op {
		case OpDeepen:
			depth++
		case OpFlatten:
			if depth > 0 {
				depth--
			}
		}
	}

	return depth
}

// Validate checks the plan's start set, every step's arguments and that
// nesting never exceeds maxDepth.
func (p *Plan) Validate(maxDepth int) error {
	if len(p.Start) == 0 {
		return ErrMissingStart
	}

	for i, k := range p.Start {
		if k == "" {
			return fmt.Errorf("start key %d is empty: %w", i, ErrMissingID)
		}
	}

	depth := 0

	for i := range p.Steps {
		s := &p.Steps[i]

		if err := s.validate(i); err != nil {
			return err
		}

		switch s.Op {
		case OpDeepen:
			depth++
			if depth > maxDepth {
				return stepError(i, s.Op, "nesting depth %d exceeds maximum %d", depth, maxDepth)
			}
		case OpFlatten:
			if depth > 0 {
				depth--
			}
		}
	}

	return nil
}

func (s *PlanStep) validate(i int) error { //nolint:gocyclo,cyclop // one branch per op.
	switch s.Op {
	case OpInV, OpOutV:
		if len(s.Label) > 255 {
			return stepError(i, s.Op, "%v", ErrFieldTooLong("label", 255))
		}
	case OpDeepen, OpFlatten:
	case OpShallowSave:
		if len(s.Keys) == 0 {
			return stepError(i, s.Op, "keys are required")
		}

		for _, k := range s.Keys {
			if k == "" {
				return stepError(i, s.Op, "keys must not be empty")
			}
		}
	case OpDeepSave:
		if s.Name == "" {
			return stepError(i, s.Op, "name is required")
		}
	case OpShallowFilter:
		if s.Where == nil {
			return stepError(i, s.Op, "where is required")
		}

		if s.Where.Prop == "" && (s.Where.Equals != nil || s.Where.Exists != nil) {
			return stepError(i, s.Op, "where.prop is required with equals or exists")
		}

		if s.Where.MinPath < 0 {
			return stepError(i, s.Op, "where.min_path must not be negative")
		}
	case OpDeepFilter:
		if s.MinSize == nil && s.MaxSize == nil {
			return stepError(i, s.Op, "min_size or max_size is required")
		}

		if (s.MinSize != nil && *s.MinSize < 0) || (s.MaxSize != nil && *s.MaxSize < 0) {
			return stepError(i, s.Op, "sizes must not be negative")
		}

		if s.MinSize != nil && s.MaxSize != nil && *s.MinSize > *s.MaxSize {
			return stepError(i, s.Op, "min_size %d exceeds max_size %d", *s.MinSize, *s.MaxSize)
		}
	default:
		return stepError(i, s.Op, "unknown op")
	}

	return nil
}
