package models

// Step is one hop taken during a traversal: the node left and the edge used.
type Step struct {
	NodeKey string `json:"node_key" yaml:"node_key"`
	EdgeKey string `json:"edge_key" yaml:"edge_key"`
}

// Path maps a reached node key to the steps that led to it.
type Path map[string][]Step

// Result maps a reached node key to its node.
type Result map[string]*Node

// Cache is the tree-shaped output of save operations: node key to a map of
// saved names to values. A value saved by a nested save is itself a Cache.
type Cache map[string]map[string]any

// Direction selects which edges of a node a hop follows.
type Direction int

// Hop directions.
const (
	Outgoing Direction = iota
	Incoming
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Incoming {
		return "in"
	}

	return "out"
}

// RunResult is the outcome of executing a Plan.
type RunResult struct {
	Result []string `json:"result"`
	Paths  Path     `json:"paths"`
	Cache  Cache    `json:"cache"`
	Errors []string `json:"errors"`
	Depth  int      `json:"depth"`
}
