// Package domain defines the contracts shared between the traversal engine,
// the graph implementations and the callers that drive traversals.
package domain

import (
	"context"

	"github.com/persistorai/trv/internal/models"
)

// Graph is the read-only graph a traversal walks. Implementations must
// answer synchronously and must not change while a traversal uses them.
type Graph interface {
	HasNode(key string) bool
	GetNode(key string) (*models.Node, bool)
	GetNodeProp(nodeKey, prop string) (any, bool)

	// InEKeys and OutEKeys map the key of each incoming or outgoing edge of
	// nodeKey to its label. An empty label matches every edge.
	InEKeys(nodeKey, label string) map[string]string
	OutEKeys(nodeKey, label string) map[string]string

	// Hop resolves the node at the far end of edgeKey as seen from fromNodeKey.
	Hop(edgeKey, fromNodeKey string) (*models.Node, bool)
}

// TraversalService executes traversal plans.
type TraversalService interface {
	Run(ctx context.Context, g Graph, plan models.Plan) (*models.RunResult, error)
}
