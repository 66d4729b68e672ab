package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/trv/internal/memgraph"
	"github.com/persistorai/trv/internal/metrics"
	"github.com/persistorai/trv/internal/models"
)

// Snapshot queries. Superseded nodes are left out; edges touching them are
// skipped when added.
const (
	snapshotNodeSQL = `SELECT id, type, label, properties FROM kg_nodes
		WHERE tenant_id = current_setting('app.tenant_id')::uuid AND superseded_by IS NULL
		ORDER BY id`

	snapshotEdgeSQL = `SELECT source, target, relation, properties FROM kg_edges
		WHERE tenant_id = current_setting('app.tenant_id')::uuid
		ORDER BY source, relation, target`
)

// SnapshotStats reports what a snapshot load read.
type SnapshotStats struct {
	Nodes        int
	Edges        int
	SkippedEdges int
}

// SnapshotStore reads a tenant's whole graph into memory.
type SnapshotStore struct {
	Base
}

// NewSnapshotStore creates a SnapshotStore with the given shared base.
func NewSnapshotStore(base Base) *SnapshotStore {
	return &SnapshotStore{Base: base}
}

// Load reads every live node and edge of tenantID in one read-only
// transaction and returns them as an in-memory graph.
func (s *SnapshotStore) Load(ctx context.Context, tenantID string) (*memgraph.Graph, *SnapshotStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading snapshot: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	g := memgraph.New()
	stats := &SnapshotStats{}

	if err := s.loadNodes(ctx, tx, g, stats); err != nil {
		return nil, nil, err
	}

	if err := s.loadEdges(ctx, tx, g, stats); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("committing snapshot: %w", err)
	}

	metrics.GraphNodes.Set(float64(stats.Nodes))
	metrics.GraphEdges.Set(float64(stats.Edges))

	s.Log.WithFields(logrus.Fields{
		"tenant_id":     tenantID,
		"nodes":         stats.Nodes,
		"edges":         stats.Edges,
		"skipped_edges": stats.SkippedEdges,
	}).Info("snapshot.loaded")

	return g, stats, nil
}

func (s *SnapshotStore) loadNodes(ctx context.Context, tx pgx.Tx, g *memgraph.Graph, stats *SnapshotStats) error {
	rows, err := tx.Query(ctx, snapshotNodeSQL)
	if err != nil {
		return fmt.Errorf("querying snapshot nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var req models.CreateNodeRequest
		var props []byte

		if err := rows.Scan(&req.ID, &req.Type, &req.Label, &props); err != nil {
			return fmt.Errorf("scanning snapshot node: %w", err)
		}

		req.Properties, err = decodeProperties(props)
		if err != nil {
			return fmt.Errorf("node %s: %w", req.ID, err)
		}

		if _, err := g.AddNode(req); err != nil {
			return fmt.Errorf("adding node %s: %w", req.ID, err)
		}

		stats.Nodes++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating snapshot nodes: %w", err)
	}

	return nil
}

func (s *SnapshotStore) loadEdges(ctx context.Context, tx pgx.Tx, g *memgraph.Graph, stats *SnapshotStats) error {
	rows, err := tx.Query(ctx, snapshotEdgeSQL)
	if err != nil {
		return fmt.Errorf("querying snapshot edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var req models.CreateEdgeRequest
		var props []byte

		if err := rows.Scan(&req.Source, &req.Target, &req.Relation, &props); err != nil {
			return fmt.Errorf("scanning snapshot edge: %w", err)
		}

		req.Properties, err = decodeProperties(props)
		if err != nil {
			return fmt.Errorf("edge %s: %w", req.Edge().Key(), err)
		}

		if _, err := g.AddEdge(req); err != nil {
			if !errors.Is(err, models.ErrNodeNotFound) {
				return fmt.Errorf("adding edge %s: %w", req.Edge().Key(), err)
			}

			s.Log.WithField("edge", req.Edge().Key()).Debug("snapshot.edge_skipped")
			stats.SkippedEdges++

			continue
		}

		stats.Edges++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating snapshot edges: %w", err)
	}

	return nil
}

// decodeProperties parses a JSONB properties value. NULL and empty values
// decode to an empty map.
func decodeProperties(raw []byte) (map[string]any, error) {
	props := map[string]any{}
	if len(raw) == 0 {
		return props, nil
	}

	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("unmarshalling properties: %w", err)
	}

	if props == nil {
		return map[string]any{}, nil
	}

	if _, ok := props["_enc"]; ok {
		return nil, ErrEncryptedProperties
	}

	return props, nil
}
