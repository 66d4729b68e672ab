package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/persistorai/trv/internal/config"
	"github.com/persistorai/trv/internal/dbpool"
	"github.com/persistorai/trv/internal/memgraph"
	"github.com/persistorai/trv/internal/metrics"
	"github.com/persistorai/trv/internal/models"
	"github.com/persistorai/trv/internal/store"
)

// readDocument decodes a JSON or YAML file into v, chosen by extension.
func readDocument(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied document path.
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}

	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}

func readPlan(path string) (*models.Plan, error) {
	var plan models.Plan
	if err := readDocument(path, &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

// loadGraph builds the graph from the configured source.
func loadGraph(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*memgraph.Graph, error) {
	switch cfg.GraphSource {
	case config.SourcePostgres:
		pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		g, _, err := store.NewSnapshotStore(store.Base{Pool: pool, Log: log}).Load(ctx, cfg.TenantID)

		return g, err
	default:
		var doc models.ExportFormat
		if err := readDocument(cfg.GraphFile, &doc); err != nil {
			return nil, err
		}

		g, err := memgraph.FromExport(&doc)
		if err != nil {
			return nil, err
		}

		metrics.GraphNodes.Set(float64(g.NodeCount()))
		metrics.GraphEdges.Set(float64(g.EdgeCount()))

		log.WithFields(logrus.Fields{
			"file":  cfg.GraphFile,
			"nodes": g.NodeCount(),
			"edges": g.EdgeCount(),
		}).Info("graph.loaded")

		return g, nil
	}
}
