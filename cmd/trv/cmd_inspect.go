package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persistorai/trv/internal/memgraph"
)

type nodeSummary struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
	Out   int    `json:"out"`
	In    int    `json:"in"`
}

type graphSummary struct {
	Source string        `json:"source"`
	Nodes  int           `json:"node_count"`
	Edges  int           `json:"edge_count"`
	List   []nodeSummary `json:"nodes"`
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Load the configured graph and list its nodes with their degree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if err := cfg.RequireSource(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			g, err := loadGraph(cmd.Context(), cfg, cfg.NewLogger(os.Stderr))
			if err != nil {
				return err
			}

			sum := summarize(g, cfg.GraphSource)

			switch flagFmt {
			case "quiet":
				for _, n := range sum.List {
					formatQuiet(n.ID)
				}
			case "table":
				rows := make([][]string, 0, len(sum.List))
				for _, n := range sum.List {
					rows = append(rows, []string{n.ID, n.Type, n.Label, fmt.Sprint(n.Out), fmt.Sprint(n.In)})
				}
				formatTable([]string{"ID", "TYPE", "LABEL", "OUT", "IN"}, rows)
			default:
				formatJSON(sum)
			}

			return nil
		},
	}
}

func summarize(g *memgraph.Graph, source string) graphSummary {
	sum := graphSummary{Source: source, Nodes: g.NodeCount(), Edges: g.EdgeCount()}

	for _, key := range g.NodeKeys() {
		n, ok := g.GetNode(key)
		if !ok {
			continue
		}

		sum.List = append(sum.List, nodeSummary{
			ID:    n.ID,
			Type:  n.Type,
			Label: n.Label,
			Out:   len(g.OutEKeys(key, "")),
			In:    len(g.InEKeys(key, "")),
		})
	}

	return sum
}
