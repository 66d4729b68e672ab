package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/trv/internal/memgraph"
	"github.com/persistorai/trv/internal/models"
	"github.com/persistorai/trv/internal/service"
)

func newRunCmd() *cobra.Command {
	var starts []string

	cmd := &cobra.Command{
		Use:   "run <plan>",
		Short: "Run a traversal plan against a graph",
		Long: `Run a traversal plan (JSON or YAML) against a graph document or a
PostgreSQL snapshot and print the final frontier, paths, cache and errors.
--start replaces the plan's start keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if err := cfg.RequireSource(); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			log := cfg.NewLogger(os.Stderr)

			var (
				g    *memgraph.Graph
				plan *models.Plan
			)

			eg, egCtx := errgroup.WithContext(cmd.Context())
			eg.Go(func() error {
				var err error
				g, err = loadGraph(egCtx, cfg, log)
				return err
			})
			eg.Go(func() error {
				var err error
				plan, err = readPlan(args[0])
				return err
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			if len(starts) > 0 {
				plan.Start = starts
			}

			res, err := service.NewTraversalService(log, cfg.MaxDepth).Run(cmd.Context(), g, *plan)
			if err != nil {
				return err
			}

			printResult(res)

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&starts, "start", nil, "Start node keys (overrides the plan)")

	return cmd
}

func printResult(res *models.RunResult) {
	switch flagFmt {
	case "quiet":
		for _, key := range res.Result {
			formatQuiet(key)
		}
	case "table":
		rows := make([][]string, 0, len(res.Result))
		for _, key := range res.Result {
			rows = append(rows, []string{key, formatPath(res.Paths[key]), formatCacheEntry(res.Cache[key])})
		}
		formatTable([]string{"KEY", "PATH", "CACHE"}, rows)

		for _, msg := range res.Errors {
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}
	default:
		formatJSON(res)
	}
}

func formatPath(steps []models.Step) string {
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		parts = append(parts, s.EdgeKey)
	}
	return strings.Join(parts, ", ")
}
