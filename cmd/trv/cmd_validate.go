package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persistorai/trv/internal/config"
)

type validateResult struct {
	Plan  string `json:"plan"`
	Steps int    `json:"steps"`
	Depth int    `json:"depth"`
	Valid bool   `json:"valid"`
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan>",
		Short: "Check a traversal plan without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}

			if err := plan.Validate(cfg.MaxDepth); err != nil {
				return fmt.Errorf("invalid plan: %w", err)
			}

			res := validateResult{Plan: args[0], Steps: len(plan.Steps), Depth: plan.Depth(), Valid: true}

			switch flagFmt {
			case "quiet":
				formatQuiet(args[0])
			case "table":
				formatTable([]string{"PLAN", "STEPS", "DEPTH"}, [][]string{
					{res.Plan, fmt.Sprint(res.Steps), fmt.Sprint(res.Depth)},
				})
			default:
				formatJSON(res)
			}

			return nil
		},
	}
}
