package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/multistate"
	"github.com/aretw0/multistate/pkg/dsl"
	"github.com/aretw0/multistate/pkg/pathfind"
)

var planCmd = &cobra.Command{
	Use:   "plan <definition.yaml>",
	Short: "Compute a multi-target transition plan",
	Long:  `Searches the definition for a minimum-cost transition sequence from the start configuration that visits every target state.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPlan(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Plan failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	planCmd.Flags().StringSlice("from", nil, "IDs of the initially active states")
	planCmd.Flags().StringSlice("targets", nil, "IDs of the target states (required)")
	planCmd.Flags().String("strategy", "bfs", "Search strategy: bfs, dijkstra, or astar")
	planCmd.Flags().Int("budget", 0, "Node-expansion budget (0 = default)")
	_ = planCmd.MarkFlagRequired("targets")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, path string) error {
	def, err := dsl.LoadFile(path)
	if err != nil {
		return err
	}

	fromIDs, _ := cmd.Flags().GetStringSlice("from")
	targetIDs, _ := cmd.Flags().GetStringSlice("targets")
	strategyName, _ := cmd.Flags().GetString("strategy")
	budget, _ := cmd.Flags().GetInt("budget")

	strategy, err := pathfind.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	current, err := def.StateSet(fromIDs...)
	if err != nil {
		return err
	}
	targets, err := def.StateSet(targetIDs...)
	if err != nil {
		return err
	}

	opts := []multistate.Option{
		multistate.WithStrategy(strategy),
		multistate.WithLogger(newLogger(cmd)),
	}
	if budget > 0 {
		opts = append(opts, multistate.WithSearchBudget(budget))
	}
	eng, err := multistate.New(def, opts...)
	if err != nil {
		return err
	}

	plan, err := eng.FindPathToAll(current, targets)
	if errors.Is(err, pathfind.ErrBudgetExhausted) {
		return fmt.Errorf("search aborted: budget exhausted")
	}
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("no covering path from [%s] to [%s]",
			strings.Join(current.IDs(), ", "), strings.Join(targets.IDs(), ", "))
	}

	fmt.Printf("Plan: %d steps, total cost %.2f\n", plan.Steps(), plan.TotalCost)
	for i, t := range plan.Transitions {
		fmt.Printf("  %d. %s (%s) -> [%s]\n",
			i+1, t.Name, t.ID, strings.Join(plan.States[i+1].IDs(), ", "))
	}
	return nil
}
