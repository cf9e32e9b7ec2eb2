package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/multistate/pkg/pathfind"
)

var complexityCmd = &cobra.Command{
	Use:   "complexity",
	Short: "Report the theoretical search-space size",
	Run: func(cmd *cobra.Command, args []string) {
		states, _ := cmd.Flags().GetInt("states")
		targets, _ := cmd.Flags().GetInt("targets")
		report := pathfind.EstimateComplexity(states, targets)
		fmt.Printf("Class:                 %s\n", report.Class)
		fmt.Printf("State configurations:  %.0f\n", report.StateConfigurations)
		fmt.Printf("Target configurations: %.0f\n", report.TargetConfigurations)
		fmt.Printf("Joint search space:    %.0f\n", report.SearchSpace)
		if !report.Tractable {
			fmt.Println("Warning: more than ~10 targets is impractical for exhaustive search")
		}
	},
}

func init() {
	complexityCmd.Flags().Int("states", 0, "Number of declared states")
	complexityCmd.Flags().Int("targets", 0, "Number of target states")
	rootCmd.AddCommand(complexityCmd)
}
