package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/multistate/pkg/dsl"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition.yaml>",
	Short: "Check a definition for consistency",
	Long:  `Loads a YAML definition and reports duplicate IDs, group conflicts, dangling references, and invalid costs.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		def, err := dsl.LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Definition is valid: %d states, %d groups, %d transitions\n",
			len(def.States()), len(def.Groups()), len(def.Transitions()))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
