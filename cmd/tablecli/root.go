package main

import (
	"fmt"
	"os"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tablecli",
	Short: "Render the demo table in the terminal",
	Long: `tablecli applies header and row interactions to the demo table and prints the result.

Examples:

  tablecli render --sort price --sort price
  tablecli render --config table.yaml --check 1001 --check 1003
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.LoadEnv()
	},
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
