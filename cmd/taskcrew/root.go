package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taskcrew",
	Short: "LLM-driven project task design and sequential execution",
	Long: `Taskcrew turns a one-line project idea into an executed development plan.

It analyzes the idea, designs a concrete task list with expected outputs and
success criteria, then executes each task in order against the model with
rate-limit-aware pacing. Every run produces a JSON report, a development
guide, and a combined Markdown summary of the results.

Core capabilities:
- Analyzes a project idea and classifies its type and stack
- Designs specific, testable development tasks
- Executes tasks sequentially, recording output or failure per task
- Recovers task lists from malformed model output instead of aborting
- Persists artifacts and run history locally`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(designCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(improveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
