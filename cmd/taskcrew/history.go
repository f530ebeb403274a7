package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bstark/taskcrew/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	Long: `List recent runs recorded in the local history database
(~/.local/share/taskcrew/taskcrew.db), newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		idea := run.ProjectIdea
		if len(idea) > 60 {
			idea = idea[:57] + "..."
		}
		fmt.Printf("%s  %s\n", run.StartedAt.Local().Format("2006-01-02 15:04"), taskTitleStyle.Render(idea))
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %s  %d tasks, %d succeeded, %d failed, took %s",
			run.ID, run.TaskCount, run.Succeeded, run.Failed,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second))))
	}

	return nil
}
