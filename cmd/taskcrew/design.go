package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bstark/taskcrew/internal/config"
	"github.com/bstark/taskcrew/internal/output"
	"github.com/bstark/taskcrew/pkg/models"
)

var (
	designAudience string
	designTimeline string
	designOutDir   string
	designModel    string
)

var designCmd = &cobra.Command{
	Use:   "design <project idea>",
	Short: "Analyze a project idea and design its task list",
	Long: `Analyze a project idea and design a concrete development task list
without executing anything.

The analysis, the designed tasks, and the development guide are written to
the output directory. Use "taskcrew run" to design and execute in one step.

Examples:
  taskcrew design "a browser-based snake game"
  taskcrew design "todo app with local storage" --audience "students"
  taskcrew design "markdown blog engine" --timeline "2 weeks" --output ./plans`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDesign,
}

func init() {
	designCmd.Flags().StringVar(&designAudience, "audience", "", "Target audience for the project")
	designCmd.Flags().StringVar(&designTimeline, "timeline", "", "Delivery timeline for the project")
	designCmd.Flags().StringVar(&designOutDir, "output", "", "Directory for generated artifacts (defaults to config output.dir)")
	designCmd.Flags().StringVar(&designModel, "model", "", "Model identifier override (defaults to config anthropic.model)")
}

func runDesign(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if designOutDir != "" {
		cfg.Output.Dir = designOutDir
	}
	applyFlagOverrides(cfg, designModel, 0, false)

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}
	designer := buildDesigner(client, cfg)

	brief := models.Brief{
		ProjectIdea:    strings.Join(args, " "),
		TargetAudience: designAudience,
		Timeline:       designTimeline,
	}

	printBanner("Designing project tasks")
	fmt.Printf("Project: %s\n\n", brief.ProjectIdea)

	started := time.Now()
	result, err := designer.Design(cmd.Context(), brief)
	if err != nil {
		return fmt.Errorf("designing tasks: %w", err)
	}

	printTasks(result.Tasks)

	// A design-only run still produces the JSON report and the guide.
	writer := output.NewWriter(cfg.Output.Dir)
	artifacts, err := writer.Write(designReport(result, started, time.Now()))
	if err != nil {
		return fmt.Errorf("writing design artifacts: %w", err)
	}

	fmt.Println()
	fmt.Printf("Report: %s\n", artifacts.ReportPath)
	fmt.Printf("Guide: %s\n", artifacts.GuidePath)
	printTokenUsage(client)

	return nil
}

// designReport wraps a design-only result in a run report with its own ID
// and timestamps; the record list stays empty since nothing executed.
func designReport(result *models.DesignResult, started, finished time.Time) *models.RunReport {
	return &models.RunReport{
		ID:         uuid.New().String(),
		Analysis:   result.Analysis,
		Tasks:      result.Tasks,
		Guide:      result.Guide,
		StartedAt:  started,
		FinishedAt: finished,
	}
}
