package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bstark/taskcrew/internal/config"
	"github.com/bstark/taskcrew/pkg/models"
)

var (
	runAudience string
	runTimeline string
	runOutDir   string
	runModel    string
	runDelay    time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run <project idea>",
	Short: "Design tasks for a project idea and execute them in order",
	Long: `Design a development task list for the project idea and execute every
task sequentially against the model.

Tasks run strictly in order with a fixed pause between them. A failed task is
recorded and the run continues; rate-limited failures trigger a longer
cooldown before the next task. The run always produces a JSON report and a
development guide, plus a combined Markdown summary when at least one task
succeeded.

Examples:
  taskcrew run "a browser-based snake game"
  taskcrew run "personal finance tracker" --audience "freelancers" --timeline "1 week"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runAudience, "audience", "", "Target audience for the project")
	runCmd.Flags().StringVar(&runTimeline, "timeline", "", "Delivery timeline for the project")
	runCmd.Flags().StringVar(&runOutDir, "output", "", "Directory for generated artifacts (defaults to config output.dir)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model identifier override (defaults to config anthropic.model)")
	runCmd.Flags().DurationVar(&runDelay, "delay", 0, "Pause between tasks (defaults to config runner.task_delay)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if runOutDir != "" {
		cfg.Output.Dir = runOutDir
	}
	applyFlagOverrides(cfg, runModel, runDelay, cmd.Flags().Changed("delay"))

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}
	designer := buildDesigner(client, cfg)
	runner := buildRunner(client, designer, cfg)

	brief := models.Brief{
		ProjectIdea:    strings.Join(args, " "),
		TargetAudience: runAudience,
		Timeline:       runTimeline,
	}

	printBanner("Running project crew")
	fmt.Printf("Project: %s\n", brief.ProjectIdea)

	report, err := runner.Run(cmd.Context(), brief)
	if err != nil {
		// A partial report still gets persisted on cancellation.
		if report != nil && len(report.Records) > 0 {
			if ferr := finishRun(cfg, report); ferr != nil {
				return fmt.Errorf("run interrupted (%v); %w", err, ferr)
			}
		}
		return fmt.Errorf("running crew: %w", err)
	}

	if err := finishRun(cfg, report); err != nil {
		return err
	}
	printTokenUsage(client)

	return nil
}
