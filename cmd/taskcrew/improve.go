package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bstark/taskcrew/internal/config"
	"github.com/bstark/taskcrew/internal/improve"
)

var (
	improveAudience string
	improveOutDir   string
	improveModel    string
	improveDelay    time.Duration
)

var improveCmd = &cobra.Command{
	Use:   "improve <project_path> <improvement request>",
	Short: "Design and execute improvements for an existing project",
	Long: `Read the web source files (.html, .js, .css) from an existing project
directory and run the crew against an improvement request instead of a fresh
project idea.

Only files directly inside the project directory are read; subdirectories are
ignored.

Examples:
  taskcrew improve ./snake "add touch controls for mobile"
  taskcrew improve ./blog "dark mode toggle" --audience "night readers"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runImprove,
}

func init() {
	improveCmd.Flags().StringVar(&improveAudience, "audience", "", "Target audience for the improvements")
	improveCmd.Flags().StringVar(&improveOutDir, "output", "", "Directory for generated artifacts (defaults to config output.dir)")
	improveCmd.Flags().StringVar(&improveModel, "model", "", "Model identifier override (defaults to config anthropic.model)")
	improveCmd.Flags().DurationVar(&improveDelay, "delay", 0, "Pause between tasks (defaults to config runner.task_delay)")
}

func runImprove(cmd *cobra.Command, args []string) error {
	projectPath := args[0]
	request := strings.Join(args[1:], " ")

	if info, err := os.Stat(projectPath); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "project path %s does not exist or is not a directory\n\n", projectPath)
		fmt.Fprintln(os.Stderr, "Usage: taskcrew improve <project_path> <improvement request>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if improveOutDir != "" {
		cfg.Output.Dir = improveOutDir
	}
	applyFlagOverrides(cfg, improveModel, improveDelay, cmd.Flags().Changed("delay"))

	files, err := improve.ReadProjectFiles(projectPath)
	if err != nil {
		return fmt.Errorf("reading project files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no .html, .js, or .css files found in %s\n", projectPath)
		os.Exit(1)
	}

	client, err := buildClient(cfg)
	if err != nil {
		return err
	}
	designer := buildDesigner(client, cfg)
	runner := buildRunner(client, designer, cfg)

	brief := improve.Brief(files, request, improveAudience)

	printBanner("Improving existing project")
	fmt.Printf("Project: %s (%d files)\n", projectPath, len(files))
	fmt.Printf("Request: %s\n", request)

	report, err := runner.Run(cmd.Context(), brief)
	if err != nil {
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
