package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/bstark/taskcrew/internal/config"
	"github.com/bstark/taskcrew/internal/crew"
	"github.com/bstark/taskcrew/internal/design"
	"github.com/bstark/taskcrew/internal/history"
	"github.com/bstark/taskcrew/internal/llm"
	"github.com/bstark/taskcrew/internal/output"
	"github.com/bstark/taskcrew/pkg/models"
)

// applyFlagOverrides layers command-line overrides onto the resolved
// configuration. delaySet distinguishes an explicit --delay 0 from the flag
// being absent.
func applyFlagOverrides(cfg *config.Config, model string, delay time.Duration, delaySet bool) {
	if model != "" {
		cfg.Anthropic.Model = model
	}
	if delaySet {
		cfg.Runner.TaskDelay = delay
	}
}

// buildClient creates the API client from resolved configuration.
func buildClient(cfg *config.Config) (*llm.Client, error) {
	client, err := llm.NewClient(llm.ClientConfig{
		Model:      cfg.Anthropic.Model,
		APIKey:     cfg.Anthropic.APIKey,
		UseBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:  cfg.Anthropic.AWSRegion,
		AWSProfile: cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client, nil
}

// buildDesigner wires the analyzer agent into a task designer.
func buildDesigner(client *llm.Client, cfg *config.Config) *design.Designer {
	analyzer := llm.NewAgent(llm.AgentConfig{
		Client:      client,
		Persona:     llm.AnalyzerPersona,
		Temperature: cfg.Sampling.AnalysisTemperature,
		MaxTokens:   cfg.Sampling.MaxTokens,
	})
	return design.New(analyzer, design.WithAnalysisTemperature(cfg.Sampling.AnalysisTemperature))
}

// buildRunner wires the executor agent into a crew runner with console
// progress reporting.
func buildRunner(client *llm.Client, designer *design.Designer, cfg *config.Config) *crew.Runner {
	executor := llm.NewAgent(llm.AgentConfig{
		Client:      client,
		Persona:     llm.ExecutorPersona,
		Temperature: cfg.Sampling.ExecutionTemperature,
		MaxTokens:   cfg.Sampling.MaxTokens,
	})

	return crew.NewRunner(executor, designer, crew.Config{
		TaskDelay:            cfg.Runner.TaskDelay,
		RateLimitDelay:       cfg.Runner.RateLimitDelay,
		ChunkTokenLimit:      cfg.Runner.ChunkTokenLimit,
		RateLimitMarkers:     cfg.Runner.RateLimitMarkers,
		ExecutionTemperature: cfg.Sampling.ExecutionTemperature,
	}, crew.WithProgress(printProgress))
}

// printProgress renders crew progress events to the console.
func printProgress(p crew.Progress) {
	switch p.Stage {
	case crew.StageTaskStarted:
		name := p.Task.Name
		if name == "" {
			name = "Development Task"
		}
		fmt.Printf("\n[%d/%d] %s\n", p.Index, p.Total, taskTitleStyle.Render(name))
		fmt.Println(dimStyle.Render(fmt.Sprintf("  estimated tokens: %d", p.EstimatedTokens)))
		if p.OverLimit {
			printStatus("⚠", "task description exceeds the chunk token limit; the model may truncate context", color.FgYellow)
		}
	case crew.StageTaskFinished:
		if p.Record.Succeeded() {
			printStatus("✓", fmt.Sprintf("%s completed in %.1fs", p.Record.Label, p.Record.Duration.Seconds()), color.FgGreen)
		} else {
			printStatus("✗", fmt.Sprintf("%s failed: %s", p.Record.Label, p.Record.Err), color.FgRed)
		}
	case crew.StageWaiting:
		if p.RateLimited {
			printStatus("⏳", fmt.Sprintf("rate limited, cooling down for %s", p.Wait), color.FgYellow)
		} else {
			fmt.Println(dimStyle.Render(fmt.Sprintf("  waiting %s before next task", p.Wait)))
		}
	}
}

// printTasks lists the designed tasks.
func printTasks(tasks []models.TaskSpec) {
	printSection(fmt.Sprintf("Designed %d tasks:", len(tasks)))
	for i, task := range tasks {
		name := task.Name
		if name == "" {
			name = "Unnamed Task"
		}
		fmt.Printf("  %d. %s", i+1, taskTitleStyle.Render(name))
		if task.Complexity.Valid() {
			fmt.Printf(" %s", dimStyle.Render(fmt.Sprintf("(%s)", task.Complexity)))
		}
		fmt.Println()
	}
}

// finishRun writes artifacts, records history, and prints the run summary.
func finishRun(cfg *config.Config, report *models.RunReport) error {
	writer := output.NewWriter(cfg.Output.Dir)
	artifacts, err := writer.Write(report)
	if err != nil {
		return fmt.Errorf("writing run artifacts: %w", err)
	}

	// History is best-effort; a broken local database never fails the run.
	if store, err := history.Open(history.DefaultPath()); err == nil {
		if err := store.SaveRun(report); err != nil {
			printStatus("⚠", fmt.Sprintf("could not record run history: %v", err), color.FgYellow)
		}
		store.Close()
	} else {
		printStatus("⚠", fmt.Sprintf("could not open run history: %v", err), color.FgYellow)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run %s\n", report.ID))
	sb.WriteString(fmt.Sprintf("Tasks: %d succeeded, %d failed\n", len(report.Succeeded()), len(report.Failed())))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Second)))
	sb.WriteString(fmt.Sprintf("Report: %s\n", artifacts.ReportPath))
	sb.WriteString(fmt.Sprintf("Guide: %s", artifacts.GuidePath))
	if artifacts.CombinedPath != "" {
		sb.WriteString(fmt.Sprintf("\nCombined: %s", artifacts.CombinedPath))
	}

	fmt.Println()
	fmt.Println(summaryBoxStyle.Render(sb.String()))

	if len(report.Failed()) > 0 && len(report.Succeeded()) == 0 {
		fmt.Fprintln(os.Stderr, "all tasks failed; no combined report was produced")
	}

	return nil
}

// printTokenUsage reports the client's cumulative token counters.
func printTokenUsage(client *llm.Client) {
	in, out := client.Tracker().Total()
	fmt.Println(dimStyle.Render(fmt.Sprintf("API usage: %d calls, %d input tokens, %d output tokens, ~$%.4f",
		client.Tracker().Calls(), in, out, client.Tracker().Cost())))
}
