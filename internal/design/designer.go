// Package design orchestrates project analysis and task generation.
package design

import (
	"context"
	"fmt"

	"github.com/bstark/taskcrew/internal/extract"
	"github.com/bstark/taskcrew/internal/llm"
	"github.com/bstark/taskcrew/pkg/models"
)

// Designer analyzes a project brief and produces an executable task sequence
// plus a development guide. Two model calls: analysis, then task generation
// seeded with the full analysis text.
type Designer struct {
	analyzer llm.Executor

	analysisTemperature float64
}

// Option configures a Designer.
type Option func(*Designer)

// WithAnalysisTemperature overrides the sampling temperature for both
// designer calls.
func WithAnalysisTemperature(t float64) Option {
	return func(d *Designer) {
		d.analysisTemperature = t
	}
}

// New creates a Designer backed by the given executor.
func New(analyzer llm.Executor, opts ...Option) *Designer {
	d := &Designer{
		analyzer:            analyzer,
		analysisTemperature: 0.1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Analyze runs the project-analysis call and returns the verbatim analysis.
func (d *Designer) Analyze(ctx context.Context, brief models.Brief) (models.Analysis, error) {
	brief = brief.Normalized()

	prompt := fmt.Sprintf(analysisPrompt, brief.ProjectIdea, brief.TargetAudience, brief.Timeline)
	result, err := d.analyzer.Execute(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: d.analysisTemperature,
	})
	if err != nil {
		return models.Analysis{}, fmt.Errorf("analyze project: %w", err)
	}

	return models.Analysis{
		Text:           result.Text(),
		ProjectIdea:    brief.ProjectIdea,
		TargetAudience: brief.TargetAudience,
		Timeline:       brief.Timeline,
	}, nil
}

// GenerateTasks runs the task-generation call and extracts the task sequence
// from the response. Extraction never fails: unparseable output degrades to
// the fixed fallback tasks.
func (d *Designer) GenerateTasks(ctx context.Context, analysis models.Analysis) ([]models.TaskSpec, error) {
	prompt := fmt.Sprintf(taskGenerationPrompt, analysis.Text, analysis.ProjectIdea)
	result, err := d.analyzer.Execute(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: d.analysisTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate tasks: %w", err)
	}

	return extract.Tasks(result.Text()), nil
}

// Design runs the full pipeline: analysis, task generation, guide rendering.
func (d *Designer) Design(ctx context.Context, brief models.Brief) (*models.DesignResult, error) {
	analysis, err := d.Analyze(ctx, brief)
	if err != nil {
		return nil, err
	}

	tasks, err := d.GenerateTasks(ctx, analysis)
	if err != nil {
		return nil, err
	}

	return &models.DesignResult{
		Analysis: analysis,
		Tasks:    tasks,
		Guide:    RenderGuide(analysis, tasks),
	}, nil
}
