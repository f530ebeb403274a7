// Package crew executes designed tasks sequentially against an LLM executor.
package crew

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bstark/taskcrew/internal/design"
	"github.com/bstark/taskcrew/internal/llm"
	"github.com/bstark/taskcrew/pkg/models"
)

// Placeholders used when a task spec is missing optional fields. Only the
// description drives the token estimate; everything else degrades gracefully.
const (
	placeholderTaskName = "Development Task"
	placeholderTaskDesc = "Complete this development task"
	placeholderOutput   = "Working implementation"
	placeholderCriteria = "Code functions without errors"
)

// tokensPerChar is the crude linear token estimate applied to a task
// description. Informational only; nothing branches on it beyond a warning.
const tokensPerChar = 4

// Stage identifies the phase a progress event describes.
type Stage string

const (
	// StageTaskStarted fires before a task is submitted.
	StageTaskStarted Stage = "task_started"
	// StageTaskFinished fires once a record exists for the task.
	StageTaskFinished Stage = "task_finished"
	// StageWaiting fires before an inter-task or cooldown sleep.
	StageWaiting Stage = "waiting"
)

// Progress describes one step of a crew run for observers.
type Progress struct {
	Stage           Stage
	Index           int // 1-based task index
	Total           int
	Task            models.TaskSpec
	EstimatedTokens int
	OverLimit       bool
	Record          *models.ExecutionRecord
	Wait            time.Duration
	RateLimited     bool
}

// ProgressFunc receives progress events during a run.
type ProgressFunc func(Progress)

// Config holds the pacing parameters for sequential execution.
type Config struct {
	// TaskDelay is the fixed pause between consecutive tasks.
	TaskDelay time.Duration
	// RateLimitDelay is the extra cooldown after a rate-limited failure.
	RateLimitDelay time.Duration
	// ChunkTokenLimit triggers an over-limit warning on the estimate.
	ChunkTokenLimit int
	// RateLimitMarkers classify error text as throttling.
	RateLimitMarkers []string
	// ExecutionTemperature is the sampling temperature for task execution.
	ExecutionTemperature float64
}

// Runner executes a designed task sequence strictly in order. One task at a
// time, no reordering, no dependency gating; a failed task is recorded and
// the loop moves on.
type Runner struct {
	executor llm.Executor
	designer *design.Designer
	cfg      Config

	progress ProgressFunc
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress registers a progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// withSleep overrides the sleep function (tests).
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Runner) {
		r.sleep = fn
	}
}

// NewRunner creates a Runner. The designer may be nil if only Execute is
// used with pre-designed tasks.
func NewRunner(executor llm.Executor, designer *design.Designer, cfg Config, opts ...Option) *Runner {
	r := &Runner{
		executor: executor,
		designer: designer,
		cfg:      cfg,
		progress: func(Progress) {},
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run designs tasks for the brief and executes them sequentially.
func (r *Runner) Run(ctx context.Context, brief models.Brief) (*models.RunReport, error) {
	if r.designer == nil {
		return nil, fmt.Errorf("runner has no designer configured")
	}

	result, err := r.designer.Design(ctx, brief)
	if err != nil {
		return nil, fmt.Errorf("design tasks: %w", err)
	}

	return r.Execute(ctx, result)
}

// Execute runs an already-designed task sequence. Individual task failures
// are recorded, never returned; the only error paths are cancellation and a
// nil design.
func (r *Runner) Execute(ctx context.Context, designed *models.DesignResult) (*models.RunReport, error) {
	if designed == nil {
		return nil, fmt.Errorf("nil design result")
	}

	report := &models.RunReport{
		ID:        uuid.New().String(),
		Analysis:  designed.Analysis,
		Tasks:     designed.Tasks,
		Guide:     designed.Guide,
		StartedAt: time.Now(),
	}

	total := len(designed.Tasks)
	for i, task := range designed.Tasks {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now()
			return report, err
		}

		estimate := len(task.Description) * tokensPerChar
		r.progress(Progress{
			Stage:           StageTaskStarted,
			Index:           i + 1,
			Total:           total,
			Task:            task,
			EstimatedTokens: estimate,
			OverLimit:       r.cfg.ChunkTokenLimit > 0 && estimate > r.cfg.ChunkTokenLimit,
		})

		record := r.executeOne(ctx, i, task, estimate, designed.Analysis.ProjectIdea)
		report.Records = append(report.Records, record)

		r.progress(Progress{
			Stage:  StageTaskFinished,
			Index:  i + 1,
			Total:  total,
			Task:   task,
			Record: &record,
		})

		if !record.Succeeded() && llm.IsRateLimit(record.Err, r.cfg.RateLimitMarkers) {
			r.progress(Progress{Stage: StageWaiting, Index: i + 1, Total: total, Wait: r.cfg.RateLimitDelay, RateLimited: true})
			if err := r.sleep(ctx, r.cfg.RateLimitDelay); err != nil {
				report.FinishedAt = time.Now()
				return report, err
			}
		} else if record.Succeeded() && i < total-1 {
			r.progress(Progress{Stage: StageWaiting, Index: i + 1, Total: total, Wait: r.cfg.TaskDelay})
			if err := r.sleep(ctx, r.cfg.TaskDelay); err != nil {
				report.FinishedAt = time.Now()
				return report, err
			}
		}
	}

	report.FinishedAt = time.Now()

	if len(report.Succeeded()) > 0 {
		report.Combined = Combine(report)
	}

	return report, nil
}

// executeOne submits a single task and returns its record. Errors from the
// executor are captured in the record, never propagated.
func (r *Runner) executeOne(ctx context.Context, index int, task models.TaskSpec, estimate int, projectContext string) models.ExecutionRecord {
	record := models.ExecutionRecord{
		Label:           Label(index, task.Name),
		Task:            task,
		EstimatedTokens: estimate,
	}

	prompt := executionPrompt(task, projectContext)

	start := time.Now()
	result, err := r.executor.Execute(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: r.cfg.ExecutionTemperature,
	})
	record.Duration = time.Since(start)
	record.Timestamp = time.Now()

	if err != nil {
		record.Err = err.Error()
		return record
	}

	record.Output = result.Text()
	return record
}

// executionPrompt builds the task prompt, substituting placeholders for
// absent fields.
func executionPrompt(task models.TaskSpec, projectContext string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("TASK: %s\n\n", orElse(task.Name, placeholderTaskName)))
	sb.WriteString(fmt.Sprintf("DESCRIPTION: %s\n\n", orElse(task.Description, placeholderTaskDesc)))
	sb.WriteString(fmt.Sprintf("EXPECTED OUTPUT: %s\n\n", orElse(task.ExpectedOutput, placeholderOutput)))
	sb.WriteString(fmt.Sprintf("SUCCESS CRITERIA: %s\n\n", orElse(task.SuccessCriteria, placeholderCriteria)))
	sb.WriteString(fmt.Sprintf("PROJECT CONTEXT: %s\n\n", projectContext))
	sb.WriteString("IMPORTANT: Create working, testable code. Focus on functionality over perfection.\n")
	sb.WriteString("If this is a game, ensure the game loop, rendering, and interaction work properly.\n")
	sb.WriteString("If this is a web app, ensure the UI and functionality work as expected.\n\n")
	sb.WriteString("Provide complete, runnable code that can be tested immediately.\n")

	return sb.String()
}

// Label derives the record key for a task: task_<index+1>_<slug(name)>.
func Label(index int, name string) string {
	return fmt.Sprintf("task_%d_%s", index+1, slugify(name))
}

// slugify lowercases the name and replaces runs of non-alphanumerics with
// single underscores.
func slugify(name string) string {
	if name == "" {
		return "unnamed"
	}

	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}

	slug := strings.Trim(sb.String(), "_")
	if slug == "" {
		return "unnamed"
	}
	return slug
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
