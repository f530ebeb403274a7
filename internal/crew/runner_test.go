package crew

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bstark/taskcrew/internal/llm"
	"github.com/bstark/taskcrew/pkg/models"
)

// scriptedExecutor fails tasks whose prompt contains a failure trigger and
// succeeds otherwise, recording every prompt it saw.
type scriptedExecutor struct {
	failures map[int]error // 0-based call index -> error
	calls    int
	prompts  []string
}

func (s *scriptedExecutor) Execute(ctx context.Context, req llm.Request) (*llm.Result, error) {
	idx := s.calls
	s.calls++
	s.prompts = append(s.prompts, req.Prompt)
	if err, ok := s.failures[idx]; ok {
		return nil, err
	}
	return llm.RawText(fmt.Sprintf("result for call %d", idx)), nil
}

func testConfig() Config {
	return Config{
		TaskDelay:            65 * time.Second,
		RateLimitDelay:       120 * time.Second,
		ChunkTokenLimit:      180000,
		RateLimitMarkers:     []string{"rate limit", "rate_limit", "429", "overloaded"},
		ExecutionTemperature: 0.3,
	}
}

// newTestRunner builds a runner with a recording sleep so tests never block.
func newTestRunner(exec llm.Executor, cfg Config, opts ...Option) (*Runner, *[]time.Duration) {
	var sleeps []time.Duration
	opts = append(opts, withSleep(func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return ctx.Err()
	}))
	return NewRunner(exec, nil, cfg, opts...), &sleeps
}

func designedResult(tasks ...models.TaskSpec) *models.DesignResult {
	return &models.DesignResult{
		Analysis: models.Analysis{Text: "analysis", ProjectIdea: "space invaders"},
		Tasks:    tasks,
		Guide:    "the guide",
	}
}

func TestExecute_AllSucceed(t *testing.T) {
	exec := &scriptedExecutor{}
	runner, sleeps := newTestRunner(exec, testConfig())

	report, err := runner.Execute(context.Background(), designedResult(
		models.TaskSpec{Name: "Setup", Description: "set up files"},
		models.TaskSpec{Name: "Core", Description: "build core"},
		models.TaskSpec{Name: "Polish", Description: "polish it"},
	))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(report.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(report.Records))
	}
	if len(report.Succeeded()) != 3 {
		t.Errorf("expected 3 successes, got %d", len(report.Succeeded()))
	}
	if report.Combined == "" {
		t.Error("combined report should be synthesized when tasks succeeded")
	}

	// Base delay between tasks, but not after the last one.
	if len(*sleeps) != 2 {
		t.Fatalf("expected 2 sleeps, got %d", len(*sleeps))
	}
	for _, d := range *sleeps {
		if d != 65*time.Second {
			t.Errorf("sleep = %v, want 65s", d)
		}
	}

	if report.ID == "" {
		t.Error("report should have an ID")
	}
	if report.FinishedAt.Before(report.StartedAt) {
		t.Error("FinishedAt should not precede StartedAt")
	}
}

func TestExecute_RateLimitedFailure(t *testing.T) {
	exec := &scriptedExecutor{failures: map[int]error{
		1: errors.New("anthropic: rate_limit_error: too many requests"),
	}}
	runner, sleeps := newTestRunner(exec, testConfig())

	report, err := runner.Execute(context.Background(), designedResult(
		models.TaskSpec{Name: "A", Description: "a"},
		models.TaskSpec{Name: "B", Description: "b"},
		models.TaskSpec{Name: "C", Description: "c"},
	))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// All k tasks are attempted despite the failure at j=2.
	if exec.calls != 3 {
		t.Errorf("executor calls = %d, want 3", exec.calls)
	}
	if len(report.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(report.Records))
	}
	if len(report.Failed()) != 1 {
		t.Errorf("expected 1 failure, got %d", len(report.Failed()))
	}

	// Sleeps: 65s after task 1, 120s penalty after task 2, none after task 3.
	want := []time.Duration{65 * time.Second, 120 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", *sleeps, want)
	}
	for i, d := range want {
		if (*sleeps)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*sleeps)[i], d)
		}
	}
}

func TestExecute_RateLimitOnLastTaskStillSleeps(t *testing.T) {
	exec := &scriptedExecutor{failures: map[int]error{
		0: errors.New("HTTP 429"),
	}}
	runner, sleeps := newTestRunner(exec, testConfig())

	_, err := runner.Execute(context.Background(), designedResult(
		models.TaskSpec{Name: "Only", Description: "only task"},
	))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(*sleeps) != 1 || (*sleeps)[0] != 120*time.Second {
		t.Errorf("sleeps = %v, want single 120s penalty", *sleeps)
	}
}

func TestExecute_PlainFailureNoCooldown(t *testing.T) {
	exec := &scriptedExecutor{failures: map[int]error{
		0: errors.New("connection refused"),
	}}
	runner, sleeps := newTestRunner(exec, testConfig())

	report, err := runner.Execute(context.Background(), designedResult(
		models.TaskSpec{Name: "A", Description: "a"},
		models.TaskSpec{Name: "B", Description: "b"},
	))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// Failure without a rate-limit marker: no sleep at all before task 2.
	if len(*sleeps) != 0 {
		t.Errorf("sleeps = %v, want none", *sleeps)
	}
	if len(report.Records) != 2 {
		t.Errorf("records = %d, want 2", len(report.Records))
	}
	if report.Records[0].Err != "connection refused" {
		t.Errorf("record 0 error = %q", report.Records[0].Err)
	}
}

func TestExecute_AllFailedOmitsCombined(t *testing.T) {
	exec := &scriptedExecutor{failures: map[int]error{
		0: errors.New("boom"),
		1: errors.New("boom"),
	}}
	runner, _ := newTestRunner(exec, testConfig())

	report, err := runner.Execute(context.Background(), designedResult(
		models.TaskSpec{Name: "A", Description: "a"},
		models.TaskSpec{Name: "B", Description: "b"},
	))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if report.Combined != "" {
		t.Error("combined report should be omitted when nothing succeeded")
	}
	if len(report.Records) != 2 {
		t.Errorf("records = %d, want 2 even with all failures", len(report.Records))
	}
}

func TestExecute_PromptEmbedsTaskFields(t *testing.T) {
	exec := &scriptedExecutor{}
	runner, _ := newTestRunner(exec, testConfig())

	_, err := runner.Execute(context.Background(), designedResult(models.TaskSpec{
		Name:            "Game Loop",
		Description:     "build the loop",
		ExpectedOutput:  "game.js",
		SuccessCriteria: "runs at 60fps",
	}))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	prompt := exec.prompts[0]
	for _, want := range []string{
		"TASK: Game Loop",
		"DESCRIPTION: build the loop",
		"EXPECTED OUTPUT: game.js",
		"SUCCESS CRITERIA: runs at 60fps",
		"PROJECT CONTEXT: space invaders",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExecute_PromptPlaceholders(t *testing.T) {
	exec := &scriptedExecutor{}
	runner, _ := newTestRunner(exec, testConfig())

	_, err := runner.Execute(context.Background(), designedResult(models.TaskSpec{
		Description: "only a description",
	}))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	prompt := exec.prompts[0]
	for _, want := range []string{
		"TASK: Development Task",
		"EXPECTED OUTPUT: Working implementation",
		"SUCCESS CRITERIA: Code functions without errors",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing placeholder %q", want)
		}
	}
}

func TestExecute_TokenEstimate(t *testing.T) {
	exec := &scriptedExecutor{}

	var events []Progress
	runner, _ := newTestRunner(exec, testConfig(), WithProgress(func(p Progress) {
		events = append(events, p)
	}))

	desc := strings.Repeat("x", 100)
	_, err := runner.Execute(context.Background(), designedResult(models.TaskSpec{
		Name: "T", Description: desc,
	}))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var started *Progress
	for i := range events {
		if events[i].Stage == StageTaskStarted {
			started = &events[i]
			break
		}
	}
	if started == nil {
		t.Fatal("no task_started event")
	}
	if started.EstimatedTokens != 400 {
		t.Errorf("EstimatedTokens = %d, want 400", started.EstimatedTokens)
	}
	if started.OverLimit {
		t.Error("400 tokens should not be over the 180000 limit")
	}
}

func TestExecute_OverLimitWarning(t *testing.T) {
	exec := &scriptedExecutor{}

	var overLimit bool
	cfg := testConfig()
	cfg.ChunkTokenLimit = 100
	runner, _ := newTestRunner(exec, cfg, WithProgress(func(p Progress) {
		if p.Stage == StageTaskStarted && p.OverLimit {
			overLimit = true
		}
	}))

	_, err := runner.Execute(context.Background(), designedResult(models.TaskSpec{
		Name: "Big", Description: strings.Repeat("x", 50),
	}))
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !overLimit {
		t.Error("estimate of 200 should exceed limit of 100")
	}
}

func TestExecute_Cancellation(t *testing.T) {
	exec := &scriptedExecutor{}
	ctx, cancel := context.WithCancel(context.Background())

	runner := NewRunner(exec, nil, testConfig(), withSleep(func(ctx context.Context, d time.Duration) error {
		cancel() // cancel during the first inter-task pause
		return ctx.Err()
	}))

	report, err := runner.Execute(ctx, designedResult(
		models.TaskSpec{Name: "A", Description: "a"},
		models.TaskSpec{Name: "B", Description: "b"},
	))
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if len(report.Records) != 1 {
		t.Errorf("records = %d, want 1 (run stopped during pause)", len(report.Records))
	}
}

func TestExecute_NilDesign(t *testing.T) {
	runner, _ := newTestRunner(&scriptedExecutor{}, testConfig())
	if _, err := runner.Execute(context.Background(), nil); err == nil {
		t.Error("expected error for nil design result")
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		index int
		name  string
		want  string
	}{
		{0, "Game Loop", "task_1_game_loop"},
		{2, "Form & Data Integrity Testing", "task_3_form_data_integrity_testing"},
		{1, "", "task_2_unnamed"},
		{0, "***", "task_1_unnamed"},
	}

	for _, tc := range cases {
		if got := Label(tc.index, tc.name); got != tc.want {
			t.Errorf("Label(%d, %q) = %q, want %q", tc.index, tc.name, got, tc.want)
		}
	}
}
