package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bstark/taskcrew/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(id string, started time.Time) *models.RunReport {
	return &models.RunReport{
		ID:         id,
		Analysis:   models.Analysis{ProjectIdea: "snake game"},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Minute),
		Records: []models.ExecutionRecord{
			{Label: "task_1_setup", Task: models.TaskSpec{Name: "Setup"}, Output: "ok", EstimatedTokens: 400, Duration: 2 * time.Second},
			{Label: "task_2_core", Task: models.TaskSpec{Name: "Core"}, Err: "rate_limit_error"},
		},
	}
}

func TestSaveAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	if err := store.SaveRun(sampleReport("run-a", base)); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := store.SaveRun(sampleReport("run-b", base.Add(time.Hour))); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].ID != "run-b" || runs[1].ID != "run-a" {
		t.Errorf("run order = %s, %s", runs[0].ID, runs[1].ID)
	}

	got := runs[0]
	if got.ProjectIdea != "snake game" {
		t.Errorf("ProjectIdea = %q", got.ProjectIdea)
	}
	if got.TaskCount != 2 || got.Succeeded != 1 || got.Failed != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", got.TaskCount, got.Succeeded, got.Failed)
	}
	if !got.StartedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("StartedAt = %v", got.StartedAt)
	}
}

func TestRecentRuns_Limit(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		report := sampleReport(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := store.SaveRun(report); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.SaveRun(sampleReport("run-1", time.Now())); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	store.Close()

	// Migrations are idempotent across reopens.
	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run after reopen, got %d", len(runs))
	}
}

func TestRecentRuns_Empty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
