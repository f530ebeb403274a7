package models

import (
	"testing"
	"time"
)

func TestComplexity_Valid(t *testing.T) {
	valid := []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("Complexity(%q).Valid() = false, want true", c)
		}
	}

	invalid := []Complexity{"", "simple", "HARD", "medium "}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("Complexity(%q).Valid() = true, want false", c)
		}
	}
}

func TestBrief_Normalized(t *testing.T) {
	b := Brief{ProjectIdea: "space invaders clone"}.Normalized()

	if b.TargetAudience != DefaultAudience {
		t.Errorf("TargetAudience = %q, want %q", b.TargetAudience, DefaultAudience)
	}
	if b.Timeline != DefaultTimeline {
		t.Errorf("Timeline = %q, want %q", b.Timeline, DefaultTimeline)
	}
	if b.ProjectIdea != "space invaders clone" {
		t.Errorf("ProjectIdea = %q, should be unchanged", b.ProjectIdea)
	}
}

func TestBrief_NormalizedKeepsExplicitValues(t *testing.T) {
	b := Brief{
		ProjectIdea:    "todo app",
		TargetAudience: "students",
		Timeline:       "2 weeks",
	}.Normalized()

	if b.TargetAudience != "students" {
		t.Errorf("TargetAudience = %q, want %q", b.TargetAudience, "students")
	}
	if b.Timeline != "2 weeks" {
		t.Errorf("Timeline = %q, want %q", b.Timeline, "2 weeks")
	}
}

func TestExecutionRecord_Succeeded(t *testing.T) {
	ok := ExecutionRecord{Label: "task_1_setup", Output: "done"}
	if !ok.Succeeded() {
		t.Error("record with output should be succeeded")
	}

	failed := ExecutionRecord{Label: "task_2_core", Err: "boom"}
	if failed.Succeeded() {
		t.Error("record with error should not be succeeded")
	}
}

func TestRunReport_Partition(t *testing.T) {
	report := &RunReport{
		Records: []ExecutionRecord{
			{Label: "task_1_a", Output: "ok", Timestamp: time.Now()},
			{Label: "task_2_b", Err: "rate limited"},
			{Label: "task_3_c", Output: "ok"},
		},
	}

	if got := len(report.Succeeded()); got != 2 {
		t.Errorf("Succeeded() len = %d, want 2", got)
	}
	if got := len(report.Failed()); got != 1 {
		t.Errorf("Failed() len = %d, want 1", got)
	}
	if report.Failed()[0].Label != "task_2_b" {
		t.Errorf("Failed()[0].Label = %q, want %q", report.Failed()[0].Label, "task_2_b")
	}
}
