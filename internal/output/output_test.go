package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bstark/taskcrew/pkg/models"
)

func fixedWriter(dir string) *Writer {
	w := NewWriter(dir)
	w.now = func() time.Time {
		return time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC)
	}
	return w
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := fixedWriter(dir)

	report := &models.RunReport{
		ID:       "run-1",
		Guide:    "# guide",
		Combined: "# combined",
		Records: []models.ExecutionRecord{
			{Label: "task_1_setup", Output: "done"},
		},
	}

	artifacts, err := w.Write(report)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	wantReport := filepath.Join(dir, "crew_output_20260826_143005.json")
	if artifacts.ReportPath != wantReport {
		t.Errorf("ReportPath = %q, want %q", artifacts.ReportPath, wantReport)
	}
	wantCombined := filepath.Join(dir, "crew_output_20260826_143005_combined.md")
	if artifacts.CombinedPath != wantCombined {
		t.Errorf("CombinedPath = %q, want %q", artifacts.CombinedPath, wantCombined)
	}
	wantGuide := filepath.Join(dir, "project_guide_20260826_143005.md")
	if artifacts.GuidePath != wantGuide {
		t.Errorf("GuidePath = %q, want %q", artifacts.GuidePath, wantGuide)
	}

	data, err := os.ReadFile(artifacts.ReportPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded models.RunReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.ID != "run-1" || len(decoded.Records) != 1 {
		t.Errorf("decoded report = %+v", decoded)
	}

	guide, err := os.ReadFile(artifacts.GuidePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(guide) != "# guide" {
		t.Errorf("guide content = %q", guide)
	}
}

func TestWrite_NoCombined(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := fixedWriter(dir)

	artifacts, err := w.Write(&models.RunReport{ID: "run-2", Guide: "g"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if artifacts.CombinedPath != "" {
		t.Errorf("CombinedPath = %q, want empty when nothing succeeded", artifacts.CombinedPath)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 files, got %d", len(entries))
	}
}

func TestWrite_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	w := fixedWriter(dir)

	if _, err := w.Write(&models.RunReport{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}
