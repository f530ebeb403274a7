// Package output writes run artifacts to disk as timestamped files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bstark/taskcrew/pkg/models"
)

const timestampLayout = "20060102_150405"

// Artifacts lists the files written for a single run. CombinedPath is empty
// when no task succeeded.
type Artifacts struct {
	ReportPath   string
	CombinedPath string
	GuidePath    string
}

// Writer persists run reports into a single output directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer targeting dir. The directory is created on the
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Write persists the report as JSON plus the guide, and the combined Markdown
// when the run produced one. All files for a run share one timestamp.
func (w *Writer) Write(report *models.RunReport) (*Artifacts, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	ts := w.now().Format(timestampLayout)
	artifacts := &Artifacts{
		ReportPath: filepath.Join(w.dir, fmt.Sprintf("crew_output_%s.json", ts)),
		GuidePath:  filepath.Join(w.dir, fmt.Sprintf("project_guide_%s.md", ts)),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(artifacts.ReportPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	if err := os.WriteFile(artifacts.GuidePath, []byte(report.Guide), 0o644); err != nil {
		return nil, fmt.Errorf("write guide: %w", err)
	}

	if report.Combined != "" {
		artifacts.CombinedPath = filepath.Join(w.dir, fmt.Sprintf("crew_output_%s_combined.md", ts))
		if err := os.WriteFile(artifacts.CombinedPath, []byte(report.Combined), 0o644); err != nil {
			return nil, fmt.Errorf("write combined report: %w", err)
		}
	}

	return artifacts, nil
}
