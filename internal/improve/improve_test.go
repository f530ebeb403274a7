package improve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadProjectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<html></html>")
	writeFile(t, dir, "app.js", "console.log(1)")
	writeFile(t, dir, "style.css", "body {}")
	writeFile(t, dir, "notes.txt", "ignore me")
	writeFile(t, dir, "README.md", "ignore me too")

	// Nested files are never picked up.
	sub := filepath.Join(dir, "src")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "nested.js", "nope")

	files, err := ReadProjectFiles(dir)
	if err != nil {
		t.Fatalf("ReadProjectFiles failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}

	wantNames := []string{"app.js", "index.html", "style.css"}
	for i, want := range wantNames {
		if files[i].Name != want {
			t.Errorf("file %d = %q, want %q", i, files[i].Name, want)
		}
	}
	if files[1].Content != "<html></html>" {
		t.Errorf("index.html content = %q", files[1].Content)
	}
}

func TestReadProjectFiles_MissingDir(t *testing.T) {
	if _, err := ReadProjectFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestBrief(t *testing.T) {
	files := []ProjectFile{
		{Name: "app.js", Content: "let x = 1;"},
		{Name: "index.html", Content: "<body/>"},
	}

	brief := Brief(files, "add a dark mode toggle", "casual players")

	for _, want := range []string{
		"EXISTING PROJECT IMPROVEMENT:",
		"Current Project Files: app.js, index.html",
		"Improvement Request: add a dark mode toggle",
		"rather than rebuilding from scratch",
		"--- app.js ---",
		"let x = 1;",
		"--- index.html ---",
	} {
		if !strings.Contains(brief.ProjectIdea, want) {
			t.Errorf("brief missing %q", want)
		}
	}

	if brief.TargetAudience != "casual players" {
		t.Errorf("TargetAudience = %q", brief.TargetAudience)
	}
	if brief.Timeline != "3-5 days" {
		t.Errorf("Timeline = %q", brief.Timeline)
	}
}
