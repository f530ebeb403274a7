// Package improve builds improvement briefs from existing project files.
package improve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bstark/taskcrew/pkg/models"
)

// contextExtensions are the web-project file types read as improvement
// context. The scan is non-recursive.
var contextExtensions = map[string]bool{
	".html": true,
	".js":   true,
	".css":  true,
}

// ProjectFile is one source file read from the project directory.
type ProjectFile struct {
	Name    string
	Content string
}

// ReadProjectFiles reads the context files from the project directory,
// sorted by name. Returns an error if the directory cannot be read.
func ReadProjectFiles(projectPath string) ([]ProjectFile, error) {
	entries, err := os.ReadDir(projectPath)
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}

	var files []ProjectFile
	for _, entry := range entries {
		if entry.IsDir() || !contextExtensions[filepath.Ext(entry.Name())] {
			continue
		}

		content, err := os.ReadFile(filepath.Join(projectPath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		files = append(files, ProjectFile{Name: entry.Name(), Content: string(content)})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}

// Brief builds the improvement brief: the project idea is a context block
// describing the existing files and the requested improvements.
func Brief(files []ProjectFile, improvementRequest, targetAudience string) models.Brief {
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}

	var sb strings.Builder
	sb.WriteString("EXISTING PROJECT IMPROVEMENT:\n\n")
	sb.WriteString(fmt.Sprintf("Current Project Files: %s\n\n", strings.Join(names, ", ")))
	sb.WriteString(fmt.Sprintf("Improvement Request: %s\n\n", improvementRequest))
	sb.WriteString("Instructions: Analyze the existing code and implement the requested improvements.\n")
	sb.WriteString("Focus on enhancing the existing functionality rather than rebuilding from scratch.\n")
	sb.WriteString("Maintain compatibility with the current project structure.\n")

	for _, f := range files {
		sb.WriteString(fmt.Sprintf("\n--- %s ---\n%s\n", f.Name, f.Content))
	}

	return models.Brief{
		ProjectIdea:    sb.String(),
		TargetAudience: targetAudience,
		Timeline:       "3-5 days",
	}
}
