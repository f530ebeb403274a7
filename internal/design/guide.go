package design

import (
	"fmt"
	"strings"

	"github.com/bstark/taskcrew/pkg/models"
)

// Placeholders substituted for absent task fields in the rendered guide.
const (
	placeholderName        = "Unnamed Task"
	placeholderDescription = "No description provided"
	placeholderOutput      = "No output specified"
	placeholderCriteria    = "No criteria specified"
	placeholderDeps        = "None specified"
	placeholderComplexity  = "Unknown"
)

// RenderGuide renders the project development guide as Markdown. Pure string
// formatting: the only branching is presence checks on optional fields.
func RenderGuide(analysis models.Analysis, tasks []models.TaskSpec) string {
	var sb strings.Builder

	sb.WriteString("# PROJECT DEVELOPMENT GUIDE\n\n")
	sb.WriteString("## PROJECT OVERVIEW\n")
	sb.WriteString(fmt.Sprintf("**Idea:** %s\n", analysis.ProjectIdea))
	sb.WriteString(fmt.Sprintf("**Target Audience:** %s\n", analysis.TargetAudience))
	sb.WriteString(fmt.Sprintf("**Timeline:** %s\n\n", analysis.Timeline))

	sb.WriteString("## ANALYSIS RESULTS\n")
	sb.WriteString(analysis.Text)
	sb.WriteString("\n\n")

	sb.WriteString("## DEVELOPMENT TASKS\n")
	sb.WriteString(fmt.Sprintf("Total Tasks: %d\n\n", len(tasks)))

	for i, task := range tasks {
		sb.WriteString(fmt.Sprintf("### Task %d: %s\n\n", i+1, orElse(task.Name, placeholderName)))
		sb.WriteString(fmt.Sprintf("**Description:** %s\n\n", orElse(task.Description, placeholderDescription)))
		sb.WriteString(fmt.Sprintf("**Expected Output:** %s\n\n", orElse(task.ExpectedOutput, placeholderOutput)))
		sb.WriteString(fmt.Sprintf("**Success Criteria:** %s\n\n", orElse(task.SuccessCriteria, placeholderCriteria)))
		sb.WriteString(fmt.Sprintf("**Dependencies:** %s\n\n", orElse(task.Dependencies, placeholderDeps)))
		sb.WriteString(fmt.Sprintf("**Complexity:** %s\n\n", orElse(string(task.Complexity), placeholderComplexity)))
		sb.WriteString("---\n\n")
	}

	sb.WriteString(`## IMPLEMENTATION NOTES

1. **Follow the task order** - dependencies matter
2. **Test each task** before moving to the next
3. **Focus on working code** over perfect code
4. **Validate success criteria** for each task
5. **Document any deviations** from the plan

## SUCCESS METRICS

- [ ] All tasks completed successfully
- [ ] Final deliverable works as intended
- [ ] Success criteria met for each task
- [ ] Project meets original requirements
`)

	return sb.String()
}

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
