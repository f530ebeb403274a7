package crew

import (
	"fmt"
	"strings"
	"time"

	"github.com/bstark/taskcrew/pkg/models"
)

// Combine synthesizes the final Markdown report from a run: the project
// analysis, one section per execution record in order, and the development
// guide. Callers only invoke it when at least one task succeeded.
func Combine(report *models.RunReport) string {
	var sb strings.Builder

	sb.WriteString("# PROJECT DEVELOPMENT RESULTS\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", report.FinishedAt.Format(time.RFC3339)))

	sb.WriteString("## PROJECT ANALYSIS\n")
	sb.WriteString(orElse(report.Analysis.Text, "No analysis available"))
	sb.WriteString("\n\n")

	sb.WriteString("## TASK EXECUTION RESULTS\n\n")

	for _, record := range report.Records {
		sb.WriteString(fmt.Sprintf("### %s\n", headline(record.Label)))

		if record.Succeeded() {
			sb.WriteString("**Status:** Success\n")
			sb.WriteString(fmt.Sprintf("**Execution Time:** %.1fs\n", record.Duration.Seconds()))
			sb.WriteString(record.Output)
			sb.WriteString("\n")
		} else {
			sb.WriteString("**Status:** Failed\n")
			sb.WriteString(fmt.Sprintf("**Error:** %s\n", record.Err))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("## IMPLEMENTATION GUIDE\n")
	sb.WriteString(orElse(report.Guide, "No guide available"))

	return sb.String()
}

// headline turns a record label into a readable section title:
// task_1_game_loop -> Task 1 Game Loop.
func headline(label string) string {
	words := strings.Split(strings.ReplaceAll(label, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
