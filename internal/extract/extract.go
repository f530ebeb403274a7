// Package extract turns raw model output into a normalized task sequence.
//
// Extraction is a chain of fallback tiers: strict JSON, repaired JSON, a
// line-oriented marker heuristic, and finally a fixed task template. The
// chain never fails; malformed input degrades to the next tier.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/bstark/taskcrew/pkg/models"
)

// Line markers recognized by the heuristic tier.
const (
	markerName     = "TASK NAME:"
	markerDesc     = "DESCRIPTION:"
	markerOutput   = "EXPECTED OUTPUT:"
	markerCriteria = "SUCCESS CRITERIA:"
)

// rawTask is the JSON structure the model is asked to emit per task.
type rawTask struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ExpectedOutput  string `json:"expected_output"`
	SuccessCriteria string `json:"success_criteria"`
	Dependencies    string `json:"dependencies"`
	Complexity      string `json:"estimated_complexity"`
}

// Tasks extracts an ordered task sequence from raw model output. It never
// returns an error: a response with no parseable tasks yields the fixed
// fallback sequence. Pure function of its input.
func Tasks(raw string) []models.TaskSpec {
	if tasks, ok := parseJSONTier(raw); ok {
		return tasks
	}
	if tasks, ok := parseMarkerTier(raw); ok {
		return tasks
	}
	return FallbackTasks()
}

// parseJSONTier locates the bracketed array substring (first '[' to last ']')
// and decodes it, retrying once through jsonrepair when strict parsing fails.
func parseJSONTier(raw string) ([]models.TaskSpec, bool) {
	jsonStart := strings.Index(raw, "[")
	jsonEnd := strings.LastIndex(raw, "]")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, false
	}
	jsonStr := raw[jsonStart : jsonEnd+1]

	tasks, ok := decodeTasks(jsonStr)
	if ok {
		return tasks, true
	}

	repaired, err := jsonrepair.JSONRepair(jsonStr)
	if err != nil {
		return nil, false
	}

	// A repaired result that decodes to nothing is treated as noise, not as
	// a deliberate empty list.
	tasks, ok = decodeTasks(repaired)
	if !ok || len(tasks) == 0 {
		return nil, false
	}
	return tasks, true
}

// decodeTasks decodes a JSON array of tasks. A well-formed empty array is a
// valid zero-task result, not a failure.
func decodeTasks(jsonStr string) ([]models.TaskSpec, bool) {
	var decoded []rawTask
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		return nil, false
	}

	tasks := make([]models.TaskSpec, len(decoded))
	for i, rt := range decoded {
		tasks[i] = models.TaskSpec{
			Name:            rt.Name,
			Description:     rt.Description,
			ExpectedOutput:  rt.ExpectedOutput,
			SuccessCriteria: rt.SuccessCriteria,
			Dependencies:    rt.Dependencies,
			Complexity:      models.Complexity(rt.Complexity),
		}
	}
	return tasks, true
}

// parseMarkerTier scans lines for TASK NAME / DESCRIPTION / EXPECTED OUTPUT /
// SUCCESS CRITERIA markers. A TASK NAME marker closes out the in-progress
// record and opens a new one; the other markers set fields on the current
// record. The final in-progress record is flushed at end of input.
func parseMarkerTier(raw string) ([]models.TaskSpec, bool) {
	var tasks []models.TaskSpec
	var current *models.TaskSpec

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.Contains(line, markerName):
			if current != nil {
				tasks = append(tasks, *current)
			}
			current = &models.TaskSpec{Name: afterMarker(line, markerName)}
		case current == nil:
			// Field markers before the first TASK NAME have nothing to
			// attach to.
		case strings.Contains(line, markerDesc):
			current.Description = afterMarker(line, markerDesc)
		case strings.Contains(line, markerOutput):
			current.ExpectedOutput = afterMarker(line, markerOutput)
		case strings.Contains(line, markerCriteria):
			current.SuccessCriteria = afterMarker(line, markerCriteria)
		}
	}

	if current != nil {
		tasks = append(tasks, *current)
	}

	return tasks, len(tasks) > 0
}

// afterMarker returns the trimmed text following the first occurrence of the
// marker in the line.
func afterMarker(line, marker string) string {
	idx := strings.Index(line, marker)
	return strings.TrimSpace(line[idx+len(marker):])
}

// FallbackTasks returns the fixed three-task sequence used when nothing
// parseable was found.
func FallbackTasks() []models.TaskSpec {
	return []models.TaskSpec{
		{
			Name:            "Project Setup",
			Description:     "Set up basic project structure and files",
			ExpectedOutput:  "Working project foundation",
			SuccessCriteria: "Files can be opened and basic structure exists",
		},
		{
			Name:            "Core Implementation",
			Description:     "Implement main functionality",
			ExpectedOutput:  "Working core features",
			SuccessCriteria: "Main features function as expected",
		},
		{
			Name:            "Testing and Polish",
			Description:     "Test functionality and add finishing touches",
			ExpectedOutput:  "Polished, working application",
			SuccessCriteria: "Application works without errors",
		},
	}
}
