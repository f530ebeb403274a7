// Package models defines the core value types shared across taskcrew.
package models

// Complexity is the estimated effort class of a task.
type Complexity string

const (
	// ComplexitySimple indicates a task a single pass should finish.
	ComplexitySimple Complexity = "Simple"
	// ComplexityMedium indicates a task of moderate scope.
	ComplexityMedium Complexity = "Medium"
	// ComplexityComplex indicates a large or risky task.
	ComplexityComplex Complexity = "Complex"
)

// Valid returns true if the complexity is a known value.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	default:
		return false
	}
}

// TaskSpec describes one unit of development work produced by the designer.
// Identity is positional: a task is addressed by its index in the generated
// sequence, and no uniqueness is enforced on Name.
type TaskSpec struct {
	// Name is the short task title.
	Name string `json:"name"`
	// Description details what needs to be built.
	Description string `json:"description"`
	// ExpectedOutput is the concrete deliverable for the task.
	ExpectedOutput string `json:"expected_output"`
	// SuccessCriteria states how to verify the task is complete.
	SuccessCriteria string `json:"success_criteria"`
	// Dependencies names tasks that should be done first. It is
	// documentation only and never gates execution order.
	Dependencies string `json:"dependencies,omitempty"`
	// Complexity is the estimated effort class, if the model provided one.
	Complexity Complexity `json:"estimated_complexity,omitempty"`
}

// Brief is the project description the designer and runner operate on.
type Brief struct {
	// ProjectIdea is the free-text description of what to build.
	ProjectIdea string `json:"project_idea"`
	// TargetAudience describes who the project is for.
	TargetAudience string `json:"target_audience"`
	// Timeline is the intended delivery window.
	Timeline string `json:"timeline"`
}

// Default audience and timeline applied when the caller leaves them blank.
const (
	DefaultAudience = "general users"
	DefaultTimeline = "4 weeks"
)

// Normalized returns a copy with blank audience/timeline replaced by defaults.
func (b Brief) Normalized() Brief {
	if b.TargetAudience == "" {
		b.TargetAudience = DefaultAudience
	}
	if b.Timeline == "" {
		b.Timeline = DefaultTimeline
	}
	return b
}

// Analysis holds the verbatim model analysis of a project brief.
type Analysis struct {
	// Text is the raw analysis produced by the analyzer persona.
	Text string `json:"analysis"`
	// ProjectIdea echoes the analyzed brief.
	ProjectIdea string `json:"project_idea"`
	// TargetAudience echoes the analyzed brief.
	TargetAudience string `json:"target_audience"`
	// Timeline echoes the analyzed brief.
	Timeline string `json:"timeline"`
}

// DesignResult is the output of the task designer: the analysis, the
// extracted task sequence, and the rendered development guide.
type DesignResult struct {
	Analysis Analysis   `json:"analysis"`
	Tasks    []TaskSpec `json:"tasks"`
	Guide    string     `json:"guide"`
}
