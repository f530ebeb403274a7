package models

import "time"

// ExecutionRecord is the outcome of attempting one TaskSpec. A record is
// created exactly once per attempt and never mutated afterwards.
type ExecutionRecord struct {
	// Label identifies the record: task_<index>_<slugified name>.
	Label string `json:"label"`
	// Task is the originating task spec.
	Task TaskSpec `json:"task"`
	// Output is the result payload on success.
	Output string `json:"output,omitempty"`
	// Err is the error message on failure.
	Err string `json:"error,omitempty"`
	// EstimatedTokens is the crude token estimate logged before execution.
	EstimatedTokens int `json:"estimated_tokens"`
	// Duration is the wall-clock execution time. Zero for failed attempts
	// that never returned a result.
	Duration time.Duration `json:"duration"`
	// Timestamp is when the record was created.
	Timestamp time.Time `json:"timestamp"`
}

// Succeeded returns true if the attempt produced a result.
func (r ExecutionRecord) Succeeded() bool {
	return r.Err == ""
}

// RunReport aggregates the outcome of a full crew run.
type RunReport struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// Analysis is the project analysis the run was based on.
	Analysis Analysis `json:"analysis"`
	// Tasks is the designed task sequence, in execution order.
	Tasks []TaskSpec `json:"tasks"`
	// Guide is the rendered development guide.
	Guide string `json:"guide"`
	// Records holds one entry per attempted task, in execution order.
	Records []ExecutionRecord `json:"records"`
	// Combined is the synthesized Markdown report. Empty when no task
	// succeeded.
	Combined string `json:"combined,omitempty"`
	// StartedAt is when execution began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when execution ended.
	FinishedAt time.Time `json:"finished_at"`
}

// Succeeded returns the records for tasks that completed.
func (r *RunReport) Succeeded() []ExecutionRecord {
	var out []ExecutionRecord
	for _, rec := range r.Records {
		if rec.Succeeded() {
			out = append(out, rec)
		}
	}
	return out
}

// Failed returns the records for tasks that errored.
func (r *RunReport) Failed() []ExecutionRecord {
	var out []ExecutionRecord
	for _, rec := range r.Records {
		if !rec.Succeeded() {
			out = append(out, rec)
		}
	}
	return out
}
