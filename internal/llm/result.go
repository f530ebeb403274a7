package llm

import "encoding/json"

// ResultKind distinguishes the shape of an execution result.
type ResultKind string

const (
	// KindRawText is a plain text payload.
	KindRawText ResultKind = "raw_text"
	// KindStructured is a JSON payload.
	KindStructured ResultKind = "structured"
)

// Result is the outcome of one model invocation, as a tagged variant: either
// raw text or structured JSON. Text() normalizes both to a string.
type Result struct {
	Kind ResultKind      `json:"kind"`
	Raw  string          `json:"raw,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// RawText wraps a plain text payload.
func RawText(s string) *Result {
	return &Result{Kind: KindRawText, Raw: s}
}

// Structured wraps a JSON payload.
func Structured(data json.RawMessage) *Result {
	return &Result{Kind: KindStructured, Data: data}
}

// Text returns the result normalized to a string.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case KindStructured:
		return string(r.Data)
	default:
		return r.Raw
	}
}
