package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// Request is one unit of work submitted to an agent.
type Request struct {
	// Prompt is the full task prompt.
	Prompt string
	// Temperature overrides the agent's default sampling temperature when
	// non-negative.
	Temperature float64
}

// Executor runs a single request against a model and returns its result.
// Implemented by Agent; tests substitute fakes.
type Executor interface {
	Execute(ctx context.Context, req Request) (*Result, error)
}

// Agent binds a persona to a client and executes requests synchronously.
// Each Execute call is a single-turn conversation: persona as system prompt,
// request prompt as the user message.
type Agent struct {
	client      *Client
	persona     Persona
	temperature float64
	maxTokens   int
}

// Compile-time verification that Agent implements Executor.
var _ Executor = (*Agent)(nil)

// AgentConfig contains configuration for creating an Agent.
type AgentConfig struct {
	// Client is the Anthropic client to execute against.
	Client *Client
	// Persona is the agent identity.
	Persona Persona
	// Temperature is the default sampling temperature.
	Temperature float64
	// MaxTokens caps each response. Defaults to 8192.
	MaxTokens int
}

// NewAgent creates a new Agent.
func NewAgent(cfg AgentConfig) *Agent {
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}
	return &Agent{
		client:      cfg.Client,
		persona:     cfg.Persona,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}
}

// Persona returns the agent's persona.
func (a *Agent) Persona() Persona {
	return a.persona
}

// Execute submits the request and blocks until the model responds.
func (a *Agent) Execute(ctx context.Context, req Request) (*Result, error) {
	temperature := a.temperature
	if req.Temperature > 0 {
		temperature = req.Temperature
	}

	resp, err := a.client.sdk().Messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.client.Model(),
		MaxTokens:   int64(a.maxTokens),
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: a.persona.SystemPrompt()},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	a.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var text strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}

	return RawText(text.String()), nil
}

// IsRateLimit reports whether the error text indicates API throttling.
// Matching is a case-insensitive substring check against the markers.
func IsRateLimit(msg string, markers []string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
