package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wordmath/internal/llm"
)

// Purpose tags generation calls in the LLM event log.
const Purpose = "problem-gen"

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// problemOutput is the raw LLM response before validation. Pointer fields
// distinguish a missing key from a zero value.
type problemOutput struct {
	ProblemText *string  `json:"problem_text"`
	FinalAnswer *float64 `json:"final_answer"`
}

// Generate issues one structured request and validates the result.
// Unparseable or incomplete output is reported as *llm.ErrInvalidResponse.
func (g *LLMGenerator) Generate(ctx context.Context) (*Problem, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System: buildSystemPrompt(g.config.Topics),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMessage},
		},
		Schema:      WordProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw problemOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse problem: %w", err)}
	}
	if raw.ProblemText == nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("problem_text missing")}
	}
	if raw.FinalAnswer == nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("final_answer missing")}
	}

	p := &Problem{
		Text:   strings.TrimSpace(*raw.ProblemText),
		Answer: *raw.FinalAnswer,
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(p); verr != nil {
			return nil, verr
		}
	}

	return p, nil
}
