package grading

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/wordmath/internal/llm"
)

// Purpose tags feedback calls in the LLM event log.
const Purpose = "feedback"

// FeedbackRequest is everything the feedback prompt needs.
type FeedbackRequest struct {
	ProblemText   string
	UserAnswer    string
	CorrectAnswer float64
	IsCorrect     bool

	// Mistake is the likely cause of an incorrect answer, if one was
	// recognised.
	Mistake Mistake
}

// FeedbackWriter produces the natural-language feedback for a graded answer.
type FeedbackWriter interface {
	WriteFeedback(ctx context.Context, req FeedbackRequest) (string, error)
}

// FeedbackConfig holds configuration for the LLM feedback writer.
type FeedbackConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultFeedbackConfig returns sensible defaults.
func DefaultFeedbackConfig() FeedbackConfig {
	return FeedbackConfig{
		MaxTokens:   256,
		Temperature: 0.7,
	}
}

// LLMFeedbackWriter asks the LLM for free-text feedback.
type LLMFeedbackWriter struct {
	provider llm.Provider
	cfg      FeedbackConfig
}

// NewFeedbackWriter creates an LLM-based feedback writer.
func NewFeedbackWriter(provider llm.Provider, cfg FeedbackConfig) *LLMFeedbackWriter {
	return &LLMFeedbackWriter{provider: provider, cfg: cfg}
}

// WriteFeedback issues one free-text request. The reply is returned
// trimmed; an empty reply is an *llm.ErrInvalidResponse.
func (w *LLMFeedbackWriter) WriteFeedback(ctx context.Context, req FeedbackRequest) (string, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	prompt, err := buildFeedbackPrompt(req)
	if err != nil {
		return "", fmt.Errorf("build feedback prompt: %w", err)
	}

	resp, err := w.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   w.cfg.MaxTokens,
		Temperature: w.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM feedback failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty feedback")}
	}
	return text, nil
}

var feedbackTemplate = template.Must(template.New("feedback").Parse(`Generate personalized and encouraging feedback for a Primary 5 student (age 10-11) who attempted a math problem.

Problem: {{.ProblemText}}
User's Answer: {{.UserAnswer}}
Correct Answer: {{.Correct}}
Result: The user's answer was {{if .IsCorrect}}correct{{else}}incorrect{{end}}.
{{- if .Hint}}
Likely mistake: {{.Hint}}.
{{- end}}

{{if .IsCorrect -}}
Give a short praise and a brief, elegant summary of why they succeeded.
{{- else -}}
Be supportive. Gently explain what the problem was asking for, suggest a possible area where they might have made a mistake (like "check your steps for calculating the remainder" or "make sure you converted the fraction correctly"), and then give the correct final answer.
{{- end}}
Your feedback should be 2-4 sentences long. Do not use markdown (like **bold** or *italics*).`))

type feedbackPromptData struct {
	FeedbackRequest
	Correct string
	Hint    string
}

func buildFeedbackPrompt(req FeedbackRequest) (string, error) {
	data := feedbackPromptData{
		FeedbackRequest: req,
		Correct:         FormatNumber(req.CorrectAnswer),
	}
	if !req.IsCorrect {
		data.Hint = req.Mistake.Hint()
	}

	var buf bytes.Buffer
	if err := feedbackTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
