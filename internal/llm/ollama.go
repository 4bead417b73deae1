package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaProvider implements Provider against a local or remote Ollama
// server. No API key is needed.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates a provider for the Ollama server at
// cfg.BaseURL.
func NewOllamaProvider(cfg OllamaConfig, httpClient *http.Client) (*OllamaProvider, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = defaultOllamaURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL %q: %w", raw, err)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OllamaProvider{
		client: api.NewClient(base, httpClient),
		model:  cfg.Model,
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model:    p.model,
		Stream:   &stream,
		Messages: buildOllamaMessages(req),
		Options:  map[string]any{},
	}
	if req.MaxTokens > 0 {
		chatReq.Options["num_predict"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		chatReq.Options["temperature"] = req.Temperature
	}

	// Ollama accepts a JSON schema directly as the response format.
	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		chatReq.Format = json.RawMessage(schemaBytes)
	}

	var (
		text  strings.Builder
		final api.ChatResponse
	)
	err := p.client.Chat(ctx, chatReq, func(cr api.ChatResponse) error {
		text.WriteString(cr.Message.Content)
		if cr.Done {
			final = cr
		}
		return nil
	})
	if err != nil {
		return nil, mapOllamaError(err)
	}

	if !final.Done {
		return nil, &ErrInvalidResponse{Content: json.RawMessage(text.String()), Err: errors.New("ollama stream ended before done")}
	}
	if final.DoneReason == "length" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(text.String())}
	}

	content := json.RawMessage(stripFences(text.String()))
	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	model := final.Model
	if model == "" {
		model = p.model
	}
	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  final.PromptEvalCount,
			OutputTokens: final.EvalCount,
			TotalTokens:  final.PromptEvalCount + final.EvalCount,
		},
		Model:      model,
		StopReason: mapOllamaStopReason(final.DoneReason),
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

func buildOllamaMessages(req Request) []api.Message {
	var messages []api.Message
	if req.System != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, api.Message{Role: string(m.Role), Content: m.Content})
	}
	return messages
}

func mapOllamaStopReason(reason string) string {
	if reason == "length" {
		return "max_tokens"
	}
	return "end"
}

func mapOllamaError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
