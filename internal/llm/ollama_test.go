package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOllamaProvider(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{BaseURL: server.URL, Model: "gemma3n:e4b"}, server.Client())
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}
	return p
}

func ollamaReply(content, doneReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":             "gemma3n:e4b",
			"message":           map[string]any{"role": "assistant", "content": content},
			"done":              true,
			"done_reason":       doneReason,
			"prompt_eval_count": 30,
			"eval_count":        20,
		})
	}
}

func TestOllamaProvider_StructuredHappyPath(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s, want /api/chat", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		ollamaReply(`{"problem_text":"A tank is 3/4 full. What fraction is empty?","final_answer":0.25}`, "stop")(w, r)
	}

	p := newTestOllamaProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You write word problems.",
		Messages:    []Message{{Role: RoleUser, Content: "One problem please."}},
		Schema:      testSchema(),
		MaxTokens:   128,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out struct {
		FinalAnswer float64 `json:"final_answer"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil || out.FinalAnswer != 0.25 {
		t.Errorf("content = %s (err %v)", resp.Content, err)
	}
	if resp.Usage.InputTokens != 30 || resp.Usage.OutputTokens != 20 || resp.Usage.TotalTokens != 50 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}

	if got["format"] == nil {
		t.Error("expected the schema to be sent as format")
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want 2", len(msgs))
	}
	if first := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message role = %v, want system", first["role"])
	}
	opts, _ := got["options"].(map[string]any)
	if opts["num_predict"] != float64(128) {
		t.Errorf("num_predict = %v", opts["num_predict"])
	}
}

func TestOllamaProvider_FreeText(t *testing.T) {
	p := newTestOllamaProvider(t, ollamaReply("Great work! 3/4 is 0.75.", "stop"))

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Give feedback."}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Great work! 3/4 is 0.75." {
		t.Errorf("text = %q", resp.Text())
	}
}

func TestOllamaProvider_SchemaMismatch(t *testing.T) {
	p := newTestOllamaProvider(t, ollamaReply(`{"problem_text":"x"}`, "stop"))

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "go"}},
		Schema:   testSchema(),
	})
	assertInvalidResponse(t, err)
}

func TestOllamaProvider_Truncated(t *testing.T) {
	p := newTestOllamaProvider(t, ollamaReply(`{"problem_text":"A tank`, "length"))

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "go"}},
		Schema:   testSchema(),
	})
	var maxErr *ErrMaxTokensExceeded
	if !errors.As(err, &maxErr) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T: %v", err, err)
	}
}

func TestOllamaProvider_ServerErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"model missing", http.StatusNotFound, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOllamaProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"status":"unavailable"}`))
			})

			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "go"}},
			})
			if !tt.check(err) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
		})
	}
}

func TestNewOllamaProvider_RequiresModel(t *testing.T) {
	if _, err := NewOllamaProvider(OllamaConfig{}, nil); err == nil {
		t.Fatal("expected an error without a model")
	}
}
