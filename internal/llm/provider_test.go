package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != PurposeUnknown {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "problem-gen")
	if p := PurposeFrom(ctx); p != "problem-gen" {
		t.Fatalf("expected 'problem-gen', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMockHelpers(t *testing.T) {
	mock := NewMockProvider(
		MockJSON(map[string]any{"problem_text": "p", "final_answer": 2}),
		MockText("Well done!"),
	)

	resp, err := mock.Generate(context.Background(), Request{System: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(resp.Content, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["final_answer"] != 2.0 {
		t.Fatalf("final_answer = %v", got["final_answer"])
	}

	resp, err = mock.Generate(context.Background(), Request{System: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Well done!" {
		t.Fatalf("Text() = %q", resp.Text())
	}

	last, ok := mock.LastCall()
	if !ok || last.System != "second" {
		t.Fatalf("LastCall() = %+v, %v", last, ok)
	}
}

func TestDefaultConfig_NoRetries(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Fatalf("default provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("default MaxAttempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
	if got := resolveModel(cfg.Gemini.Model, geminiModels); got != "gemini-2.5-flash" {
		t.Fatalf("default gemini model = %q", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WORDMATH_LLM_PROVIDER", "openai")
	t.Setenv("WORDMATH_OPENAI_API_KEY", "sk-env")
	t.Setenv("WORDMATH_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("WORDMATH_LLM_MAX_ATTEMPTS", "3")
	t.Setenv("WORDMATH_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("unexpected openai config: %+v", cfg.OpenAI)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout.String() != "5s" {
		t.Fatalf("Timeout = %s, want 5s", cfg.Timeout)
	}
}

func TestDiscover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	t.Run("nothing set", func(t *testing.T) {
		if _, ok := Discover(DefaultConfig()); ok {
			t.Fatal("expected no provider to be discovered")
		}
	})

	t.Run("google key selects gemini", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "g-key")
		t.Setenv("OPENAI_API_KEY", "sk-key")
		cfg, ok := Discover(DefaultConfig())
		if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
			t.Fatalf("Discover() = %+v, %v", cfg, ok)
		}
	})

	t.Run("configured provider wins", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "g-key")
		in := DefaultConfig()
		in.Provider = "anthropic"
		in.Anthropic.APIKey = "sk-ant"
		cfg, ok := Discover(in)
		if !ok || cfg.Provider != "anthropic" {
			t.Fatalf("Discover() = %+v, %v", cfg, ok)
		}
	})
}
