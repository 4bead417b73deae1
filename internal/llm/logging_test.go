package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/wordmath/internal/store"
)

type failingEventRepo struct {
	store.EventRepo
}

func (failingEventRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return errors.New("disk full")
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	events := store.NewMemory()
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", events)

	ctx := WithPurpose(context.Background(), "problem-gen")
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "go"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(WithPurpose(context.Background(), "feedback"), Request{}); err == nil {
		t.Fatal("expected error")
	}

	got, err := events.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}

	failed, succeeded := got[0], got[1]
	if failed.Success || failed.ErrorMessage == "" || failed.Purpose != "feedback" {
		t.Fatalf("unexpected failed event: %+v", failed)
	}
	if !succeeded.Success || succeeded.Purpose != "problem-gen" || succeeded.Provider != "mock" {
		t.Fatalf("unexpected ok event: %+v", succeeded)
	}
	if succeeded.InputTokens != 12 || succeeded.OutputTokens != 7 {
		t.Fatalf("unexpected token counts: %+v", succeeded)
	}
	if succeeded.ResponseBody != `{"ok":true}` {
		t.Fatalf("unexpected response body: %q", succeeded.ResponseBody)
	}
}

func TestLoggingProvider_RecordFailureDoesNotFailCall(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", failingEventRepo{})

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("expected success despite event write failure, got: %v", err)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSerializeRequest(t *testing.T) {
	out := serializeRequest(Request{
		System:   "be kind",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   &Schema{Name: "word-problem", Definition: map[string]any{"type": "object"}},
	})
	want := "[system]\nbe kind\n\n[user]\nhello\n\n[schema: word-problem]\n{\"type\":\"object\"}\n"
	if out != want {
		t.Fatalf("serializeRequest() = %q, want %q", out, want)
	}
}
