package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestIsOutputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid", &ErrInvalidResponse{Err: errors.New("missing final_answer")}, true},
		{"truncated", &ErrMaxTokensExceeded{Content: json.RawMessage(`{"problem_text":"A`)}, true},
		{"wrapped invalid", fmt.Errorf("LLM generation failed: %w", &ErrInvalidResponse{}), true},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, false},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("dial tcp")}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOutputError(tt.err); got != tt.want {
				t.Errorf("IsOutputError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrRateLimit_Message(t *testing.T) {
	withHint := &ErrRateLimit{RetryAfter: 2 * time.Second, Err: errors.New("slow down")}
	if !strings.Contains(withHint.Error(), "retry after 2s") {
		t.Errorf("message = %q", withHint.Error())
	}
	noHint := &ErrRateLimit{Err: errors.New("slow down")}
	if strings.Contains(noHint.Error(), "retry after") {
		t.Errorf("message = %q, want no retry hint", noHint.Error())
	}
}
