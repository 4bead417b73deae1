package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-word-problem",
		Description: "A test word problem",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"problem_text": map[string]any{"type": "string", "minLength": 1},
				"final_answer": map[string]any{"type": "number"},
				"topic":        map[string]any{"type": "string", "enum": []any{"fractions", "decimals"}},
			},
			"required":             []any{"problem_text", "final_answer"},
			"additionalProperties": false,
		},
	}
}

func assertInvalidResponse(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"problem_text":"What is 3/4 of 12?","final_answer":9,"topic":"fractions"}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"problem_text":"What is 0.2 + 0.3?","final_answer":0.5}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"problem_text":"What is 3/4 of 12?"}`)
	assertInvalidResponse(t, validateResponse(testSchema(), raw))
}

func TestValidateResponse_AnswerAsString(t *testing.T) {
	raw := json.RawMessage(`{"problem_text":"What is 3/4 of 12?","final_answer":"9"}`)
	assertInvalidResponse(t, validateResponse(testSchema(), raw))
}

func TestValidateResponse_EmptyStatement(t *testing.T) {
	raw := json.RawMessage(`{"problem_text":"","final_answer":9}`)
	assertInvalidResponse(t, validateResponse(testSchema(), raw))
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"problem_text":"p","final_answer":1,"topic":"geometry"}`)
	assertInvalidResponse(t, validateResponse(testSchema(), raw))
}

func TestValidateResponse_AdditionalProperty(t *testing.T) {
	raw := json.RawMessage(`{"problem_text":"p","final_answer":1,"hint":"think"}`)
	assertInvalidResponse(t, validateResponse(testSchema(), raw))
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	assertInvalidResponse(t, validateResponse(testSchema(), raw))
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	if err := validateResponse(testSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
