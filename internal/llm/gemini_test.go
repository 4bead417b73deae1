package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_text": map[string]any{"type": "string"},
			"steps":        map[string]any{"type": "integer"},
			"topic":        map[string]any{"type": "string", "enum": []any{"fractions", "decimals", "percentages"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"problem_text", "steps"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["problem_text"].Type != "STRING" {
		t.Fatalf("expected STRING for problem_text, got %s", schema.Properties["problem_text"].Type)
	}
	if schema.Properties["steps"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for steps, got %s", schema.Properties["steps"].Type)
	}
	if len(schema.Properties["topic"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["topic"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestMapGeminiType_NumberForAnswers(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{"type": "number"})
	if schema.Type != "NUMBER" {
		t.Fatalf("expected NUMBER, got %s", schema.Type)
	}
}
