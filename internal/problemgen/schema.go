package problemgen

import "github.com/abhisek/wordmath/internal/llm"

// WordProblemSchema constrains the structured output of a generation call.
var WordProblemSchema = &llm.Schema{
	Name:        "word-problem",
	Description: "A single math word problem with its exact numeric answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_text": map[string]any{
				"type":        "string",
				"description": "The math word problem description.",
			},
			"final_answer": map[string]any{
				"type":        "number",
				"description": "The exact numerical answer to the problem.",
			},
		},
		"required":             []any{"problem_text", "final_answer"},
		"additionalProperties": false,
	},
}
