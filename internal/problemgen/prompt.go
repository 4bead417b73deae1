package problemgen

import (
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are an expert math problem generator for Primary 5 (age 10-11) students.
Your task is to generate a challenging but solvable word problem.

Rules:
- The problem must focus on one of the following topics: %s.
- Use plain text for all math. No LaTeX and no markdown.
- The problem must be self-contained and have exactly one numeric answer.
- Your output must be a single JSON object with the keys "problem_text" (string) and "final_answer" (number).
- The final_answer must be the exact numerical solution to the problem. Write fractions as decimals.
- Do not include any explanations or extra text.`

const userMessage = "Generate a new Primary 5 math word problem."

// buildSystemPrompt renders the system prompt for the given topics.
func buildSystemPrompt(topics []Topic) string {
	if len(topics) == 0 {
		topics = AllTopics
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = string(t)
	}
	return fmt.Sprintf(systemPromptTemplate, joinTopics(names))
}

// joinTopics renders "a, b, c, or d".
func joinTopics(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
