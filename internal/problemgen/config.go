package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated problem. The first failure stops the pipeline.
	Validators []Validator

	// Topics restricts the areas a problem may cover. Empty means AllTopics.
	Topics []Topic

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
		},
		Topics:      AllTopics,
		MaxTokens:   512,
		Temperature: 0.7,
	}
}
