package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated batch; the first failure
	// stops the pipeline.
	Validators []Validator

	// DefaultCount is used when GenerateInput.Count is zero.
	DefaultCount int

	// MaxCount caps GenerateInput.Count.
	MaxCount int

	// OptionsPerQuestion is the number of options requested per question.
	OptionsPerQuestion int

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions is the maximum number of prior prompts included
	// in the request for deduplication.
	MaxPriorQuestions int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&CountValidator{},
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		DefaultCount:       3,
		MaxCount:           10,
		OptionsPerQuestion: 4,
		MaxAttempts:        2,
		MaxTokens:          2048,
		Temperature:        0.7,
		MaxPriorQuestions:  10,
	}
}
