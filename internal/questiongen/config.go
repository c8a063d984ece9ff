package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every batch; the first failure wins.
	Validators []Validator

	// MaxTokens is the token budget for the whole batch. Hindi
	// explanations are token-heavy, so this is far above a single question.
	MaxTokens int

	Temperature float64
}

// DefaultConfig returns the standard validator chain and budgets.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&BatchValidator{},
		},
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
