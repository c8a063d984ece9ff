package questiongen

import "github.com/abhisek/boardprep/internal/llm"

// BatchSchema is the response schema for a question batch. The root is an
// object because strict structured-output modes reject array roots.
var BatchSchema = &llm.Schema{
	Name:        "bseb-question-batch",
	Description: "A batch of Class 10 multiple-choice practice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Unique identifier within the batch",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, in Hinglish",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
							"description": "Exactly 4 distinct answer options",
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Index of the correct option (0-3)",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Detailed explanation in Hindi",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"Beginner", "Intermediate", "Advanced"},
						},
					},
					"required":             []any{"id", "question", "options", "correctAnswerIndex", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
