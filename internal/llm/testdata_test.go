package llm

// batchSchema is a cut-down question batch schema used across the
// provider tests.
func batchSchema(name string) *Schema {
	return &Schema{
		Name:        name,
		Description: "A batch of multiple-choice questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 4,
								"maxItems": 4,
							},
							"correctAnswerIndex": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
							"difficulty":         map[string]any{"type": "string", "enum": []string{"Beginner", "Intermediate", "Advanced"}},
						},
						"required":             []string{"question", "options", "correctAnswerIndex"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"questions"},
			"additionalProperties": false,
		},
	}
}

const validBatchJSON = `{"questions":[{"question":"HCF of 12 and 18?","options":["2","3","6","12"],"correctAnswerIndex":2,"difficulty":"Beginner"}]}`
