package plangen

import "github.com/arjun/coachfit/internal/llm"

// PlanSchema defines the JSON schema for workout plan responses.
var PlanSchema = &llm.Schema{
	Name:        "workout-plan",
	Description: "A structured workout plan tailored to the user's BMI and experience level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short, punchy plan title",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"beginner", "intermediate", "advanced"},
				"description": "Overall difficulty, matching the user's experience level",
			},
			"focus": map[string]any{
				"type":        "string",
				"description": "One-line summary of what the plan emphasizes",
			},
			"exercises": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Movement name",
						},
						"reps": map[string]any{
							"type":        "string",
							"description": "Sets and reps, or a duration, e.g. '3x12' or '45s'",
						},
						"notes": map[string]any{
							"type":        "string",
							"description": "Short coaching cues: form, tempo, breathing",
						},
					},
					"required": []any{"name", "reps", "notes"},
				},
				"description": "Ordered exercises for one session",
			},
		},
		"required":             []any{"title", "difficulty", "focus", "exercises"},
		"additionalProperties": false,
	},
}
