package plangen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arjun/coachfit/internal/llm"
	"github.com/arjun/coachfit/internal/profile"
)

// Generator produces workout plans from the backend provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// planOutput is the raw backend response before validation.
type planOutput struct {
	Title      string           `json:"title"`
	Difficulty string           `json:"difficulty"`
	Focus      string           `json:"focus"`
	Exercises  []exerciseOutput `json:"exercises"`
}

type exerciseOutput struct {
	Name  string `json:"name"`
	Reps  string `json:"reps"`
	Notes string `json:"notes"`
}

// Generate produces a workout plan for the given profile. On any backend or
// schema failure it returns a *GenerationError and the caller must leave its
// current plan untouched.
func (g *Generator) Generate(ctx context.Context, p profile.Profile) (*WorkoutPlan, error) {
	ctx = llm.WithPurpose(ctx, "plan")

	userMsg, err := buildUserMessage(p)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      PlanSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	var raw planOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &GenerationError{Err: fmt.Errorf("parse plan response: %w", err)}
	}

	plan := &WorkoutPlan{
		Title:      raw.Title,
		Difficulty: raw.Difficulty,
		Focus:      raw.Focus,
	}
	for _, e := range raw.Exercises {
		plan.Exercises = append(plan.Exercises, Exercise{
			Name:  e.Name,
			Reps:  e.Reps,
			Notes: e.Notes,
		})
	}

	if err := validatePlan(plan); err != nil {
		return nil, &GenerationError{Err: err}
	}

	return plan, nil
}

// validatePlan rejects structurally valid JSON that is still unusable as a
// plan. The schema enforces shape; this enforces content.
func validatePlan(plan *WorkoutPlan) error {
	if strings.TrimSpace(plan.Title) == "" {
		return fmt.Errorf("plan has no title")
	}
	if len(plan.Exercises) == 0 {
		return fmt.Errorf("plan has no exercises")
	}
	for i, e := range plan.Exercises {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("exercise %d has no name", i+1)
		}
		if strings.TrimSpace(e.Reps) == "" {
			return fmt.Errorf("exercise %q has no reps", e.Name)
		}
	}
	return nil
}
