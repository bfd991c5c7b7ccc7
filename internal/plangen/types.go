// Package plangen turns a profile into a structured, AI-generated workout
// plan.
package plangen

import "fmt"

// Exercise is a single movement in a workout plan. Immutable once produced.
type Exercise struct {
	// Name is the movement name, e.g. "Goblet Squat".
	Name string

	// Reps is the prescribed reps or duration, e.g. "3x12" or "45s".
	Reps string

	// Notes are short coaching cues for the movement.
	Notes string
}

// WorkoutPlan is a structured set of exercises tailored to a profile.
// Plans are replaced wholesale on regeneration, never partially updated.
type WorkoutPlan struct {
	Title      string
	Difficulty string
	Focus      string
	Exercises  []Exercise
}

// GenerationError reports a failed plan generation: the backend call failed
// or returned JSON that does not match the plan schema. Recoverable; the
// user retries manually and the previous plan stays in place.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("plan generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Config holds plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
