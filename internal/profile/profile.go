// Package profile holds the user's body metrics and experience level.
// A profile is entered once at onboarding and is immutable for the session.
package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Level is the user's self-assessed training experience.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists all valid levels in display order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Profile is the user-entered body metrics and experience level.
// Height and weight are kept as the raw entered strings; Validate
// guarantees they parse as positive numbers.
type Profile struct {
	Name     string
	HeightCM string
	WeightKG string
	Level    Level
}

// ValidationError reports malformed user-entered metrics. It blocks
// submission locally and never reaches the backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks that the profile is complete and the metrics parse as
// positive numbers.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := parsePositive(p.HeightCM); err != nil {
		return &ValidationError{Field: "height", Reason: err.Error()}
	}
	if _, err := parsePositive(p.WeightKG); err != nil {
		return &ValidationError{Field: "weight", Reason: err.Error()}
	}
	switch p.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return &ValidationError{Field: "level", Reason: fmt.Sprintf("unknown level %q", p.Level)}
	}
	return nil
}

// BMI computes body-mass index (weight_kg / height_m^2) rounded to one
// decimal place. Fails with a ValidationError when the metrics don't parse.
func (p Profile) BMI() (float64, error) {
	heightCM, err := parsePositive(p.HeightCM)
	if err != nil {
		return 0, &ValidationError{Field: "height", Reason: err.Error()}
	}
	weightKG, err := parsePositive(p.WeightKG)
	if err != nil {
		return 0, &ValidationError{Field: "weight", Reason: err.Error()}
	}

	heightM := heightCM / 100
	bmi := weightKG / (heightM * heightM)
	return math.Round(bmi*10) / 10, nil
}

// Band is the BMI band used to steer plan generation and the coach persona.
type Band int

const (
	BandUnderweight Band = iota // BMI < 20
	BandNormal                  // 20 <= BMI <= 24
	BandOverweight              // BMI > 24
)

// BMIBand classifies the profile's BMI. The profile must already be valid.
func (p Profile) BMIBand() (Band, error) {
	bmi, err := p.BMI()
	if err != nil {
		return BandNormal, err
	}
	switch {
	case bmi < 20:
		return BandUnderweight, nil
	case bmi > 24:
		return BandOverweight, nil
	default:
		return BandNormal, nil
	}
}

func parsePositive(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("must not be empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number")
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return v, nil
}
