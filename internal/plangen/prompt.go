package plangen

import (
	"fmt"
	"strings"

	"github.com/arjun/coachfit/internal/profile"
)

const systemPrompt = `You are an experienced fitness coach building a single-session workout plan.

Rules:
- Build one complete session for the given user: 5 to 8 exercises, ordered warm-up first.
- Every exercise needs a name, a reps or duration prescription, and one or two short coaching cues.
- Match the difficulty to the user's experience level. Never prescribe advanced barbell work to a beginner.
- Respect the body-composition emphasis given for the user's BMI.
- Exercises must be doable at home or in a basic gym. No specialized machines.
- Keep all text plain and direct. No markdown, no emoji.`

// Hints appended to the prompt based on the user's BMI band.
const (
	fatBurnHint     = "Emphasis: BMI is above 24. Favor high-intensity, fat-burning movements: intervals, compound movements, short rests."
	hypertrophyHint = "Emphasis: BMI is below 20. Favor thickness and hypertrophy work: controlled tempo, moderate reps, progressive load."
)

// buildUserMessage constructs the plan request from the profile.
// The profile must already be valid.
func buildUserMessage(p profile.Profile) (string, error) {
	bmi, err := p.BMI()
	if err != nil {
		return "", err
	}
	band, err := p.BMIBand()
	if err != nil {
		return "", err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Height: %s cm\n", p.HeightCM)
	fmt.Fprintf(&b, "Weight: %s kg\n", p.WeightKG)
	fmt.Fprintf(&b, "BMI: %.1f\n", bmi)
	fmt.Fprintf(&b, "Experience level: %s\n", p.Level)

	switch band {
	case profile.BandOverweight:
		b.WriteString("\n" + fatBurnHint + "\n")
	case profile.BandUnderweight:
		b.WriteString("\n" + hypertrophyHint + "\n")
	}

	return b.String(), nil
}
