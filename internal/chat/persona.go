package chat

import (
	"fmt"
	"strings"

	"github.com/arjun/coachfit/internal/profile"
)

const personaPrompt = `You are %s's personal fitness coach: blunt, caring, high-energy.

Rules:
- Answer training, recovery, and nutrition questions directly. No hedging, no disclaimers.
- Keep replies short: two to four sentences unless the user asks for detail.
- Push the user. Celebrate effort loudly, call out excuses plainly.
- Plain text only. No markdown, no emoji.`

// Emphasis lines appended per BMI band.
const (
	personaFatBurnFocus     = "The user's BMI is above 24: steer advice toward fat-burning, conditioning, and consistency."
	personaHypertrophyFocus = "The user's BMI is below 20: steer advice toward hypertrophy, eating enough, and progressive overload."
)

// buildPersona constructs the coach system instruction from the profile.
// When the BMI band can't be computed the emphasis line is simply omitted.
func buildPersona(p profile.Profile) string {
	band, _ := p.BMIBand()

	var b strings.Builder
	fmt.Fprintf(&b, personaPrompt, p.Name)
	fmt.Fprintf(&b, "\n\nThe user trains at the %s level.", p.Level)

	switch band {
	case profile.BandOverweight:
		b.WriteString("\n" + personaFatBurnFocus)
	case profile.BandUnderweight:
		b.WriteString("\n" + personaHypertrophyFocus)
	}

	return b.String()
}

// greeting is the scripted first coach message, seeded on activation.
func greeting(p profile.Profile) string {
	bmi, err := p.BMI()
	if err != nil {
		return fmt.Sprintf("Alright %s, let's get to work. Your plan is on the way.", p.Name)
	}
	return fmt.Sprintf(
		"Alright %s — %s cm, %s kg, BMI %.1f. I've seen worse, I've seen better. Your plan is on the way. Questions? Fire away.",
		p.Name, p.HeightCM, p.WeightKG, bmi,
	)
}
