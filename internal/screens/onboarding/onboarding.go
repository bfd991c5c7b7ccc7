// Package onboarding implements the profile intake screen shown on launch.
package onboarding

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arjun/coachfit/internal/profile"
	"github.com/arjun/coachfit/internal/router"
	"github.com/arjun/coachfit/internal/screen"
	"github.com/arjun/coachfit/internal/session"
	"github.com/arjun/coachfit/internal/ui/components"
	"github.com/arjun/coachfit/internal/ui/layout"
	"github.com/arjun/coachfit/internal/ui/theme"
)

// Form fields, in focus order.
const (
	fieldName = iota
	fieldHeight
	fieldWeight
	fieldLevel
	fieldSubmit
	fieldCount
)

// OnboardingScreen collects the user's profile and activates the session.
type OnboardingScreen struct {
	controller   *session.Controller
	coachFactory func() screen.Screen

	name   components.TextInput
	height components.TextInput
	weight components.TextInput

	levels   []profile.Level
	levelIdx int
	focus    int

	errMsg string
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// New creates an OnboardingScreen. On a successful submit it replaces itself
// with the screen produced by coachFactory.
func New(controller *session.Controller, coachFactory func() screen.Screen) *OnboardingScreen {
	return &OnboardingScreen{
		controller:   controller,
		coachFactory: coachFactory,
		name:         components.NewTextInput("Your name", false, 40),
		height:       components.NewTextInput("Height in cm", true, 6),
		weight:       components.NewTextInput("Weight in kg", true, 6),
		levels:       profile.Levels(),
		levelIdx:     0,
	}
}

func (o *OnboardingScreen) Title() string {
	return "Get Started"
}

func (o *OnboardingScreen) Init() tea.Cmd {
	return o.name.Init()
}

func (o *OnboardingScreen) KeyHints() []layout.KeyHint {
	if o.focus == fieldLevel {
		return []layout.KeyHint{
			{Key: "←/→", Description: "Choose level"},
			{Key: "Tab", Description: "Next field"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
	}
}

func (o *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o.forwardToFocused(msg)
	}

	switch kmsg.String() {
	case "tab", "down":
		o.focus = (o.focus + 1) % fieldCount
		return o, nil
	case "shift+tab", "up":
		o.focus = (o.focus - 1 + fieldCount) % fieldCount
		return o, nil
	case "left":
		if o.focus == fieldLevel && o.levelIdx > 0 {
			o.levelIdx--
			return o, nil
		}
	case "right":
		if o.focus == fieldLevel && o.levelIdx < len(o.levels)-1 {
			o.levelIdx++
			return o, nil
		}
	case "enter":
		// Enter advances through fields and submits from the last one.
		if o.focus == fieldSubmit || o.focus == fieldLevel {
			return o, o.submit()
		}
		o.focus++
		return o, nil
	}

	return o.forwardToFocused(msg)
}

func (o *OnboardingScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch o.focus {
	case fieldName:
		o.name, cmd = o.name.Update(msg)
	case fieldHeight:
		o.height, cmd = o.height.Update(msg)
	case fieldWeight:
		o.weight, cmd = o.weight.Update(msg)
	}
	return o, cmd
}

// submit validates the form and activates the session. Validation failures
// stay on this screen with the error rendered inline.
func (o *OnboardingScreen) submit() tea.Cmd {
	p := o.buildProfile()

	if err := o.controller.Submit(p); err != nil {
		o.errMsg = err.Error()
		return nil
	}
	o.errMsg = ""

	coachScreen := o.coachFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: coachScreen}
	}
}

func (o *OnboardingScreen) buildProfile() profile.Profile {
	return profile.Profile{
		Name:     strings.TrimSpace(o.name.Value()),
		HeightCM: strings.TrimSpace(o.height.Value()),
		WeightKG: strings.TrimSpace(o.weight.Value()),
		Level:    o.levels[o.levelIdx],
	}
}

func (o *OnboardingScreen) View(width, height int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Tell me about yourself")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(o.renderField(fieldName, "Name", o.name.View()))
	b.WriteString(o.renderField(fieldHeight, "Height (cm)", o.height.View()))
	b.WriteString(o.renderField(fieldWeight, "Weight (kg)", o.weight.View()))
	b.WriteString(o.renderField(fieldLevel, "Level", o.renderLevels()))
	b.WriteString("\n")

	submit := components.NewButton("Start Training", o.focus == fieldSubmit, nil)
	b.WriteString(submit.View())
	b.WriteString("\n")

	if o.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("  ✗ %s", o.errMsg)))
		b.WriteString("\n")
	}

	card := theme.Card.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (o *OnboardingScreen) renderField(field int, label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(14)
	if o.focus == field {
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	return labelStyle.Render(label) + value + "\n"
}

func (o *OnboardingScreen) renderLevels() string {
	parts := make([]string, 0, len(o.levels))
	for i, lvl := range o.levels {
		label := string(lvl)
		if i == o.levelIdx {
			parts = append(parts, theme.Selected.Render("▸ "+label))
		} else {
			parts = append(parts, theme.Unselected.Render("  "+label))
		}
	}
	return strings.Join(parts, "   ")
}
