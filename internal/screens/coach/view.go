package coach

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/arjun/coachfit/internal/llm"
	"github.com/arjun/coachfit/internal/session"
	"github.com/arjun/coachfit/internal/ui/components"
	"github.com/arjun/coachfit/internal/ui/theme"
)

func (c *CoachScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(c.renderTabBar(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch c.controller.ActiveTab() {
	case session.TabPlan:
		b.WriteString(c.renderPlanTab(width))
	case session.TabChat:
		b.WriteString(c.renderChatTab(width, height))
	default:
		b.WriteString(c.renderMusicTab(width))
	}

	return b.String()
}

func (c *CoachScreen) renderTabBar(width int) string {
	tabs := []struct {
		tab   session.Tab
		label string
	}{
		{session.TabPlan, "Plan"},
		{session.TabChat, "Coach Chat"},
		{session.TabMusic, "Music"},
	}

	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.tab == c.controller.ActiveTab() {
			parts = append(parts, theme.TabActive.Render("["+t.label+"]"))
		} else {
			parts = append(parts, theme.TabInactive.Render(" "+t.label+" "))
		}
	}
	return "  " + strings.Join(parts, " ")
}

func (c *CoachScreen) renderPlanTab(width int) string {
	if c.planPending {
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  Building your plan...")
	}

	var b strings.Builder

	if err := c.controller.PlanError(); err != nil {
		b.WriteString(theme.Failed.Render("  ✗ Plan generation failed"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + err.Error()))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("    press R to retry"))
		b.WriteString("\n\n")
	}

	plan := c.controller.Plan()
	if plan == nil {
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + plan.Title))
	b.WriteString("\n")
	sub := fmt.Sprintf("  %s · %s", plan.Difficulty, plan.Focus)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(sub))
	b.WriteString("\n\n")

	for i, ex := range plan.Exercises {
		box := "[ ]"
		style := theme.Unselected
		if c.controller.Completed(i) {
			box = "[✓]"
			style = theme.Done
		}
		cursor := "  "
		if i == c.selectedExercise {
			cursor = "▸ "
			style = style.Bold(true)
		}
		line := fmt.Sprintf("  %s%s %s — %s", cursor, box, ex.Name, ex.Reps)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		if ex.Notes != "" {
			b.WriteString(theme.Hint.Render("         " + ex.Notes))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	done := c.controller.CompletedCount()
	total := len(plan.Exercises)
	bar := components.NewProgressBar("  Progress", float64(done)/float64(total), true, min(width-8, 60))
	b.WriteString(bar.View())
	if c.controller.AllDone() {
		b.WriteString("\n\n")
		b.WriteString(theme.Done.Render("  ★ Workout complete!"))
	}

	return b.String()
}

func (c *CoachScreen) renderChatTab(width, height int) string {
	var b strings.Builder

	history := c.orchestrator.History()

	// Fit what we can; oldest messages scroll off the top.
	wrap := lipgloss.NewStyle().Width(max(width-10, 20))
	var lines []string
	for _, m := range history {
		var rendered string
		if m.Role == llm.RoleUser {
			rendered = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  You: ") +
				wrap.Render(m.Text)
		} else {
			rendered = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Coach: ") +
				wrap.Render(m.Text)
		}
		lines = append(lines, rendered, "")
	}

	budget := height - 12
	if budget < 4 {
		budget = 4
	}
	total := 0
	start := len(lines)
	for start > 0 {
		h := lipgloss.Height(lines[start-1])
		if total+h > budget {
			break
		}
		total += h
		start--
	}
	b.WriteString(strings.Join(lines[start:], "\n"))
	b.WriteString("\n")

	if c.streaming {
		b.WriteString(theme.Hint.Render("  coach is typing..."))
		b.WriteString("\n")
	} else {
		b.WriteString("  > " + c.chatInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (c *CoachScreen) renderMusicTab(width int) string {
	var b strings.Builder
	pl := c.controller.Playlist()

	status := "⏸ paused"
	if pl.Playing() {
		status = "▶ playing"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Workout Mix"))
	b.WriteString("   ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(status))
	b.WriteString("\n\n")

	for i, tr := range pl.Tracks() {
		cursor := "   "
		style := theme.Unselected
		if i == pl.Current() {
			cursor = " ▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s — %s  %s", cursor, tr.Title, tr.Artist, tr.Duration)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if notice := pl.Notice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Failed.Render("  ✗ " + notice))
		b.WriteString("\n")
	}

	return b.String()
}
