// Package coach implements the main coaching screen: the workout plan with
// its checklist, the coach chat, and the music player, on separate tabs.
package coach

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun/coachfit/internal/chat"
	"github.com/arjun/coachfit/internal/plangen"
	"github.com/arjun/coachfit/internal/quote"
	"github.com/arjun/coachfit/internal/screen"
	"github.com/arjun/coachfit/internal/session"
	"github.com/arjun/coachfit/internal/ui/components"
	"github.com/arjun/coachfit/internal/ui/layout"
)

// celebrationDelay is the pause between checking off the last exercise and
// the coach's congratulation appearing in chat.
const celebrationDelay = 1200 * time.Millisecond

const congratulation = "THAT'S A FULL PLAN DONE. Every single exercise. That's how habits are built. Recover well, eat something real, and come back hungry tomorrow."

// CoachScreen drives the active coaching session.
type CoachScreen struct {
	controller   *session.Controller
	generator    *plangen.Generator
	orchestrator *chat.Orchestrator
	quotes       *quote.Service

	chatInput   components.TextInput
	stream      <-chan chat.Event
	streaming   bool
	planPending bool
	quote       string

	selectedExercise int
	greeted          bool
}

var _ screen.Screen = (*CoachScreen)(nil)
var _ screen.KeyHintProvider = (*CoachScreen)(nil)

// New creates a CoachScreen with injected services. The session must already
// be active.
func New(controller *session.Controller, generator *plangen.Generator, orchestrator *chat.Orchestrator, quotes *quote.Service) *CoachScreen {
	return &CoachScreen{
		controller:   controller,
		generator:    generator,
		orchestrator: orchestrator,
		quotes:       quotes,
		chatInput:    components.NewTextInput("Ask your coach...", false, 200),
	}
}

func (c *CoachScreen) Title() string {
	return "Coach"
}

// Init seeds the greeting and kicks off plan generation and the quote fetch
// concurrently. They touch disjoint state and land as separate messages.
func (c *CoachScreen) Init() tea.Cmd {
	if !c.greeted {
		c.greeted = true
		c.orchestrator.SeedGreeting(c.controller.Profile())
	}
	c.planPending = true
	return tea.Batch(
		c.generatePlan(),
		c.fetchQuote(),
		c.chatInput.Init(),
	)
}

func (c *CoachScreen) KeyHints() []layout.KeyHint {
	switch c.controller.ActiveTab() {
	case session.TabPlan:
		hints := []layout.KeyHint{
			{Key: "Space", Description: "Check off"},
			{Key: "↑/↓", Description: "Select"},
		}
		if c.controller.PlanError() != nil {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
		}
		return append(hints, layout.KeyHint{Key: "Tab", Description: "Next tab"})
	case session.TabChat:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Tab", Description: "Next tab"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Space", Description: "Play/Pause"},
			{Key: "N/P", Description: "Track"},
			{Key: "Tab", Description: "Next tab"},
		}
	}
}

func (c *CoachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		return c.handlePlanReady(msg)

	case quoteMsg:
		c.quote = msg.Text
		return c, nil

	case chatEventMsg:
		return c.handleChatEvent(msg)

	case celebrateMsg:
		c.orchestrator.Inject(congratulation)
		c.controller.SetActiveTab(session.TabChat)
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if c.controller.ActiveTab() == session.TabChat && !c.streaming {
		var cmd tea.Cmd
		c.chatInput, cmd = c.chatInput.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *CoachScreen) handlePlanReady(msg planReadyMsg) (screen.Screen, tea.Cmd) {
	c.planPending = false
	if msg.Err != nil {
		// The previous plan, if any, stays installed. The plan tab shows
		// the error with a retry hint.
		c.controller.PlanFailed(msg.Err)
		return c, nil
	}
	c.controller.InstallPlan(msg.Plan)
	c.selectedExercise = 0
	return c, nil
}

func (c *CoachScreen) handleChatEvent(msg chatEventMsg) (screen.Screen, tea.Cmd) {
	if msg.Closed {
		c.streaming = false
		c.stream = nil
		return c, nil
	}
	// Deltas and the terminal error are already reflected in the
	// orchestrator's history; keep draining until the channel closes.
	return c, listenChat(msg.ch)
}

func (c *CoachScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "tab":
		c.controller.SetActiveTab((c.controller.ActiveTab() + 1) % 3)
		return c, nil
	case "shift+tab":
		c.controller.SetActiveTab((c.controller.ActiveTab() + 2) % 3)
		return c, nil
	}

	switch c.controller.ActiveTab() {
	case session.TabPlan:
		return c.handlePlanKey(key)
	case session.TabChat:
		return c.handleChatKey(msg, key)
	default:
		return c.handleMusicKey(key)
	}
}

func (c *CoachScreen) handlePlanKey(key string) (screen.Screen, tea.Cmd) {
	plan := c.controller.Plan()

	switch key {
	case "r", "R":
		if c.controller.PlanError() != nil && !c.planPending {
			c.planPending = true
			return c, c.generatePlan()
		}
	case "up", "k":
		if c.selectedExercise > 0 {
			c.selectedExercise--
		}
	case "down", "j":
		if plan != nil && c.selectedExercise < len(plan.Exercises)-1 {
			c.selectedExercise++
		}
	case "space", " ", "enter":
		if plan == nil {
			return c, nil
		}
		res, err := c.controller.ToggleExercise(c.selectedExercise)
		if err != nil {
			return c, nil
		}
		if res.Celebrate {
			return c, tea.Tick(celebrationDelay, func(time.Time) tea.Msg {
				return celebrateMsg{}
			})
		}
	}
	return c, nil
}

func (c *CoachScreen) handleChatKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	if c.streaming {
		// Input is disabled while a reply streams.
		return c, nil
	}
	if key == "enter" {
		return c, c.sendChat()
	}
	var cmd tea.Cmd
	c.chatInput, cmd = c.chatInput.Update(msg)
	return c, cmd
}

func (c *CoachScreen) handleMusicKey(key string) (screen.Screen, tea.Cmd) {
	pl := c.controller.Playlist()
	switch key {
	case "space", " ":
		pl.PlayPause()
	case "n", "N", "right":
		pl.NextTrack()
	case "p", "P", "left":
		pl.PrevTrack()
	}
	return c, nil
}

// sendChat starts a streamed exchange and arms the listener.
func (c *CoachScreen) sendChat() tea.Cmd {
	text := c.chatInput.Value()
	ch, err := c.orchestrator.Send(context.Background(), text)
	if err != nil {
		// Empty input or a send already in flight; nothing to do.
		return nil
	}
	c.stream = ch
	c.streaming = true
	c.chatInput = components.NewTextInput("Ask your coach...", false, 200)
	return tea.Batch(c.chatInput.Init(), listenChat(ch))
}

// listenChat pulls the next event off the stream. It re-arms itself from
// Update until the channel closes.
func listenChat(ch <-chan chat.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		return chatEventMsg{Event: e, Closed: !ok, ch: ch}
	}
}

func (c *CoachScreen) generatePlan() tea.Cmd {
	p := c.controller.Profile()
	return func() tea.Msg {
		plan, err := c.generator.Generate(context.Background(), p)
		return planReadyMsg{Plan: plan, Err: err}
	}
}

func (c *CoachScreen) fetchQuote() tea.Cmd {
	return func() tea.Msg {
		return quoteMsg{Text: c.quotes.Fetch(context.Background())}
	}
}

// Quote returns the fetched header quote, empty until it lands.
func (c *CoachScreen) Quote() string {
	return c.quote
}
