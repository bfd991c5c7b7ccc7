package coach

import (
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun/coachfit/internal/chat"
	"github.com/arjun/coachfit/internal/llm"
	"github.com/arjun/coachfit/internal/plangen"
	"github.com/arjun/coachfit/internal/profile"
	"github.com/arjun/coachfit/internal/quote"
	"github.com/arjun/coachfit/internal/session"
)

func planJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Quick Pair",
		"difficulty": "beginner",
		"focus": "full body",
		"exercises": [
			{"name": "Squat", "reps": "3x10", "notes": ""},
			{"name": "Plank", "reps": "60s", "notes": "brace hard"}
		]
	}`)
}

func newTestCoach(t *testing.T, mock *llm.MockProvider) (*CoachScreen, *session.Controller, *chat.Orchestrator) {
	t.Helper()
	p := profile.Profile{Name: "Dana", HeightCM: "175", WeightKG: "70", Level: profile.LevelIntermediate}

	controller := session.NewController()
	if err := controller.Submit(p); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	orch := chat.New(mock, p, chat.DefaultConfig())
	gen := plangen.New(mock, plangen.DefaultConfig())
	c := New(controller, gen, orch, quote.NewService(mock))
	return c, controller, orch
}

func TestPlanReady_InstallsPlan(t *testing.T) {
	c, controller, _ := newTestCoach(t, llm.NewMockProvider())
	c.planPending = true

	plan := &plangen.WorkoutPlan{
		Title:     "Quick Pair",
		Exercises: []plangen.Exercise{{Name: "Squat", Reps: "3x10"}},
	}
	c.Update(planReadyMsg{Plan: plan})

	if c.planPending {
		t.Error("plan should no longer be pending")
	}
	if controller.Plan() == nil {
		t.Fatal("plan should be installed")
	}
	if !strings.Contains(c.View(80, 24), "Quick Pair") {
		t.Error("plan tab should render the plan title")
	}
}

func TestPlanFailed_ShowsRetryAndKeepsOldPlan(t *testing.T) {
	c, controller, _ := newTestCoach(t, llm.NewMockProvider())

	old := &plangen.WorkoutPlan{
		Title:     "Old Plan",
		Exercises: []plangen.Exercise{{Name: "Squat", Reps: "3x10"}},
	}
	c.Update(planReadyMsg{Plan: old})
	controller.ToggleExercise(0)

	c.Update(planReadyMsg{Err: &plangen.GenerationError{Err: &llm.ErrProviderUnavailable{}}})

	if controller.Plan() != old {
		t.Error("failed regeneration must keep the previous plan")
	}
	if !controller.Completed(0) {
		t.Error("failed regeneration must keep completion state")
	}
	view := c.View(80, 24)
	if !strings.Contains(view, "retry") {
		t.Errorf("expected retry affordance, got:\n%s", view)
	}
	if !strings.Contains(view, "Old Plan") {
		t.Error("previous plan should still render")
	}
}

func TestRetryKeyRegeneratesPlan(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: planJSON()})
	c, controller, _ := newTestCoach(t, mock)
	c.Update(planReadyMsg{Err: &plangen.GenerationError{Err: &llm.ErrProviderUnavailable{}}})

	_, cmd := c.Update(tea.KeyPressMsg{Code: 'r'})
	if cmd == nil {
		t.Fatal("expected a regeneration command")
	}
	msg := cmd()
	ready, ok := msg.(planReadyMsg)
	if !ok {
		t.Fatalf("expected planReadyMsg, got %T", msg)
	}
	c.Update(ready)

	if controller.Plan() == nil || controller.Plan().Title != "Quick Pair" {
		t.Errorf("expected regenerated plan installed, got %+v", controller.Plan())
	}
	if controller.PlanError() != nil {
		t.Error("successful retry must clear the plan error")
	}
}

func TestCelebrationFlow(t *testing.T) {
	c, controller, orch := newTestCoach(t, llm.NewMockProvider())
	c.Update(planReadyMsg{Plan: &plangen.WorkoutPlan{
		Title: "Quick Pair",
		Exercises: []plangen.Exercise{
			{Name: "Squat", Reps: "3x10"},
			{Name: "Plank", Reps: "60s"},
		},
	}})

	_, cmd := c.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Fatal("checking off the first exercise must not celebrate")
	}

	c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = c.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("checking off the last exercise must schedule the celebration")
	}

	c.Update(celebrateMsg{})

	history := orch.History()
	if len(history) == 0 || history[len(history)-1].Text != congratulation {
		t.Error("celebration must inject the coach's congratulation")
	}
	if controller.ActiveTab() != session.TabChat {
		t.Error("celebration must switch to the chat tab")
	}
}

func TestRecompletionCelebratesAgain(t *testing.T) {
	c, _, _ := newTestCoach(t, llm.NewMockProvider())
	c.Update(planReadyMsg{Plan: &plangen.WorkoutPlan{
		Title:     "Solo",
		Exercises: []plangen.Exercise{{Name: "Squat", Reps: "3x10"}},
	}})

	if _, cmd := c.Update(tea.KeyPressMsg{Code: ' '}); cmd == nil {
		t.Fatal("first completion must celebrate")
	}
	if _, cmd := c.Update(tea.KeyPressMsg{Code: ' '}); cmd != nil {
		t.Fatal("unchecking must not celebrate")
	}
	if _, cmd := c.Update(tea.KeyPressMsg{Code: ' '}); cmd == nil {
		t.Fatal("rechecking must celebrate again")
	}
}

func TestTabKeyCyclesTabs(t *testing.T) {
	c, controller, _ := newTestCoach(t, llm.NewMockProvider())

	c.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if controller.ActiveTab() != session.TabChat {
		t.Errorf("expected chat tab, got %v", controller.ActiveTab())
	}
	c.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if controller.ActiveTab() != session.TabMusic {
		t.Errorf("expected music tab, got %v", controller.ActiveTab())
	}
	c.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if controller.ActiveTab() != session.TabPlan {
		t.Errorf("expected wrap to plan tab, got %v", controller.ActiveTab())
	}
}

func TestChatSendStreamsReply(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{Fragments: []string{"Push ", "harder."}})
	c, controller, orch := newTestCoach(t, mock)
	controller.SetActiveTab(session.TabChat)

	c.chatInput.Model.SetValue("any advice")
	cmd := c.sendChat()
	if cmd == nil {
		t.Fatal("expected send command")
	}
	if !c.streaming {
		t.Fatal("expected streaming state while reply is in flight")
	}

	// Pump the listener until the stream closes.
	pump := listenChat(c.stream)
	for i := 0; i < 20; i++ {
		msg := pump()
		ev, ok := msg.(chatEventMsg)
		if !ok {
			t.Fatalf("expected chatEventMsg, got %T", msg)
		}
		_, next := c.Update(ev)
		if ev.Closed {
			break
		}
		if next == nil {
			t.Fatal("listener must re-arm until the channel closes")
		}
		pump = next
	}

	if c.streaming {
		t.Error("streaming must stop once the channel closes")
	}
	history := orch.History()
	last := history[len(history)-1]
	if last.Text != "Push harder." {
		t.Errorf("expected streamed reply accumulated, got %q", last.Text)
	}
}

func TestChatInputDisabledWhileStreaming(t *testing.T) {
	c, controller, _ := newTestCoach(t, llm.NewMockProvider())
	controller.SetActiveTab(session.TabChat)
	c.streaming = true

	c.Update(tea.KeyPressMsg{Code: 'x'})
	if c.chatInput.Value() != "" {
		t.Error("keystrokes must not reach the input while streaming")
	}
}

func TestQuoteMsgLandsInHeader(t *testing.T) {
	c, _, _ := newTestCoach(t, llm.NewMockProvider())
	c.Update(quoteMsg{Text: "go big or go home"})
	if c.Quote() != "go big or go home" {
		t.Errorf("unexpected quote: %q", c.Quote())
	}
}

func TestMusicKeysDriveThePlaylist(t *testing.T) {
	c, controller, _ := newTestCoach(t, llm.NewMockProvider())
	controller.SetActiveTab(session.TabMusic)

	c.Update(tea.KeyPressMsg{Code: ' '})
	if !controller.Playlist().Playing() {
		t.Error("space must start playback")
	}
	c.Update(tea.KeyPressMsg{Code: 'n'})
	if controller.Playlist().Current() != 1 {
		t.Errorf("expected track 1, got %d", controller.Playlist().Current())
	}
	c.Update(tea.KeyPressMsg{Code: 'p'})
	if controller.Playlist().Current() != 0 {
		t.Errorf("expected track 0, got %d", controller.Playlist().Current())
	}
}
