package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arjun/coachfit/internal/llm"
	"github.com/arjun/coachfit/internal/profile"
)

func testProfile() profile.Profile {
	return profile.Profile{Name: "Dana", HeightCM: "175", WeightKG: "70", Level: profile.LevelIntermediate}
}

func newTestOrchestrator(t *testing.T, mock *llm.MockProvider) *Orchestrator {
	t.Helper()
	return New(mock, testProfile(), DefaultConfig())
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for e := range ch {
		events = append(events, e)
	}
	return events
}

func TestSend_StreamsIntoSingleReply(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{Fragments: []string{"Twelve reps. ", "No shortcuts."}})
	o := newTestOrchestrator(t, mock)

	ch, err := o.Send(context.Background(), "how many reps should I do")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drain(ch)

	history := o.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != llm.RoleUser || history[0].Text != "how many reps should I do" {
		t.Errorf("unexpected user message: %+v", history[0])
	}
	if history[1].Role != llm.RoleAssistant {
		t.Errorf("expected assistant reply, got %+v", history[1])
	}
	if history[1].Text != "Twelve reps. No shortcuts." {
		t.Errorf("expected fragments concatenated in order, got %q", history[1].Text)
	}
}

func TestSend_ZeroFragmentsLeavesEmptyReply(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{})
	o := newTestOrchestrator(t, mock)

	ch, err := o.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drain(ch)

	history := o.History()
	if len(history) != 2 {
		t.Fatalf("expected user message and empty reply, got %d messages", len(history))
	}
	if history[1].Text != "" {
		t.Errorf("expected empty reply text, got %q", history[1].Text)
	}
}

func TestSend_EmptyMessageRejected(t *testing.T) {
	o := newTestOrchestrator(t, llm.NewMockProvider())

	if _, err := o.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if len(o.History()) != 0 {
		t.Error("rejected send must not touch history")
	}
}

func TestSend_StreamFailureInstallsFallback(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{
		Fragments: []string{"partial answer that must not surv"},
		Err:       &llm.ErrProviderUnavailable{},
	})
	o := newTestOrchestrator(t, mock)

	ch, err := o.Send(context.Background(), "how many reps should I do")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events := drain(ch)

	last := events[len(events)-1]
	if last.Err == nil {
		t.Fatal("expected terminal error event")
	}

	history := o.History()
	if got := history[len(history)-1].Text; got != FallbackText {
		t.Errorf("expected fallback as last message, got %q", got)
	}
	if strings.Contains(history[len(history)-1].Text, "partial") {
		t.Error("partial fragment text must not be retained")
	}
	if o.InFlight() {
		t.Error("in-flight flag must clear after failure")
	}
}

func TestSend_OpenFailureInstallsFallback(t *testing.T) {
	// Empty stream queue: GenerateStream fails before any fragment.
	mock := llm.NewMockProvider()
	o := newTestOrchestrator(t, mock)

	ch, err := o.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	events := drain(ch)
	if len(events) != 1 || events[0].Err == nil {
		t.Fatalf("expected single error event, got %+v", events)
	}

	history := o.History()
	if len(history) != 2 {
		t.Fatalf("expected exactly one user and one assistant message, got %d", len(history))
	}
	if history[1].Text != FallbackText {
		t.Errorf("expected fallback text, got %q", history[1].Text)
	}
}

func TestSend_SecondSendWhileInFlightRejected(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{Fragments: []string{"thinking..."}})
	o := newTestOrchestrator(t, mock)

	ch, err := o.Send(context.Background(), "first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := o.Send(context.Background(), "second"); !errors.Is(err, ErrSendInFlight) {
		t.Fatalf("expected ErrSendInFlight, got %v", err)
	}
	drain(ch)
}

func TestSend_CancellationKeepsPartialText(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{Fragments: []string{"keep ", "this", " but not this"}})
	o := newTestOrchestrator(t, mock)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := o.Send(ctx, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Consume two fragments, then abandon the stream.
	<-ch
	<-ch
	cancel()
	drain(ch)

	history := o.History()
	got := history[len(history)-1].Text
	if !strings.HasPrefix(got, "keep ") {
		t.Errorf("expected accumulated prefix to remain, got %q", got)
	}
	if got == FallbackText {
		t.Error("cancellation must not install the fallback message")
	}
}

func TestSend_HistorySentAsContext(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{Fragments: []string{"Squats."}})
	mock.AddStream(llm.MockStream{Fragments: []string{"Three sets."}})
	o := newTestOrchestrator(t, mock)
	o.SeedGreeting(testProfile())

	drain(mustSend(t, o, "what should I do first"))
	drain(mustSend(t, o, "how many sets"))

	// Second request carries greeting + first exchange + new turn.
	req := mock.StreamCalls[1]
	if len(req.Messages) != 4 {
		t.Fatalf("expected 4 context messages, got %d", len(req.Messages))
	}
	if req.Messages[len(req.Messages)-1].Content != "how many sets" {
		t.Errorf("expected latest turn last, got %q", req.Messages[len(req.Messages)-1].Content)
	}
	if req.System == "" {
		t.Error("expected persona system instruction")
	}
}

func TestPersona_MentionsNameAndEmphasis(t *testing.T) {
	p := profile.Profile{Name: "Sam", HeightCM: "170", WeightKG: "95", Level: profile.LevelBeginner}
	persona := buildPersona(p)
	if !strings.Contains(persona, "Sam") {
		t.Error("persona must reference the user's name")
	}
	if !strings.Contains(persona, personaFatBurnFocus) {
		t.Error("expected fat-burn emphasis for BMI above 24")
	}
}

func TestSeedGreeting_ReferencesMetrics(t *testing.T) {
	o := newTestOrchestrator(t, llm.NewMockProvider())
	o.SeedGreeting(testProfile())

	history := o.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 message, got %d", len(history))
	}
	text := history[0].Text
	for _, want := range []string{"Dana", "175", "70", "22.9"} {
		if !strings.Contains(text, want) {
			t.Errorf("greeting missing %q: %s", want, text)
		}
	}
}

func TestInject_AppendsAssistantMessage(t *testing.T) {
	o := newTestOrchestrator(t, llm.NewMockProvider())
	o.Inject("That's the whole plan done. Monster.")

	history := o.History()
	if len(history) != 1 || history[0].Role != llm.RoleAssistant {
		t.Fatalf("expected injected assistant message, got %+v", history)
	}
}

func mustSend(t *testing.T, o *Orchestrator, text string) <-chan Event {
	t.Helper()
	ch, err := o.Send(context.Background(), text)
	if err != nil {
		t.Fatalf("Send(%q): %v", text, err)
	}
	return ch
}
