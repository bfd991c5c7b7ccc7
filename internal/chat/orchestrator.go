// Package chat maintains the coach conversation: ordered history, streamed
// replies accumulated into the last assistant message, and persona
// construction from the user's profile.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/arjun/coachfit/internal/llm"
	"github.com/arjun/coachfit/internal/profile"
)

// FallbackText replaces a broken reply when the stream fails. Partial
// fragment text is discarded; the conversation stays intact.
const FallbackText = "connection dropped — like willpower, it needs reinforcing — try again"

// Preconditions on Send.
var (
	ErrEmptyMessage = errors.New("chat: message is empty")
	ErrSendInFlight = errors.New("chat: a send is already in flight")
)

// Message is one turn in the conversation.
type Message struct {
	Role llm.Role
	Text string
}

// Event reports progress of an in-flight send. The event channel is closed
// when the reply is complete, failed, or abandoned.
type Event struct {
	// Delta is the fragment just appended to the reply.
	Delta string

	// Err is set on the terminal event of a failed stream. The fallback
	// message has already been installed in history by then.
	Err error
}

// Config holds chat settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for coach chat.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.8,
	}
}

// Orchestrator owns the conversation history and drives streamed exchanges
// with the backend. One send may be in flight at a time; callers must also
// disable input while a send is pending.
type Orchestrator struct {
	provider llm.Provider
	persona  string
	cfg      Config

	mu       sync.Mutex
	history  []Message
	inFlight bool
}

// New creates an Orchestrator for the given profile. The profile must
// already be valid.
func New(provider llm.Provider, p profile.Profile, cfg Config) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		persona:  buildPersona(p),
		cfg:      cfg,
	}
}

// History returns a copy of the conversation, oldest first.
func (o *Orchestrator) History() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Message, len(o.history))
	copy(out, o.history)
	return out
}

// InFlight reports whether a send is currently streaming.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// SeedGreeting appends the scripted coach greeting. Called once when the
// session activates.
func (o *Orchestrator) SeedGreeting(p profile.Profile) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history, Message{Role: llm.RoleAssistant, Text: greeting(p)})
}

// Inject appends a system-authored assistant message, e.g. the
// congratulation when the user completes every exercise.
func (o *Orchestrator) Inject(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history, Message{Role: llm.RoleAssistant, Text: text})
}

// Send appends the user's turn and an empty reply placeholder, then streams
// the coach's reply into that placeholder fragment by fragment. The user
// message is appended synchronously, before any network activity, so the UI
// reflects it without delay.
//
// Exactly one user message and one assistant message are appended per send,
// even when the stream delivers zero fragments. If the stream fails, the
// placeholder is replaced with FallbackText. If ctx is cancelled, the text
// accumulated so far remains valid and final.
func (o *Orchestrator) Send(ctx context.Context, userText string) (<-chan Event, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return nil, ErrEmptyMessage
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrSendInFlight
	}
	o.inFlight = true

	// Full prior history plus the new turn becomes the request context.
	o.history = append(o.history, Message{Role: llm.RoleUser, Text: userText})
	req := llm.Request{
		System:      o.persona,
		Messages:    make([]llm.Message, len(o.history)),
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}
	for i, m := range o.history {
		req.Messages[i] = llm.Message{Role: m.Role, Content: m.Text}
	}

	// Reply placeholder. Fragments accumulate at this index; history is
	// append-only, so later Injects can't invalidate it.
	o.history = append(o.history, Message{Role: llm.RoleAssistant, Text: ""})
	replyIdx := len(o.history) - 1
	o.mu.Unlock()

	events := make(chan Event, 1)

	stream, err := o.provider.GenerateStream(llm.WithPurpose(ctx, "chat"), req)
	if err != nil {
		o.failReply(replyIdx)
		events <- Event{Err: err}
		close(events)
		return events, nil
	}

	go func() {
		defer close(events)
		defer o.clearInFlight()
		for {
			select {
			case <-ctx.Done():
				// Abandoned: accumulated text is final.
				return
			case frag, ok := <-stream:
				if !ok {
					return
				}
				if frag.Err != nil {
					o.failReply(replyIdx)
					select {
					case events <- Event{Err: frag.Err}:
					case <-ctx.Done():
					}
					return
				}
				o.appendFragment(replyIdx, frag.Text)
				select {
				case events <- Event{Delta: frag.Text}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (o *Orchestrator) appendFragment(idx int, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history[idx].Text += text
}

// failReply replaces the placeholder (including any partial text) with the
// fixed fallback and clears the in-flight flag.
func (o *Orchestrator) failReply(idx int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history[idx].Text = FallbackText
	o.inFlight = false
}

func (o *Orchestrator) clearInFlight() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inFlight = false
}
