package coach

import (
	"github.com/arjun/coachfit/internal/chat"
	"github.com/arjun/coachfit/internal/plangen"
)

// planReadyMsg is sent when plan generation finishes.
type planReadyMsg struct {
	Plan *plangen.WorkoutPlan
	Err  error
}

// quoteMsg carries the header quote once fetched.
type quoteMsg struct {
	Text string
}

// chatEventMsg is one event pulled off an in-flight chat stream. Closed is
// true when the stream channel was closed and the reply is final.
type chatEventMsg struct {
	Event  chat.Event
	Closed bool
	ch     <-chan chat.Event
}

// celebrateMsg fires after the celebration delay to inject the coach's
// congratulation and switch to the chat tab.
type celebrateMsg struct{}
