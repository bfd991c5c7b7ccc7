// Package session holds the runtime state of a coaching session: the phase
// machine, the active plan with its completion set, and the music playlist.
package session

import (
	"errors"
	"fmt"

	"github.com/arjun/coachfit/internal/plangen"
	"github.com/arjun/coachfit/internal/profile"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseOnboarding Phase = iota // Collecting the user's profile
	PhaseActive                  // Coaching screen live
)

// Tab identifies a coach screen tab.
type Tab int

const (
	TabPlan Tab = iota
	TabChat
	TabMusic
)

var (
	// ErrAlreadyActive is returned on a second Submit. The profile is
	// immutable once the session activates.
	ErrAlreadyActive = errors.New("session: already active")

	// ErrNoPlan is returned when toggling before a plan is installed.
	ErrNoPlan = errors.New("session: no plan installed")
)

// ToggleResult reports the outcome of toggling one exercise.
type ToggleResult struct {
	// Completed is the new state of the toggled exercise.
	Completed bool

	// AllDone is true when every exercise in the plan is checked off.
	AllDone bool

	// Celebrate is true on every transition into the all-done condition.
	// Unchecking and rechecking the last exercise celebrates again.
	Celebrate bool
}

// Controller tracks session state. It is driven from the UI event loop and
// is not safe for concurrent use.
type Controller struct {
	phase   Phase
	profile profile.Profile

	plan      *plangen.WorkoutPlan
	completed []bool
	planErr   error

	activeTab Tab
	playlist  Playlist
}

// NewController creates a Controller in the onboarding phase.
func NewController() *Controller {
	return &Controller{
		phase:    PhaseOnboarding,
		playlist: defaultPlaylist(),
	}
}

// Phase returns the current session phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Submit validates the profile and activates the session. The transition is
// irreversible; a second call returns ErrAlreadyActive. On a validation
// error the session stays in onboarding.
func (c *Controller) Submit(p profile.Profile) error {
	if c.phase != PhaseOnboarding {
		return ErrAlreadyActive
	}
	if err := p.Validate(); err != nil {
		return err
	}
	c.profile = p
	c.phase = PhaseActive
	return nil
}

// Profile returns the stored profile. Only meaningful once active.
func (c *Controller) Profile() profile.Profile {
	return c.profile
}

// InstallPlan swaps in a freshly generated plan. The plan and its completion
// set are replaced together, and any recorded generation error is cleared.
func (c *Controller) InstallPlan(plan *plangen.WorkoutPlan) {
	c.plan = plan
	c.completed = make([]bool, len(plan.Exercises))
	c.planErr = nil
}

// PlanFailed records a retryable generation error. The previous plan and its
// completion set, if any, are left untouched.
func (c *Controller) PlanFailed(err error) {
	c.planErr = err
}

// Plan returns the active plan, or nil when none has been installed.
func (c *Controller) Plan() *plangen.WorkoutPlan {
	return c.plan
}

// PlanError returns the most recent generation error, cleared by the next
// successful InstallPlan.
func (c *Controller) PlanError() error {
	return c.planErr
}

// ToggleExercise flips the completion state of the exercise at index i.
func (c *Controller) ToggleExercise(i int) (ToggleResult, error) {
	if c.plan == nil {
		return ToggleResult{}, ErrNoPlan
	}
	if i < 0 || i >= len(c.completed) {
		return ToggleResult{}, fmt.Errorf("session: exercise index %d out of range [0,%d)", i, len(c.completed))
	}

	wasAllDone := c.allDone()
	c.completed[i] = !c.completed[i]
	allDone := c.allDone()

	return ToggleResult{
		Completed: c.completed[i],
		AllDone:   allDone,
		Celebrate: allDone && !wasAllDone,
	}, nil
}

// Completed reports whether the exercise at index i is checked off.
func (c *Controller) Completed(i int) bool {
	if i < 0 || i >= len(c.completed) {
		return false
	}
	return c.completed[i]
}

// CompletedCount returns the number of checked-off exercises.
func (c *Controller) CompletedCount() int {
	n := 0
	for _, done := range c.completed {
		if done {
			n++
		}
	}
	return n
}

// AllDone reports whether every exercise is checked off. An empty or missing
// plan is never all-done.
func (c *Controller) AllDone() bool {
	return c.allDone()
}

func (c *Controller) allDone() bool {
	if len(c.completed) == 0 {
		return false
	}
	for _, done := range c.completed {
		if !done {
			return false
		}
	}
	return true
}

// ActiveTab returns the selected coach screen tab.
func (c *Controller) ActiveTab() Tab {
	return c.activeTab
}

// SetActiveTab selects a coach screen tab.
func (c *Controller) SetActiveTab(t Tab) {
	c.activeTab = t
}

// Playlist exposes the music player state.
func (c *Controller) Playlist() *Playlist {
	return &c.playlist
}
