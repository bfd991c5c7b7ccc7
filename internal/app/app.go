// Package app wires the services together and runs the Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/arjun/coachfit/internal/chat"
	"github.com/arjun/coachfit/internal/llm"
	"github.com/arjun/coachfit/internal/plangen"
	"github.com/arjun/coachfit/internal/quote"
	"github.com/arjun/coachfit/internal/router"
	"github.com/arjun/coachfit/internal/screen"
	"github.com/arjun/coachfit/internal/screens/coach"
	"github.com/arjun/coachfit/internal/screens/onboarding"
	"github.com/arjun/coachfit/internal/session"
	"github.com/arjun/coachfit/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Provider   llm.Provider
	RequestLog *llm.RequestLog
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	coach      *coach.CoachScreen
	requestLog *llm.RequestLog
	width      int
	height     int
}

// newAppModel builds the screen graph. The coach screen is constructed
// lazily, once onboarding has stored a valid profile.
func newAppModel(opts Options) *AppModel {
	m := &AppModel{requestLog: opts.RequestLog}

	controller := session.NewController()
	generator := plangen.New(opts.Provider, plangen.DefaultConfig())
	quotes := quote.NewService(opts.Provider)

	coachFactory := func() screen.Screen {
		orchestrator := chat.New(opts.Provider, controller.Profile(), chat.DefaultConfig())
		m.coach = coach.New(controller, generator, orchestrator, quotes)
		return m.coach
	}

	m.router = router.New(onboarding.New(controller, coachFactory))
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	headerQuote := ""
	if m.coach != nil {
		headerQuote = m.coach.Quote()
	}
	header := layout.RenderHeader(title, headerQuote, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), footerHints...)
	}
	if m.requestLog != nil {
		if usage := m.requestLog.TotalUsage(); usage.TotalTokens > 0 {
			footerHints = append(footerHints, layout.KeyHint{
				Key:         "⚡",
				Description: fmt.Sprintf("%d tok", usage.TotalTokens),
			})
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
