package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordmath/internal/router"
	"github.com/abhisek/wordmath/internal/screen"
	"github.com/abhisek/wordmath/internal/screens/problem"
	"github.com/abhisek/wordmath/internal/screens/welcome"
	"github.com/abhisek/wordmath/internal/session"
	"github.com/abhisek/wordmath/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	// RequestTimeout bounds each backend call. Zero uses the screen default.
	RequestTimeout time.Duration
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	view   *session.View
	width  int
	height int
}

// newAppModel creates a new AppModel that opens on the welcome splash and
// then moves to the practice screen.
func newAppModel(backend session.Backend, opts Options) AppModel {
	view := session.NewView()
	practice := func() screen.Screen {
		ps := problem.New(backend, view)
		ps.SetTimeout(opts.RequestTimeout)
		return ps
	}
	return AppModel{
		router: router.New(welcome.New(practice)),
		view:   view,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	if _, ok := active.(*welcome.WelcomeScreen); ok {
		return active.View(m.width, m.height)
	}

	tally := m.view.Tally()
	header := layout.RenderHeader(title, tally.Correct, tally.Incorrect, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program against backend.
func Run(backend session.Backend, opts Options) error {
	p := tea.NewProgram(newAppModel(backend, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
