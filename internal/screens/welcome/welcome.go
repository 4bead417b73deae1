// Package welcome is the splash screen shown before the first problem.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordmath/internal/router"
	"github.com/abhisek/wordmath/internal/screen"
	"github.com/abhisek/wordmath/internal/ui/theme"
)

const (
	tickInterval = 80 * time.Millisecond
	totalDur     = 3 * time.Second
)

const tagline = "Primary 5 math word problems"

type tickMsg time.Time

// WelcomeScreen reveals the banner a row at a time, then hands over to the
// screen built by next. Any key skips ahead; otherwise the hand-over
// happens after totalDur.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	rows         int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.rows++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// revealed reports whether the whole banner is visible.
func (w *WelcomeScreen) revealed(banner string) bool {
	return w.rows >= strings.Count(banner, "\n")+1
}

func (w *WelcomeScreen) View(width, height int) string {
	banner := RenderBanner(width)
	lines := strings.Split(banner, "\n")
	shown := min(w.rows, len(lines))

	sections := []string{strings.Join(lines[:shown], "\n")}

	if w.revealed(banner) {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to start"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
