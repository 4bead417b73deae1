package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordmath/internal/grading"
	"github.com/abhisek/wordmath/internal/router"
	"github.com/abhisek/wordmath/internal/screen"
	"github.com/abhisek/wordmath/internal/session"
	"github.com/abhisek/wordmath/internal/ui/layout"
	"github.com/abhisek/wordmath/internal/ui/theme"
)

// Source supplies the attempts to list.
type Source interface {
	History() []session.Attempt
	Tally() session.Tally
}

// HistoryScreen lists the answers graded in this run, newest first.
type HistoryScreen struct {
	attempts []session.Attempt
	tally    session.Tally
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen over a snapshot of src.
func New(src Source) *HistoryScreen {
	attempts := src.History()
	for i, j := 0, len(attempts)-1; i < j; i, j = i+1, j-1 {
		attempts[i], attempts[j] = attempts[j], attempts[i]
	}
	return &HistoryScreen{
		attempts: attempts,
		tally:    src.Tally(),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered, %.0f%% correct", s.tally.Total(), s.tally.Accuracy()*100)))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mark := theme.Correct.Render("✓")
		if !a.Result.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}

		line := fmt.Sprintf("%s%s  %s  %s", prefix, a.At.Format("15:04"), truncate(a.Problem, width-30), a.Answer)
		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+" "+mark))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderDetail(a, width))
		}
	}

	return b.String()
}

func renderDetail(a session.Attempt, width int) string {
	var lines []string
	lines = append(lines, a.Problem)
	if a.Result.CorrectAnswer != nil {
		lines = append(lines, "Correct answer: "+grading.FormatNumber(*a.Result.CorrectAnswer))
	}
	if a.Result.Feedback != "" {
		lines = append(lines, a.Result.Feedback)
	}

	detail := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.TextDim).
		Render(strings.Join(lines, "\n\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, detail) + "\n\n"
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
