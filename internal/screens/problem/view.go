package problem

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordmath/internal/grading"
	"github.com/abhisek/wordmath/internal/session"
	"github.com/abhisek/wordmath/internal/ui/theme"
)

func (s *ProblemScreen) render(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if p := s.view.Problem(); p != nil {
		b.WriteString(s.renderProblem(width, p.ProblemText))
		b.WriteString("\n\n")
	}

	switch s.view.Phase() {
	case session.PhaseIdle:
		b.WriteString(centered(width, theme.Hint).
			Render("Press N to get a new word problem."))
	case session.PhaseGenerating, session.PhaseGrading:
		b.WriteString(centered(width, theme.Caption).
			Render(s.spinner.View() + " " + s.view.LoadingCaption()))
	case session.PhaseAwaitingAnswer:
		b.WriteString(centered(width, lipgloss.NewStyle()).
			Render("Answer: " + s.input.View()))
	case session.PhaseShowingResult:
		b.WriteString(s.renderResult(width))
	}

	if err := s.view.Err(); err != nil {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.ErrorText).
			Render("Error: " + errorText(err)))
	}

	return b.String()
}

func (s *ProblemScreen) renderProblem(width int, text string) string {
	card := theme.Card.
		Width(min(width-4, 72)).
		Render(theme.Problem.Render(text))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// renderResult shows the verdict, the correct answer when the learner
// missed it, and the feedback text.
func (s *ProblemScreen) renderResult(width int) string {
	r := s.view.Result()
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim)).
		Render("Your answer: " + s.view.Answer()))
	b.WriteString("\n\n")

	if r.IsCorrect {
		b.WriteString(centered(width, theme.Correct).Render("Correct!"))
	} else {
		b.WriteString(centered(width, theme.Incorrect).Render("Not quite"))
		if r.CorrectAnswer != nil {
			b.WriteString("\n")
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim)).
				Render(fmt.Sprintf("Correct answer: %s", grading.FormatNumber(*r.CorrectAnswer))))
		}
	}

	if r.Feedback != "" {
		b.WriteString("\n\n")
		fb := theme.Body.Width(min(width-8, 70)).Render(r.Feedback)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
	}

	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint).Render("Press N for another problem."))
	return b.String()
}

func centered(width int, style lipgloss.Style) lipgloss.Style {
	return style.Width(width).Align(lipgloss.Center)
}
