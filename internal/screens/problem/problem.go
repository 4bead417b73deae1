// Package problem is the practice screen: it shows one word problem at a
// time, takes an answer and displays the grade with feedback.
package problem

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordmath/internal/client"
	"github.com/abhisek/wordmath/internal/practice"
	"github.com/abhisek/wordmath/internal/router"
	"github.com/abhisek/wordmath/internal/screen"
	"github.com/abhisek/wordmath/internal/screens/history"
	"github.com/abhisek/wordmath/internal/session"
	"github.com/abhisek/wordmath/internal/ui/components"
	"github.com/abhisek/wordmath/internal/ui/layout"
)

// DefaultTimeout bounds each backend request started from the screen.
const DefaultTimeout = 90 * time.Second

const answerPlaceholder = "Type your answer..."

// ProblemScreen implements screen.Screen for the practice loop.
type ProblemScreen struct {
	backend session.Backend
	view    *session.View
	input   components.TextInput
	spinner spinner.Model
	timeout time.Duration
}

var _ screen.Screen = (*ProblemScreen)(nil)
var _ screen.KeyHintProvider = (*ProblemScreen)(nil)
var _ screen.Focuser = (*ProblemScreen)(nil)

// New creates a ProblemScreen that drives view through backend.
func New(backend session.Backend, view *session.View) *ProblemScreen {
	return &ProblemScreen{
		backend: backend,
		view:    view,
		input:   components.NewTextInput(answerPlaceholder, true, 32),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		timeout: DefaultTimeout,
	}
}

// SetTimeout overrides DefaultTimeout.
func (s *ProblemScreen) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

func (s *ProblemScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ProblemScreen) Focus() tea.Cmd {
	return s.input.Init()
}

func (s *ProblemScreen) Title() string {
	return "Practice"
}

func (s *ProblemScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch s.view.Phase() {
	case session.PhaseAwaitingAnswer:
		hints = []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Ctrl+N", Description: "New problem"},
		}
	case session.PhaseIdle, session.PhaseShowingResult:
		hints = []layout.KeyHint{
			{Key: "N", Description: "New problem"},
			{Key: "H", Description: "History"},
			{Key: "Q", Description: "Quit"},
		}
	}
	if s.view.Err() != nil {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Dismiss"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *ProblemScreen) View(width, height int) string {
	return s.render(width, height)
}

func (s *ProblemScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemReadyMsg:
		return s.handleProblemReady(msg)

	case gradedMsg:
		return s.handleGraded(msg)

	case spinner.TickMsg:
		if !s.view.Loading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.view.Phase() == session.PhaseAwaitingAnswer {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProblemScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		s.view.DismissError()
		return s, nil
	}
	if key == "ctrl+n" {
		return s.newProblem()
	}

	switch s.view.Phase() {
	case session.PhaseAwaitingAnswer:
		if key == "enter" {
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case session.PhaseIdle, session.PhaseShowingResult:
		switch key {
		case "n", "N", "enter":
			return s.newProblem()
		case "h", "H":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(s.view)}
			}
		case "q", "Q":
			return s, tea.Quit
		}
	}

	// Keys are ignored while a request is in flight.
	return s, nil
}

// newProblem starts a generate request.
func (s *ProblemScreen) newProblem() (screen.Screen, tea.Cmd) {
	if err := s.view.BeginGenerate(); err != nil {
		return s, nil
	}
	s.input.Reset()
	return s, tea.Batch(s.fetchProblem(), s.spinner.Tick)
}

// submit starts a grade request for the typed answer.
func (s *ProblemScreen) submit() (screen.Screen, tea.Cmd) {
	answer, err := s.view.BeginGrade(s.input.Value())
	if err != nil {
		return s, nil
	}
	return s, tea.Batch(s.gradeAnswer(s.view.Problem().SessionID, answer), s.spinner.Tick)
}

func (s *ProblemScreen) fetchProblem() tea.Cmd {
	backend, timeout := s.backend, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p, err := backend.NewProblem(ctx)
		return problemReadyMsg{Problem: p, Err: err}
	}
}

func (s *ProblemScreen) gradeAnswer(sessionID, answer string) tea.Cmd {
	backend, timeout := s.backend, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		r, err := backend.Submit(ctx, sessionID, answer)
		return gradedMsg{Result: r, Err: err}
	}
}

func (s *ProblemScreen) handleProblemReady(msg problemReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.view.GenerateFailed(msg.Err)
		return s, nil
	}
	if !s.view.ProblemReady(msg.Problem) {
		return s, nil
	}
	return s, s.input.Init()
}

func (s *ProblemScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.view.GradeFailed(msg.Err)
		return s, s.input.Init()
	}
	if s.view.Graded(msg.Result) {
		s.input.Submit(msg.Result.IsCorrect)
	}
	return s, nil
}

// errorText returns the message shown for a failed request. Server errors
// carry a display message. Causes are never shown.
func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out. Please try again."
	}
	return practice.UserMessage(err)
}
