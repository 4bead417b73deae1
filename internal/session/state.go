// Package session holds the client-side practice view: which problem is on
// screen, what the learner typed, the last result, and a running tally.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/abhisek/wordmath/internal/practice"
)

// Phase is the view's position in the practice loop.
type Phase int

const (
	PhaseIdle           Phase = iota // No problem yet
	PhaseGenerating                  // Waiting for a new problem
	PhaseAwaitingAnswer              // Problem shown, answer being typed
	PhaseGrading                     // Waiting for the grade
	PhaseShowingResult               // Result shown; a new problem is needed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseGrading:
		return "grading"
	case PhaseShowingResult:
		return "showing-result"
	}
	return "unknown"
}

// Loading captions shown while a request is in flight.
const (
	CaptionGenerating = "Generating problem..."
	CaptionGrading    = "Submitting answer..."
)

// Guard errors returned when an action is not allowed in the current phase.
var (
	ErrBusy          = errors.New("a request is already in progress")
	ErrEmptyAnswer   = errors.New("answer is empty")
	ErrNoProblem     = errors.New("no problem to answer")
	ErrAlreadyGraded = errors.New("this problem has already been graded")
)

// Attempt is one graded answer, kept for the history screen.
type Attempt struct {
	Problem string
	Answer  string
	Result  practice.GradeResult
	At      time.Time
}

// View is the practice state machine. It performs no I/O: callers start a
// request after a successful Begin* call and report its outcome with the
// matching completion method. View is not safe for concurrent use.
type View struct {
	phase   Phase
	problem *practice.GeneratedProblem
	answer  string
	result  *practice.GradeResult
	err     error
	tally   Tally
	history []Attempt
	now     func() time.Time
}

// NewView returns an idle view with an empty tally.
func NewView() *View {
	return &View{now: time.Now}
}

func (v *View) Phase() Phase                        { return v.phase }
func (v *View) Problem() *practice.GeneratedProblem { return v.problem }
func (v *View) Answer() string                      { return v.answer }
func (v *View) Result() *practice.GradeResult       { return v.result }
func (v *View) Err() error                          { return v.err }
func (v *View) Tally() Tally                        { return v.tally }

// History returns graded attempts, oldest first.
func (v *View) History() []Attempt {
	out := make([]Attempt, len(v.history))
	copy(out, v.history)
	return out
}

// Loading reports whether a request is in flight.
func (v *View) Loading() bool {
	return v.phase == PhaseGenerating || v.phase == PhaseGrading
}

// LoadingCaption returns the caption for the in-flight request, or "".
func (v *View) LoadingCaption() string {
	switch v.phase {
	case PhaseGenerating:
		return CaptionGenerating
	case PhaseGrading:
		return CaptionGrading
	}
	return ""
}

// CanSubmit reports whether BeginGrade would accept answer.
func (v *View) CanSubmit(answer string) bool {
	return v.phase == PhaseAwaitingAnswer && strings.TrimSpace(answer) != ""
}

// BeginGenerate starts a new problem. Any previous problem, answer, result
// and error are cleared first.
func (v *View) BeginGenerate() error {
	if v.Loading() {
		return ErrBusy
	}
	v.problem = nil
	v.answer = ""
	v.result = nil
	v.err = nil
	v.phase = PhaseGenerating
	return nil
}

// ProblemReady shows p. It reports false and changes nothing when no
// generation is in flight.
func (v *View) ProblemReady(p *practice.GeneratedProblem) bool {
	if v.phase != PhaseGenerating || p == nil {
		return false
	}
	v.problem = p
	v.phase = PhaseAwaitingAnswer
	return true
}

// GenerateFailed returns to idle with err displayed.
func (v *View) GenerateFailed(err error) bool {
	if v.phase != PhaseGenerating {
		return false
	}
	v.err = err
	v.phase = PhaseIdle
	return true
}

// BeginGrade submits answer for the current problem and returns it
// trimmed. At most one submission per problem is accepted.
func (v *View) BeginGrade(answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	switch {
	case v.Loading():
		return "", ErrBusy
	case v.phase == PhaseShowingResult:
		return "", ErrAlreadyGraded
	case v.problem == nil || v.phase != PhaseAwaitingAnswer:
		return "", ErrNoProblem
	case answer == "":
		return "", ErrEmptyAnswer
	}
	v.answer = answer
	v.err = nil
	v.phase = PhaseGrading
	return answer, nil
}

// Graded shows r and records exactly one tally entry.
func (v *View) Graded(r *practice.GradeResult) bool {
	if v.phase != PhaseGrading || r == nil {
		return false
	}
	v.result = r
	v.tally.Record(r.IsCorrect)
	v.history = append(v.history, Attempt{
		Problem: v.problem.ProblemText,
		Answer:  v.answer,
		Result:  *r,
		At:      v.now(),
	})
	v.phase = PhaseShowingResult
	return true
}

// GradeFailed returns to the answer prompt with err displayed. The tally
// is unchanged and the answer may be resubmitted.
func (v *View) GradeFailed(err error) bool {
	if v.phase != PhaseGrading {
		return false
	}
	v.err = err
	v.phase = PhaseAwaitingAnswer
	return true
}

// DismissError hides the error overlay.
func (v *View) DismissError() {
	v.err = nil
}
