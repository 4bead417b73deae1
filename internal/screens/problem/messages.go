package problem

import "github.com/abhisek/wordmath/internal/practice"

// problemReadyMsg is sent when a generate request completes.
type problemReadyMsg struct {
	Problem *practice.GeneratedProblem
	Err     error
}

// gradedMsg is sent when a submit request completes.
type gradedMsg struct {
	Result *practice.GradeResult
	Err    error
}
