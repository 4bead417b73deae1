package problemgen

import (
	"math"
	"strings"
	"unicode/utf8"
)

// MaxProblemLength is the longest problem statement accepted, in runes.
const MaxProblemLength = 1000

// StructuralValidator checks that the statement is present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	if strings.TrimSpace(p.Text) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem_text is empty",
		}
	}
	if utf8.RuneCountInString(p.Text) > MaxProblemLength {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem_text exceeds 1000 characters",
		}
	}
	return nil
}

// AnswerValidator rejects answers that cannot be compared numerically.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(p *Problem) *ValidationError {
	if math.IsNaN(p.Answer) || math.IsInf(p.Answer, 0) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "final_answer is not a finite number",
		}
	}
	return nil
}
