package grading

import "math"

// Mistake names a likely cause of an incorrect answer.
type Mistake string

const (
	MistakeSign       Mistake = "sign"
	MistakePlaceValue Mistake = "place-value"
	MistakePercent    Mistake = "percent-conversion"
	MistakeReciprocal Mistake = "reciprocal"
	MistakeRounding   Mistake = "rounding"
	MistakeNotNumeric Mistake = "not-numeric"
	MistakeUnknown    Mistake = ""
)

// Hint returns the suggestion passed to the feedback prompt for m, or ""
// when there is nothing specific to suggest.
func (m Mistake) Hint() string {
	switch m {
	case MistakeSign:
		return "the answer has the wrong sign; check whether the quantity should increase or decrease"
	case MistakePlaceValue:
		return "the answer is off by a factor of 10; check the position of the decimal point"
	case MistakePercent:
		return "the answer is off by a factor of 100; check the conversion between percentages and decimals"
	case MistakeReciprocal:
		return "the answer is the reciprocal of the correct one; check which quantity is divided by which"
	case MistakeRounding:
		return "the answer is very close; check rounding in the intermediate steps"
	case MistakeNotNumeric:
		return "the answer was not a number; remind the learner to enter just the numeric value"
	}
	return ""
}

// Classifier is a rule that recognises one kind of mistake. It reports
// false when the rule does not apply.
type Classifier interface {
	Name() string
	Classify(user, correct float64) (Mistake, bool)
}

// DefaultClassifiers returns classifiers in priority order.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		signClassifier{},
		scaleClassifier{},
		reciprocalClassifier{},
		roundingClassifier{},
	}
}

// Diagnose runs the classifiers over an incorrect answer and returns the
// first match. raw is the learner's input as typed.
func Diagnose(classifiers []Classifier, raw string, correct float64) Mistake {
	user, ok := ParseAnswer(raw)
	if !ok {
		return MistakeNotNumeric
	}
	for _, c := range classifiers {
		if m, ok := c.Classify(user, correct); ok {
			return m
		}
	}
	return MistakeUnknown
}

func near(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

type signClassifier struct{}

func (signClassifier) Name() string { return "sign" }

func (signClassifier) Classify(user, correct float64) (Mistake, bool) {
	if correct != 0 && near(user, -correct) {
		return MistakeSign, true
	}
	return "", false
}

// scaleClassifier spots answers that are the correct value shifted by one
// or two decimal places.
type scaleClassifier struct{}

func (scaleClassifier) Name() string { return "scale" }

func (scaleClassifier) Classify(user, correct float64) (Mistake, bool) {
	if user == 0 || correct == 0 {
		return "", false
	}
	switch {
	case near(user, correct*100), near(user, correct/100):
		return MistakePercent, true
	case near(user, correct*10), near(user, correct/10):
		return MistakePlaceValue, true
	}
	return "", false
}

type reciprocalClassifier struct{}

func (reciprocalClassifier) Name() string { return "reciprocal" }

func (reciprocalClassifier) Classify(user, correct float64) (Mistake, bool) {
	if user == 0 || correct == 0 || near(math.Abs(correct), 1) {
		return "", false
	}
	if near(user, 1/correct) {
		return MistakeReciprocal, true
	}
	return "", false
}

// RoundingMargin is the relative error under which an incorrect answer is
// treated as a rounding slip.
const RoundingMargin = 0.02

type roundingClassifier struct{}

func (roundingClassifier) Name() string { return "rounding" }

func (roundingClassifier) Classify(user, correct float64) (Mistake, bool) {
	if correct == 0 {
		return "", false
	}
	if math.Abs(user-correct)/math.Abs(correct) <= RoundingMargin {
		return MistakeRounding, true
	}
	return "", false
}
