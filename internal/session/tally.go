package session

// Tally counts graded attempts for the lifetime of a view.
type Tally struct {
	Correct   int
	Incorrect int
}

// Record adds one graded attempt.
func (t *Tally) Record(correct bool) {
	if correct {
		t.Correct++
	} else {
		t.Incorrect++
	}
}

// Total returns the number of graded attempts.
func (t Tally) Total() int { return t.Correct + t.Incorrect }

// Accuracy returns Correct / Total, or 0 before the first attempt.
func (t Tally) Accuracy() float64 {
	if t.Total() == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total())
}
