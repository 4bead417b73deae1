package store

import (
	"context"
	"time"
)

// ProblemSession is a generated problem together with its correct answer.
// Sessions are immutable once created.
type ProblemSession struct {
	ID            string    `json:"id"`
	ProblemText   string    `json:"problem_text"`
	CorrectAnswer float64   `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

// Submission is one graded answer attempt against a session.
type Submission struct {
	ID           string
	SessionID    string
	UserAnswer   string
	IsCorrect    bool
	FeedbackText string
	CreatedAt    time.Time
}

// PracticeStats aggregates sessions and submissions across the store.
type PracticeStats struct {
	Sessions    int
	Submissions int
	Correct     int
}

// Accuracy returns the fraction of correct submissions, or 0 when there
// are none.
func (s PracticeStats) Accuracy() float64 {
	if s.Submissions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Submissions)
}

// ProblemRepo persists problem sessions and their submissions.
type ProblemRepo interface {
	// CreateSession stores a new problem and assigns its ID.
	CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*ProblemSession, error)

	// GetSession returns the session with the given ID, or ErrNotFound.
	GetSession(ctx context.Context, id string) (*ProblemSession, error)

	// AppendSubmission records a graded attempt. The ID and CreatedAt
	// fields are assigned when empty. The session must exist.
	AppendSubmission(ctx context.Context, sub *Submission) error

	// Stats returns aggregate counts.
	Stats(ctx context.Context) (*PracticeStats, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match when set
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM token usage by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
