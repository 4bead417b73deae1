package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store. Contents are lost when the process exits.
type Memory struct {
	mu          sync.RWMutex
	sessions    map[string]ProblemSession
	submissions []Submission
	events      []LLMEvent
	now         func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]ProblemSession),
		now:      time.Now,
	}
}

func (m *Memory) ProblemRepo() ProblemRepo       { return m }
func (m *Memory) EventRepo() EventRepo           { return m }
func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }
func (m *Memory) Close() error                   { return nil }

func (m *Memory) CreateSession(_ context.Context, problemText string, correctAnswer float64) (*ProblemSession, error) {
	sess := ProblemSession{
		ID:            uuid.NewString(),
		ProblemText:   problemText,
		CorrectAnswer: correctAnswer,
		CreatedAt:     m.now().UTC(),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	return &sess, nil
}

func (m *Memory) GetSession(_ context.Context, id string) (*ProblemSession, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("problem session %q: %w", id, ErrNotFound)
	}
	return &sess, nil
}

func (m *Memory) AppendSubmission(_ context.Context, sub *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sub.SessionID]; !ok {
		return fmt.Errorf("insert submission: session %q: %w", sub.SessionID, ErrNotFound)
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = m.now().UTC()
	}
	m.submissions = append(m.submissions, *sub)
	return nil
}

// Submissions returns a copy of the stored submissions for sessionID.
func (m *Memory) Submissions(sessionID string) []Submission {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Submission
	for _, s := range m.submissions {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out
}

func (m *Memory) Stats(_ context.Context) (*PracticeStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := &PracticeStats{Sessions: len(m.sessions), Submissions: len(m.submissions)}
	for _, s := range m.submissions {
		if s.IsCorrect {
			st.Correct++
		}
	}
	return st, nil
}

func (m *Memory) AppendLLMRequest(_ context.Context, data LLMRequestEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, LLMEvent{
		ID:                  len(m.events) + 1,
		Timestamp:           m.now(),
		LLMRequestEventData: data,
	})
	return nil
}

func (m *Memory) QueryLLMEvents(_ context.Context, opts QueryOpts) ([]LLMEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []LLMEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if opts.Purpose != "" && e.Purpose != opts.Purpose {
			continue
		}
		if !opts.From.IsZero() && e.Timestamp.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && e.Timestamp.After(opts.To) {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) GetLLMEvent(_ context.Context, id int) (*LLMEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 1 || id > len(m.events) {
		return nil, nil
	}
	e := m.events[id-1]
	return &e, nil
}

func (m *Memory) LLMUsageByPurpose(_ context.Context) ([]PurposeUsage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byPurpose := make(map[string]*PurposeUsage)
	latency := make(map[string]int64)
	for _, e := range m.events {
		u, ok := byPurpose[e.Purpose]
		if !ok {
			u = &PurposeUsage{Purpose: e.Purpose}
			byPurpose[e.Purpose] = u
		}
		u.Calls++
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
		latency[e.Purpose] += e.LatencyMs
	}

	out := make([]PurposeUsage, 0, len(byPurpose))
	for p, u := range byPurpose {
		u.AvgLatencyMs = latency[p] / int64(u.Calls)
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Purpose < out[j].Purpose })
	return out, nil
}

func (m *Memory) LLMUsageByModel(_ context.Context) ([]ModelUsage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byModel := make(map[string]*ModelUsage)
	for _, e := range m.events {
		u, ok := byModel[e.Model]
		if !ok {
			u = &ModelUsage{Model: e.Model}
			byModel[e.Model] = u
		}
		u.Calls++
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
	}

	out := make([]ModelUsage, 0, len(byModel))
	for _, u := range byModel {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out, nil
}
