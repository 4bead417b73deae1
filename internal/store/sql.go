package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// SQLStore implements ProblemRepo and EventRepo over database/sql. SQLite
// and Postgres share it and differ only in placeholder format and DDL.
type SQLStore struct {
	db      *sql.DB
	builder squirrel.StatementBuilderType
	closeFn func() error
	now     func() time.Time
}

func newSQLStore(db *sql.DB, ph squirrel.PlaceholderFormat, closeFn func() error) *SQLStore {
	if closeFn == nil {
		closeFn = db.Close
	}
	return &SQLStore{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(ph),
		closeFn: closeFn,
		now:     time.Now,
	}
}

func (s *SQLStore) ProblemRepo() ProblemRepo { return s }
func (s *SQLStore) EventRepo() EventRepo     { return s }

func (s *SQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLStore) Close() error { return s.closeFn() }

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*ProblemSession, error) {
	sess := &ProblemSession{
		ID:            uuid.NewString(),
		ProblemText:   problemText,
		CorrectAnswer: correctAnswer,
		CreatedAt:     s.now().UTC().Truncate(time.Millisecond),
	}

	query, args, err := s.builder.Insert("problem_sessions").
		Columns("id", "problem_text", "correct_answer", "created_at").
		Values(sess.ID, sess.ProblemText, sess.CorrectAnswer, sess.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert problem session: %w", err)
	}
	return sess, nil
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (*ProblemSession, error) {
	query, args, err := s.builder.
		Select("id", "problem_text", "correct_answer", "created_at").
		From("problem_sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var (
		sess      ProblemSession
		createdAt int64
	)
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&sess.ID, &sess.ProblemText, &sess.CorrectAnswer, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("problem session %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get problem session: %w", err)
	}
	sess.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &sess, nil
}

func (s *SQLStore) AppendSubmission(ctx context.Context, sub *Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	}

	query, args, err := s.builder.Insert("problem_submissions").
		Columns("id", "session_id", "user_answer", "is_correct", "feedback_text", "created_at").
		Values(sub.ID, sub.SessionID, sub.UserAnswer, sub.IsCorrect, sub.FeedbackText, sub.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *SQLStore) Stats(ctx context.Context) (*PracticeStats, error) {
	var st PracticeStats

	query, args, err := s.builder.Select("COUNT(*)").From("problem_sessions").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&st.Sessions); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	query, args, err = s.builder.
		Select("COUNT(*)", "COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0)").
		From("problem_submissions").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&st.Submissions, &st.Correct); err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	return &st, nil
}

func (s *SQLStore) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args, err := s.builder.Insert("llm_request_events").
		Columns("created_at", "provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body").
		Values(s.now().UnixMilli(), data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

var llmEventColumns = []string{
	"id", "created_at", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func scanLLMEvent(row interface{ Scan(...any) error }) (*LLMEvent, error) {
	var (
		e         LLMEvent
		createdAt int64
	)
	err := row.Scan(&e.ID, &createdAt, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		return nil, err
	}
	e.Timestamp = time.UnixMilli(createdAt)
	return &e, nil
}

func (s *SQLStore) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	q := s.builder.Select(llmEventColumns...).From("llm_request_events").OrderBy("id DESC")
	if opts.Purpose != "" {
		q = q.Where(squirrel.Eq{"purpose": opts.Purpose})
	}
	if !opts.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": opts.From.UnixMilli()})
	}
	if !opts.To.IsZero() {
		q = q.Where(squirrel.LtOrEq{"created_at": opts.To.UnixMilli()})
	}
	if opts.Limit > 0 {
		q = q.Limit(uint64(opts.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *SQLStore) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	query, args, err := s.builder.Select(llmEventColumns...).
		From("llm_request_events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	e, err := scanLLMEvent(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	return e, nil
}

func (s *SQLStore) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	query, args, err := s.builder.Select(
		"purpose",
		"COUNT(*)",
		"CAST(COALESCE(SUM(input_tokens), 0) AS BIGINT)",
		"CAST(COALESCE(SUM(output_tokens), 0) AS BIGINT)",
		"CAST(COALESCE(AVG(latency_ms), 0) AS BIGINT)",
	).From("llm_request_events").GroupBy("purpose").OrderBy("purpose").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLStore) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args, err := s.builder.Select(
		"model",
		"COUNT(*)",
		"CAST(COALESCE(SUM(input_tokens), 0) AS BIGINT)",
		"CAST(COALESCE(SUM(output_tokens), 0) AS BIGINT)",
	).From("llm_request_events").GroupBy("model").OrderBy("model").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
