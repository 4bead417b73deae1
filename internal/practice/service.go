// Package practice implements the two server operations: generating a
// word problem and grading an answer to it.
package practice

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/wordmath/internal/grading"
	"github.com/abhisek/wordmath/internal/logging"
	"github.com/abhisek/wordmath/internal/problemgen"
	"github.com/abhisek/wordmath/internal/store"
)

// GeneratedProblem is what the learner sees after generation. It never
// carries the answer.
type GeneratedProblem struct {
	SessionID   string `json:"sessionId"`
	ProblemText string `json:"problemStatement"`
}

// GradeResult is the outcome of grading one answer. CorrectAnswer is set
// only when IsCorrect is false.
type GradeResult struct {
	IsCorrect     bool     `json:"isCorrect"`
	Feedback      string   `json:"feedback"`
	CorrectAnswer *float64 `json:"correctAnswer,omitempty"`
}

// Service coordinates the generator, the feedback writer and the store.
type Service struct {
	generator   problemgen.Generator
	feedback    grading.FeedbackWriter
	problems    store.ProblemRepo
	classifiers []grading.Classifier
}

// NewService creates a practice service.
func NewService(gen problemgen.Generator, fw grading.FeedbackWriter, problems store.ProblemRepo) *Service {
	return &Service{
		generator:   gen,
		feedback:    fw,
		problems:    problems,
		classifiers: grading.DefaultClassifiers(),
	}
}

// Generate asks the oracle for one problem, stores it as a new session and
// returns the session id with the statement.
func (s *Service) Generate(ctx context.Context) (*GeneratedProblem, error) {
	p, err := s.generator.Generate(ctx)
	if err != nil {
		return nil, oracleError("generate", err)
	}

	sess, err := s.problems.CreateSession(ctx, p.Text, p.Answer)
	if err != nil {
		return nil, &Error{Kind: ErrPersistence, Op: "generate", Err: err}
	}

	logging.FromContext(ctx).Info("problem generated", "session_id", sess.ID)
	return &GeneratedProblem{SessionID: sess.ID, ProblemText: sess.ProblemText}, nil
}

// Grade checks rawAnswer against the stored answer for sessionID, asks the
// oracle for feedback and records the submission. A failed submission
// write is logged and does not fail the call.
func (s *Service) Grade(ctx context.Context, sessionID, rawAnswer string) (*GradeResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, &Error{Kind: ErrInvalidInput, Op: "grade", Err: errors.New("session id is empty")}
	}

	sess, err := s.problems.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{Kind: ErrSessionNotFound, Op: "grade", Err: err}
		}
		return nil, &Error{Kind: ErrPersistence, Op: "grade", Err: err}
	}

	log := logging.FromContext(ctx).With("session_id", sess.ID)

	isCorrect := grading.IsCorrect(rawAnswer, sess.CorrectAnswer)
	req := grading.FeedbackRequest{
		ProblemText:   sess.ProblemText,
		UserAnswer:    rawAnswer,
		CorrectAnswer: sess.CorrectAnswer,
		IsCorrect:     isCorrect,
	}
	if !isCorrect {
		req.Mistake = grading.Diagnose(s.classifiers, rawAnswer, sess.CorrectAnswer)
	}

	feedback, err := s.feedback.WriteFeedback(ctx, req)
	if err != nil {
		return nil, oracleError("grade", err)
	}

	sub := &store.Submission{
		SessionID:    sess.ID,
		UserAnswer:   rawAnswer,
		IsCorrect:    isCorrect,
		FeedbackText: feedback,
	}
	if err := s.problems.AppendSubmission(ctx, sub); err != nil {
		log.Warn("failed to record submission", "error", err)
	}

	log.Info("answer graded", "correct", isCorrect, "mistake", string(req.Mistake))

	result := &GradeResult{IsCorrect: isCorrect, Feedback: feedback}
	if !isCorrect {
		answer := sess.CorrectAnswer
		result.CorrectAnswer = &answer
	}
	return result, nil
}
