package session

import (
	"context"

	"github.com/abhisek/wordmath/internal/logging"
	"github.com/abhisek/wordmath/internal/practice"
)

// Backend serves problems and grades to a View.
type Backend interface {
	NewProblem(ctx context.Context) (*practice.GeneratedProblem, error)
	Submit(ctx context.Context, sessionID, answer string) (*practice.GradeResult, error)
}

// Service is the server-side practice API.
type Service interface {
	Generate(ctx context.Context) (*practice.GeneratedProblem, error)
	Grade(ctx context.Context, sessionID, rawAnswer string) (*practice.GradeResult, error)
}

// Local is a Backend that calls a practice service in-process. Failures
// are logged with full detail; callers should show practice.UserMessage.
type Local struct {
	svc Service
}

// NewLocal wraps svc as a Backend.
func NewLocal(svc Service) *Local {
	return &Local{svc: svc}
}

func (l *Local) NewProblem(ctx context.Context) (*practice.GeneratedProblem, error) {
	p, err := l.svc.Generate(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("problem generation failed", "error", err)
		return nil, err
	}
	return p, nil
}

func (l *Local) Submit(ctx context.Context, sessionID, answer string) (*practice.GradeResult, error) {
	res, err := l.svc.Grade(ctx, sessionID, answer)
	if err != nil {
		logging.FromContext(ctx).Error("grading failed", "session_id", sessionID, "error", err)
		return nil, err
	}
	return res, nil
}
