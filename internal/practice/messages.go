package practice

import "errors"

// Messages shown to learners and API clients. Causes are logged, never
// shown.
const (
	MsgGenerateFailed    = "Failed to generate math problem"
	MsgInvalidAIResponse = "Invalid response from AI model"
	MsgSaveFailed        = "Could not save problem session"
	MsgMissingFields     = "Missing session ID or user answer"
	MsgSessionNotFound   = "Problem session not found"
	MsgSubmitFailed      = "Failed to submit answer and generate feedback"
	MsgUnexpected        = "Something went wrong. Please try again."
)

// UserMessage maps a practice error to the fixed message for its kind and
// operation. Errors that are not practice errors get MsgUnexpected.
func UserMessage(err error) string {
	var perr *Error
	if !errors.As(err, &perr) {
		return MsgUnexpected
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return MsgMissingFields
	case errors.Is(err, ErrSessionNotFound):
		return MsgSessionNotFound
	}

	switch perr.Op {
	case "generate":
		switch {
		case errors.Is(err, ErrGenerationInvalid):
			return MsgInvalidAIResponse
		case errors.Is(err, ErrPersistence):
			return MsgSaveFailed
		}
		return MsgGenerateFailed
	case "grade":
		return MsgSubmitFailed
	}
	return MsgUnexpected
}
