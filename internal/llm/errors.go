package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the Oracle. RetryAfter is zero when the
// provider sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("oracle rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("oracle rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is output that arrived but cannot be used: a word
// problem that is not JSON or breaks its schema. Content holds the raw
// output for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid oracle output: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures, auth failures and 5xx
// responses.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "oracle unavailable"
	}
	return fmt.Sprintf("oracle unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is structured output cut off by MaxTokens. The
// partial Content is never valid JSON worth retrying.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("oracle output truncated at max tokens (%d bytes)", len(e.Content))
}

// IsOutputError reports whether err means the Oracle answered but its
// output was unusable, as opposed to the Oracle not answering at all.
func IsOutputError(err error) bool {
	var (
		invalid   *ErrInvalidResponse
		truncated *ErrMaxTokensExceeded
	)
	return errors.As(err, &invalid) || errors.As(err, &truncated)
}
