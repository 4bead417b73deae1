package llm

import "context"

type purposeKey struct{}

// PurposeUnknown labels calls made without WithPurpose.
const PurposeUnknown = "unknown"

// WithPurpose tags ctx with the reason for an Oracle call, such as
// "problem-gen" or "feedback". The logging decorator records it on each
// event so `wordmath llm stats` can split usage by purpose.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
