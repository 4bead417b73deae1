package problemgen

import "context"

// Generator produces word problems.
type Generator interface {
	// Generate produces a single validated problem. All configured
	// validators run before it returns.
	Generate(ctx context.Context) (*Problem, error)
}
