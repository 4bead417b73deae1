// Package worksheet builds printable sets of word problems with an answer
// key.
package worksheet

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/wordmath/internal/logging"
	"github.com/abhisek/wordmath/internal/problemgen"
)

// MaxProblems caps the size of a single worksheet.
const MaxProblems = 30

// Worksheet is an ordered set of generated problems.
type Worksheet struct {
	// Name is the learner the sheet is made for. May be empty.
	Name     string
	Topics   []problemgen.Topic
	Problems []problemgen.Problem
}

// Title returns the heading printed on the first page.
func (ws *Worksheet) Title() string {
	title := cases.Title(language.English)
	topics := make([]string, len(ws.Topics))
	for i, t := range ws.Topics {
		topics[i] = title.String(string(t))
	}
	subject := "Word Problem Practice"
	if len(topics) > 0 {
		subject = strings.Join(topics, ", ") + " Practice"
	}
	if ws.Name == "" {
		return subject
	}
	return fmt.Sprintf("%s's %s", title.String(ws.Name), subject)
}

// Build generates n problems with at most concurrency Oracle calls in
// flight. Problems keep their generation slot order. Any failure cancels
// the remaining calls and is returned.
func Build(ctx context.Context, gen problemgen.Generator, n, concurrency int) ([]problemgen.Problem, error) {
	if n < 1 || n > MaxProblems {
		return nil, fmt.Errorf("worksheet size must be between 1 and %d, got %d", MaxProblems, n)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	problems := make([]problemgen.Problem, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range n {
		g.Go(func() error {
			p, err := gen.Generate(ctx)
			if err != nil {
				return fmt.Errorf("problem %d: %w", i+1, err)
			}
			problems[i] = *p
			logging.FromContext(ctx).Debug("worksheet problem ready", "index", i+1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return problems, nil
}
