package markov

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// ErrConstraintUnsatisfied is returned by Sample when every attempt was rejected.
var ErrConstraintUnsatisfied = errors.New("markov: no sample satisfied the constraint")

// Acceptor decides whether a generated sample is usable. Returning an error
// aborts sampling.
type Acceptor func(ctx context.Context, text string) (bool, error)

// WithinLength accepts non-empty text of at most maxChars characters (runes).
// A maxChars of 0 or less only rejects empty text.
func WithinLength(maxChars int) Acceptor {
	return func(_ context.Context, text string) (bool, error) {
		n := utf8.RuneCountInString(text)
		if n == 0 {
			return false, nil
		}
		return maxChars <= 0 || n <= maxChars, nil
	}
}

// Sample generates text until accept approves it, discarding rejected samples.
// After maxAttempts rejections it returns an error wrapping
// ErrConstraintUnsatisfied. A maxAttempts of 0 or less never gives up, so it
// only returns once a sample is accepted or ctx is done.
func (g *Generator) Sample(ctx context.Context, chains *Chains, maxAttempts int, accept Acceptor, opts ...GenerateOption) (string, error) {
	for attempt := 1; maxAttempts <= 0 || attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := g.Generate(ctx, chains, opts...)
		if err != nil {
			return "", err
		}
		ok, err := accept(ctx, text)
		if err != nil {
			return "", fmt.Errorf("sample rejected with error on attempt %d: %w", attempt, err)
		}
		if ok {
			g.logger.DebugContext(ctx, "Sample accepted",
				slog.Int("attempt", attempt),
				slog.Int("length", utf8.RuneCountInString(text)),
			)
			return text, nil
		}
		g.logger.DebugContext(ctx, "Sample rejected",
			slog.Int("attempt", attempt),
			slog.Int("length", utf8.RuneCountInString(text)),
		)
	}
	return "", fmt.Errorf("%w after %d attempts", ErrConstraintUnsatisfied, maxAttempts)
}

// SampleWithin generates text of at most maxChars characters, retrying up to
// maxAttempts times. See Sample and WithinLength.
func (g *Generator) SampleWithin(ctx context.Context, chains *Chains, maxChars, maxAttempts int, opts ...GenerateOption) (string, error) {
	return g.Sample(ctx, chains, maxAttempts, WithinLength(maxChars), opts...)
}
