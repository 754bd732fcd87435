package markov

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	stopAtSentence bool
	maxTokens      int
	rng            *rand.Rand
}

func defaultGenerateOptions() *generateOptions {
	return &generateOptions{
		stopAtSentence: true,
		maxTokens:      0,
	}
}

// intN returns a uniform index in [0, n) from the configured source, or the
// goroutine-safe global source when none was given.
func (o *generateOptions) intN(n int) int {
	if o.rng != nil {
		return o.rng.IntN(n)
	}
	return rand.IntN(n)
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in generation functions like Generate and Sample.
type GenerateOption func(*generateOptions)

// WithSentenceLimit specifies whether the walk stops as soon as an appended
// token ends in sentence-ending punctuation. The starting prefix is never
// checked. Enabled by default.
func WithSentenceLimit(stop bool) GenerateOption {
	return func(o *generateOptions) { o.stopAtSentence = stop }
}

// WithMaxTokens caps the number of tokens in the output. The walk ends quietly
// when the cap is reached, and the starting prefix is always emitted whole even
// if it is longer than the cap. A value of 0 disables the cap, which lets a walk
// over a cyclic chain run forever.
func WithMaxTokens(n int) GenerateOption {
	return func(o *generateOptions) { o.maxTokens = n }
}

// WithRand sets the random source used for every choice. A *rand.Rand is not
// safe for concurrent use, so callers sharing one across goroutines must
// synchronize. By default the global source of math/rand/v2 is used.
func WithRand(r *rand.Rand) GenerateOption {
	return func(o *generateOptions) { o.rng = r }
}

// GenerateTokens walks chains from a uniformly chosen starting prefix and returns
// the generated tokens, with the first token title-cased.
func GenerateTokens(chains *Chains, n int, stopAtSentenceBoundary bool) ([]string, error) {
	if chains == nil || chains.Len() == 0 {
		return nil, ErrEmptyChain
	}
	if n != chains.Order() {
		return nil, ErrOrderMismatch
	}
	return defaultGenerator.GenerateTokens(context.Background(), chains, WithSentenceLimit(stopAtSentenceBoundary))
}

// GenerateText is GenerateTokens joined with single spaces.
func GenerateText(chains *Chains, n int, stopAtSentenceBoundary bool) (string, error) {
	words, err := GenerateTokens(chains, n, stopAtSentenceBoundary)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// Generate walks chains and returns the generated text as a single string.
func (g *Generator) Generate(ctx context.Context, chains *Chains, opts ...GenerateOption) (string, error) {
	words, err := g.GenerateTokens(ctx, chains, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// GenerateTokens walks chains and returns the generated tokens, with the first
// token title-cased.
func (g *Generator) GenerateTokens(ctx context.Context, chains *Chains, opts ...GenerateOption) ([]string, error) {
	if chains == nil || chains.Len() == 0 {
		return nil, ErrEmptyChain
	}

	words := make([]string, 0, 2*chains.Order())
	err := g.walk(ctx, chains, newGenerateOptions(opts), func(token string) error {
		words = append(words, token)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := defaultGenerateOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// walk contains the main loop for walking a chain, passing every output token
// to emit in order. An error from emit stops the walk and is returned.
//
// The output starts as a copy of a uniformly chosen prefix. Each step looks up
// the last Order() tokens and appends a uniformly chosen successor. The walk
// ends when that lookup finds nothing, when a sentence-ending token is appended
// (if enabled), when the token cap is reached, or when ctx is done.
func (g *Generator) walk(ctx context.Context, chains *Chains, options *generateOptions, emit func(string) error) error {
	n := chains.Order()
	seed := chains.keys[options.intN(len(chains.keys))]

	for i, token := range seed {
		if i == 0 {
			token = titleCase(token)
		}
		if err := emit(token); err != nil {
			return err
		}
	}

	window := make(Prefix, n, 2*n)
	copy(window, seed)
	count := n

	reason := "dead_end"
	for {
		if options.maxTokens > 0 && count >= options.maxTokens {
			reason = "max_tokens"
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		choices := chains.next(window.String())
		if len(choices) == 0 {
			break
		}
		next := choices[options.intN(len(choices))]
		if err := emit(next); err != nil {
			return err
		}
		count++
		window = append(window[1:], next)

		if options.stopAtSentence && IsSentenceEnd(next) {
			reason = "sentence_end"
			break
		}
	}

	g.logger.DebugContext(ctx, "Generation terminated",
		slog.String("reason", reason),
		slog.String("seed", seed.String()),
		slog.Int("generated_length", count),
	)
	return nil
}

// titleCase splits s into runs of cased letters and title-cases each run, so
// the first letter after any uncased rune (apostrophe, hyphen, digit, quote) is
// upper-cased and the rest are lower-cased: "o'neil" becomes "O'Neil" and
// "1st" becomes "1St". Uncased runs are copied unchanged.
func titleCase(s string) string {
	// A Caser keeps state, so a fresh one is made per call.
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(s))

	start, inCased := 0, false
	flush := func(end int) {
		if inCased {
			b.WriteString(caser.String(s[start:end]))
		} else {
			b.WriteString(s[start:end])
		}
	}
	for i, r := range s {
		if c := isCased(r); c != inCased {
			flush(i)
			start, inCased = i, c
		}
	}
	flush(len(s))

	return b.String()
}

// isCased reports whether r has case, i.e. belongs to the Unicode Cased property.
func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r) ||
		unicode.Is(unicode.Other_Lowercase, r) || unicode.Is(unicode.Other_Uppercase, r)
}
