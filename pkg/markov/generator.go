package markov

import (
	"io"
	"log/slog"
)

// Generator is the main entry point for training and walking chains. It holds
// the tokenizer used for training and a logger.
//
// The chains themselves are passed to each call rather than owned by the
// Generator, so one Generator can serve any number of independently built
// Chains values.
type Generator struct {
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewGenerator creates and returns a new Generator using the given Tokenizer.
// A nil tokenizer selects the WhitespaceTokenizer.
func NewGenerator(tokenizer Tokenizer) *Generator {
	if tokenizer == nil {
		tokenizer = NewWhitespaceTokenizer()
	}
	return &Generator{
		tokenizer: tokenizer,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
// Providing a `log/slog.Logger` will enable logging for training, generation,
// and sampling.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

var defaultGenerator = NewGenerator(nil)
