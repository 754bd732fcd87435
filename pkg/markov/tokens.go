package markov

import (
	"io"
	"unicode/utf8"
)

// Token represents a single tokenized unit of text. It contains the text itself
// and a boolean flag indicating if it ends a sentence.
type Token struct {
	Text string
	EOC  bool
}

// Tokenizer is an interface that defines the contract for splitting input text
// into tokens. This allows training to be independent of the specific
// tokenization strategy.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}

// sentenceEnders are the runes that end a sentence when they trail a token.
var sentenceEnders = map[rune]struct{}{
	'?':      {},
	'.':      {},
	'!':      {},
	'\u201d': {}, // right double quotation mark
}

// IsSentenceEnd reports whether the last rune of token is sentence-ending
// punctuation.
func IsSentenceEnd(token string) bool {
	r, size := utf8.DecodeLastRuneInString(token)
	if size == 0 {
		return false
	}
	_, ok := sentenceEnders[r]
	return ok
}
