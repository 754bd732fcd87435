package markov

import (
	"bufio"
	"io"
	"strings"
)

// WhitespaceTokenizer is the default implementation of the Tokenizer interface.
// It splits text on runs of Unicode whitespace and keeps punctuation attached
// to the word it trails, so "said." stays a single token.
type WhitespaceTokenizer struct {
	maxTokenSize int
}

// Option Is a function that configures a WhitespaceTokenizer.
type Option func(*WhitespaceTokenizer)

// WithMaxTokenSize sets the longest token, in bytes, the stream will accept.
// Longer tokens make Next return bufio.ErrTooLong.
// Default: bufio.MaxScanTokenSize
func WithMaxTokenSize(n int) Option {
	return func(t *WhitespaceTokenizer) {
		t.maxTokenSize = n
	}
}

// NewWhitespaceTokenizer creates a new tokenizer with default settings, which can
// be overridden by providing one or more Option functions.
func NewWhitespaceTokenizer(opts ...Option) *WhitespaceTokenizer {
	t := &WhitespaceTokenizer{
		maxTokenSize: bufio.MaxScanTokenSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewStream Returns the stream processor.
func (t *WhitespaceTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	// The scanner's limit is the larger of max and the buffer's capacity.
	scanner.Buffer(make([]byte, 0, min(4096, t.maxTokenSize)), t.maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &WhitespaceStreamTokenizer{scanner: scanner}
}

// WhitespaceStreamTokenizer is the StreamTokenizer returned by WhitespaceTokenizer.
type WhitespaceStreamTokenizer struct {
	scanner *bufio.Scanner
}

// Next returns the next token from the stream. It returns a Token and a nil error on
// success. When the stream is exhausted, it returns a nil Token and io.EOF.
// Any other error indicates a problem reading from the underlying stream.
func (s *WhitespaceStreamTokenizer) Next() (*Token, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	word := s.scanner.Text()
	return &Token{Text: word, EOC: IsSentenceEnd(word)}, nil
}

// Tokenize splits text on runs of Unicode whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}
