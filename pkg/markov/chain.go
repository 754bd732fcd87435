package markov

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidOrder is returned when a chain order (n-gram width) is not positive.
	ErrInvalidOrder = errors.New("markov: order must be a positive integer")
	// ErrOrderMismatch is returned when an order argument disagrees with the
	// order a Chains value was created with.
	ErrOrderMismatch = errors.New("markov: order does not match chains")
	// ErrEmptyChain is returned when generation is attempted on a Chains value
	// with no prefixes, so no starting prefix can be chosen.
	ErrEmptyChain = errors.New("markov: chains contain no prefixes")
)

// prefixSeparator joins prefix tokens into map keys. Tokens are split on
// whitespace, so they never contain it and the joined key is unambiguous.
const prefixSeparator = " "

// Prefix is an ordered n-gram of consecutive tokens used as a chain key.
type Prefix []string

// String returns the Prefix as a string (for use as a map key).
func (p Prefix) String() string {
	return strings.Join(p, prefixSeparator)
}

// Chains maps every observed prefix to the tokens seen directly after it.
// Successor lists keep duplicates, so a token seen twice after a prefix is twice
// as likely to be chosen. Every prefix present has at least one successor.
//
// Prefixes are also kept in an insertion-ordered slice, which gives generation an
// indexable view for uniform random selection of a starting prefix.
//
// A Chains value is not safe for concurrent mutation. Once built it may be read
// by any number of walks.
type Chains struct {
	order int
	links map[string][]string
	keys  []Prefix
}

// NewChains creates an empty Chains value for n-grams of the given order.
func NewChains(order int) (*Chains, error) {
	if order <= 0 {
		return nil, ErrInvalidOrder
	}
	return &Chains{
		order: order,
		links: make(map[string][]string),
	}, nil
}

// BuildChains adds every token sequence to existing and returns it. If existing
// is nil a new Chains value of order n is created. The same value can be passed
// through repeated calls so several texts share a single chain.
//
// Sequences with n or fewer tokens contribute nothing.
func BuildChains(sequences [][]string, n int, existing *Chains) (*Chains, error) {
	if n <= 0 {
		return nil, ErrInvalidOrder
	}
	if existing == nil {
		existing, _ = NewChains(n)
	} else if existing.order != n {
		return nil, ErrOrderMismatch
	}
	for _, tokens := range sequences {
		existing.Add(tokens)
	}
	return existing, nil
}

// Add records every (prefix -> successor) transition in tokens. The final n
// tokens never become a prefix because nothing follows them.
func (c *Chains) Add(tokens []string) int {
	added := 0
	for i := 0; i+c.order < len(tokens); i++ {
		prefix := tokens[i : i+c.order]
		key := Prefix(prefix).String()
		if _, ok := c.links[key]; !ok {
			c.keys = append(c.keys, append(Prefix(nil), prefix...))
		}
		c.links[key] = append(c.links[key], tokens[i+c.order])
		added++
	}
	return added
}

// Order returns the n-gram width of the chains.
func (c *Chains) Order() int {
	return c.order
}

// Len returns the number of distinct prefixes.
func (c *Chains) Len() int {
	return len(c.keys)
}

// Keys returns a copy of all prefixes in the order they were first observed.
func (c *Chains) Keys() []Prefix {
	keys := make([]Prefix, len(c.keys))
	for i, k := range c.keys {
		keys[i] = append(Prefix(nil), k...)
	}
	return keys
}

// Successors returns a copy of the successor list for prefix, and whether the
// prefix was observed at all.
func (c *Chains) Successors(prefix Prefix) ([]string, bool) {
	next, ok := c.links[prefix.String()]
	if !ok {
		return nil, false
	}
	return append([]string(nil), next...), true
}

// next returns the successor list for a joined key without copying.
func (c *Chains) next(key string) []string {
	return c.links[key]
}
