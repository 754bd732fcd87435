package markov

// Stats holds aggregated statistics for a Chains value.
type Stats struct {
	Order       int // The n-gram width
	Prefixes    int // The number of distinct prefixes
	Links       int // The number of observed transitions, duplicates included
	UniqueLinks int // The number of distinct prefix->successor pairs
	Vocabulary  int // The number of distinct tokens in prefixes or successors
	Terminal    int // The number of prefixes with at least one sentence-ending successor
}

// Stats returns a snapshot of statistics for the chains.
func (c *Chains) Stats() Stats {
	vocab := make(map[string]struct{})
	stats := Stats{
		Order:    c.order,
		Prefixes: len(c.keys),
	}

	for _, prefix := range c.keys {
		for _, token := range prefix {
			vocab[token] = struct{}{}
		}

		next := c.links[prefix.String()]
		stats.Links += len(next)

		distinct := make(map[string]struct{}, len(next))
		terminal := false
		for _, token := range next {
			distinct[token] = struct{}{}
			vocab[token] = struct{}{}
			if IsSentenceEnd(token) {
				terminal = true
			}
		}
		stats.UniqueLinks += len(distinct)
		if terminal {
			stats.Terminal++
		}
	}

	stats.Vocabulary = len(vocab)
	return stats
}
