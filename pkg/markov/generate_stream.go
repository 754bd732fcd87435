package markov

import (
	"context"
	"log/slog"
)

// GenerateStream walks chains and returns a read-only channel of Tokens.
// This allows for processing the generated text token-by-token, which is useful
// when the walk is long or uncapped. A token's EOC flag is set when it ends in
// sentence-ending punctuation. The channel will be closed once the walk ends or
// the context is cancelled.
//
// The chains must not be modified until the channel is closed.
func (g *Generator) GenerateStream(ctx context.Context, chains *Chains, opts ...GenerateOption) (<-chan Token, error) {
	if chains == nil || chains.Len() == 0 {
		return nil, ErrEmptyChain
	}
	options := newGenerateOptions(opts)

	tokenChan := make(chan Token)

	go func() {
		defer close(tokenChan)

		err := g.walk(ctx, chains, options, func(text string) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case tokenChan <- Token{Text: text, EOC: IsSentenceEnd(text)}:
				return nil
			}
		})
		if err != nil {
			g.logger.DebugContext(ctx, "Generation stream cancelled by context", slog.Any("error", err))
		}
	}()

	return tokenChan, nil
}
