package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Train reads a whole text resource from data, tokenizes it and adds it to
// chains as one token sequence. Calling Train once per text lets several texts
// share one chain; transitions never span two texts.
//
// Nothing is added to chains if reading or tokenizing fails.
func (g *Generator) Train(ctx context.Context, chains *Chains, data io.Reader) error {
	if chains == nil {
		return errors.New("markov: train called with nil chains")
	}

	stream := g.tokenizer.NewStream(data)
	var tokens []string
	var sentenceCount int

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("tokenizer error: %w", err)
		}
		tokens = append(tokens, token.Text)
		if token.EOC {
			sentenceCount++
		}
	}

	added := chains.Add(tokens)

	g.logger.InfoContext(ctx, "Training completed",
		slog.Int("order", chains.Order()),
		slog.Int("tokens_processed", len(tokens)),
		slog.Int("sentences_processed", sentenceCount),
		slog.Int("links_added", added),
		slog.Int("prefixes_total", chains.Len()),
	)

	return nil
}
