package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gkchan/HB-markov-twitter/pkg/markov"
)

// loadChains trains fresh chains of the given order on every corpus file in
// order. Any unreadable file aborts the whole load.
func (a *app) loadChains(ctx context.Context, order int, paths []string) (*markov.Chains, error) {
	if len(paths) == 0 {
		return nil, errors.New("no corpus files given")
	}
	paths, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}

	chains, err := markov.NewChains(order)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if err = a.trainFile(ctx, chains, path); err != nil {
			return nil, err
		}
	}

	a.logger.Info("Corpus loaded", "files", len(paths), "prefixes", chains.Len())
	return chains, nil
}

func (a *app) trainFile(ctx context.Context, chains *markov.Chains, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if err = a.generator.Train(ctx, chains, f); err != nil {
		return fmt.Errorf("failed to train on %s: %w", path, err)
	}
	return nil
}

// corpusPaths returns the positional arguments if any, else the configured corpus.
func (a *app) corpusPaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return a.config.Markov.Corpus
}
