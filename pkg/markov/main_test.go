package markov

import (
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const referenceCorpus = "hi there mary hi there juanita"

// setupTestChains builds chains of the given order from each text.
func setupTestChains(t *testing.T, order int, texts ...string) *Chains {
	t.Helper()
	sequences := make([][]string, 0, len(texts))
	for _, text := range texts {
		sequences = append(sequences, Tokenize(text))
	}
	chains, err := BuildChains(sequences, order, nil)
	if err != nil {
		t.Fatalf("setup: BuildChains() failed: %v", err)
	}
	return chains
}

// seeded returns a deterministic random source for reproducible walks.
func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// successorCounts flattens chains into prefix -> successor -> count.
func successorCounts(c *Chains) map[string]map[string]int {
	counts := make(map[string]map[string]int)
	for _, prefix := range c.Keys() {
		next, _ := c.Successors(prefix)
		m := make(map[string]int)
		for _, token := range next {
			m[token]++
		}
		counts[prefix.String()] = m
	}
	return counts
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
