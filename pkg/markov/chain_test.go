package markov

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestBuildChainsReference(t *testing.T) {
	chains := setupTestChains(t, 2, referenceCorpus)

	expected := map[string][]string{
		"hi there":   {"mary", "juanita"},
		"there mary": {"hi"},
		"mary hi":    {"there"},
	}

	if chains.Len() != len(expected) {
		t.Fatalf("expected %d prefixes, got %d", len(expected), chains.Len())
	}
	for key, want := range expected {
		got, ok := chains.Successors(Tokenize(key))
		if !ok {
			t.Errorf("expected prefix %q to exist", key)
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("successors of %q: expected %v, got %v", key, want, got)
		}
	}

	// The last bigram has nothing after it.
	if _, ok := chains.Successors(Prefix{"there", "juanita"}); ok {
		t.Error("expected 'there juanita' not to be a prefix")
	}
}

func TestBuildChainsKeyOrder(t *testing.T) {
	chains := setupTestChains(t, 2, referenceCorpus)

	expected := []Prefix{{"hi", "there"}, {"there", "mary"}, {"mary", "hi"}}
	if got := chains.Keys(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected keys %v, got %v", expected, got)
	}
}

func TestBuildChainsShortSequences(t *testing.T) {
	testCases := []struct {
		name   string
		tokens []string
		order  int
	}{
		{name: "Empty", tokens: nil, order: 1},
		{name: "Shorter than order", tokens: []string{"a"}, order: 2},
		{name: "Equal to order", tokens: []string{"a", "b"}, order: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chains, err := BuildChains([][]string{tc.tokens}, tc.order, nil)
			if err != nil {
				t.Fatalf("BuildChains() failed: %v", err)
			}
			if chains.Len() != 0 {
				t.Errorf("expected no prefixes, got %d", chains.Len())
			}
		})
	}
}

func TestBuildChainsAccumulates(t *testing.T) {
	chains, err := NewChains(1)
	if err != nil {
		t.Fatalf("NewChains() failed: %v", err)
	}

	returned, err := BuildChains([][]string{Tokenize("a b")}, 1, chains)
	if err != nil {
		t.Fatalf("BuildChains() failed: %v", err)
	}
	if returned != chains {
		t.Fatal("expected BuildChains to return the existing chains")
	}
	if _, err = BuildChains([][]string{Tokenize("a c"), Tokenize("a b")}, 1, chains); err != nil {
		t.Fatalf("BuildChains() failed: %v", err)
	}

	got, _ := chains.Successors(Prefix{"a"})
	if want := []string{"b", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected successors %v, got %v", want, got)
	}

	// Sequences are independent; "b" never precedes "a".
	if _, ok := chains.Successors(Prefix{"b"}); ok {
		t.Error("expected no transition across sequence boundaries")
	}
}

func TestBuildChainsOrderIndependent(t *testing.T) {
	a := Tokenize("the cat sat on the mat and the cat ran")
	b := Tokenize("the dog sat on the cat and the dog barked")

	for _, order := range []int{1, 2, 3} {
		t.Run(fmt.Sprintf("Order%d", order), func(t *testing.T) {
			ab, err := BuildChains([][]string{a}, order, nil)
			if err != nil {
				t.Fatal(err)
			}
			if _, err = BuildChains([][]string{b}, order, ab); err != nil {
				t.Fatal(err)
			}

			ba, err := BuildChains([][]string{b}, order, nil)
			if err != nil {
				t.Fatal(err)
			}
			if _, err = BuildChains([][]string{a}, order, ba); err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(successorCounts(ab), successorCounts(ba)) {
				t.Errorf("expected identical successor multisets for both orders")
			}
		})
	}
}

func TestBuildChainsRandomSequences(t *testing.T) {
	alphabet := []string{"a", "b", "c", "d."}
	rng := seeded(7)

	for trial := 0; trial < 50; trial++ {
		length := rng.IntN(30)
		order := 1 + rng.IntN(3)
		tokens := make([]string, length)
		for i := range tokens {
			tokens[i] = alphabet[rng.IntN(len(alphabet))]
		}

		chains, err := BuildChains([][]string{tokens}, order, nil)
		if err != nil {
			t.Fatalf("BuildChains() failed: %v", err)
		}

		// Count every (n+1)-gram by hand.
		want := make(map[string]map[string]int)
		for i := 0; i+order < len(tokens); i++ {
			key := Prefix(tokens[i : i+order]).String()
			if want[key] == nil {
				want[key] = make(map[string]int)
			}
			want[key][tokens[i+order]]++
		}

		if got := successorCounts(chains); !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d (order %d, tokens %v): expected %v, got %v", trial, order, tokens, want, got)
		}
		for _, prefix := range chains.Keys() {
			if len(prefix) != order {
				t.Fatalf("trial %d: prefix %v has length %d, expected %d", trial, prefix, len(prefix), order)
			}
			if next, _ := chains.Successors(prefix); len(next) == 0 {
				t.Fatalf("trial %d: prefix %v has no successors", trial, prefix)
			}
		}
	}
}

func TestBuildChainsOrderValidation(t *testing.T) {
	if _, err := BuildChains(nil, 0, nil); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("expected ErrInvalidOrder for order 0, got %v", err)
	}
	if _, err := NewChains(-1); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("expected ErrInvalidOrder for order -1, got %v", err)
	}

	chains, _ := NewChains(2)
	if _, err := BuildChains(nil, 3, chains); !errors.Is(err, ErrOrderMismatch) {
		t.Errorf("expected ErrOrderMismatch, got %v", err)
	}
}

func TestChainsAccessorsReturnCopies(t *testing.T) {
	chains := setupTestChains(t, 2, referenceCorpus)

	keys := chains.Keys()
	keys[0][0] = "changed"
	if got := chains.Keys()[0][0]; got != "hi" {
		t.Errorf("mutating Keys() result changed the chains: got %q", got)
	}

	next, _ := chains.Successors(Prefix{"hi", "there"})
	next[0] = "changed"
	if got, _ := chains.Successors(Prefix{"hi", "there"}); got[0] != "mary" {
		t.Errorf("mutating Successors() result changed the chains: got %q", got[0])
	}
}

func TestChainsDoesNotAliasInput(t *testing.T) {
	tokens := Tokenize(referenceCorpus)
	chains, _ := BuildChains([][]string{tokens}, 2, nil)
	tokens[0] = "bye"

	if _, ok := chains.Successors(Prefix{"hi", "there"}); !ok {
		t.Error("expected chains to keep their own copy of prefixes")
	}
	if got := chains.Keys()[0]; !reflect.DeepEqual(got, Prefix{"hi", "there"}) {
		t.Errorf("expected first key to stay 'hi there', got %v", got)
	}
}

func BenchmarkBuildChains(b *testing.B) {
	tokens := Tokenize(createBenchmarkCorpus())

	for _, order := range []int{1, 2, 3, 4, 5} {
		b.Run(fmt.Sprintf("Order%d", order), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := BuildChains([][]string{tokens}, order, nil); err != nil {
					b.Fatalf("BuildChains() failed: %v", err)
				}
			}
		})
	}
}
