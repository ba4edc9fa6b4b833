// Package words implements vocabulary extraction and the small set of
// order-sensitive transforms the clouds compose: classification, bounded
// deduplication, and shuffling.
package words

import (
	"math/rand"
	"strings"
	"unicode"
)

// Vocabulary is an ordered, duplicate-free list of lowercase tokens.
type Vocabulary []string

// Extract tokenizes each text and returns the distinct tokens in first
// appearance order. Tokens are lowercased; every non-letter rune acts as a
// separator, so "CO2 emissions (metric tons)" yields co, emissions, metric,
// tons.
func Extract(texts []string) Vocabulary {
	seen := make(map[string]struct{})
	var vocab Vocabulary
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, token := range strings.FieldsFunc(lower, isSeparator) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			vocab = append(vocab, token)
		}
	}
	return vocab
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r)
}

// Classify keeps the words keep accepts, preserving order.
func Classify(vocab Vocabulary, keep func(string) bool) Vocabulary {
	out := make(Vocabulary, 0, len(vocab))
	for _, word := range vocab {
		if keep(word) {
			out = append(out, word)
		}
	}
	return out
}

// BoundedUnique returns the first n distinct tokens in order. n <= 0 yields
// an empty vocabulary.
func BoundedUnique(tokens []string, n int) Vocabulary {
	if n <= 0 {
		return Vocabulary{}
	}
	seen := make(map[string]struct{}, n)
	out := make(Vocabulary, 0, min(n, len(tokens)))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
		if len(out) == n {
			break
		}
	}
	return out
}

// Shuffle returns a permuted copy of tokens. rng must not be nil; callers
// seed it for reproducible runs.
func Shuffle(tokens []string, rng *rand.Rand) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
