package words

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	texts := []string{
		"Population growth (annual %)",
		"Population density",
		"CO2 emissions, total",
	}
	vocab := Extract(texts)

	require.Equal(t, Vocabulary{"population", "growth", "annual", "density", "co", "emissions", "total"}, vocab)
}

func TestExtractLowercasesAndSplitsOnNonLetters(t *testing.T) {
	vocab := Extract([]string{"GDP per-capita: $1,000 (2019)"})
	require.Equal(t, Vocabulary{"gdp", "per", "capita"}, vocab)
}

func TestExtractDeduplicatesAcrossTexts(t *testing.T) {
	vocab := Extract([]string{"water access", "Access to water"})
	require.Equal(t, Vocabulary{"water", "access", "to"}, vocab)
}

func TestExtractEmpty(t *testing.T) {
	require.Empty(t, Extract(nil))
	require.Empty(t, Extract([]string{"", "123 456", "---"}))
}

func TestClassify(t *testing.T) {
	vocab := Vocabulary{"grow", "mortality", "improve", "rate"}
	long := Classify(vocab, func(w string) bool { return len(w) > 4 })
	require.Equal(t, Vocabulary{"mortality", "improve"}, long)

	require.Empty(t, Classify(vocab, func(string) bool { return false }))
}

func TestBoundedUnique(t *testing.T) {
	tokens := []string{"a", "b", "a", "c", "b", "d"}

	require.Equal(t, Vocabulary{"a", "b", "c"}, BoundedUnique(tokens, 3))
	require.Equal(t, Vocabulary{"a", "b", "c", "d"}, BoundedUnique(tokens, 10))
	require.Empty(t, BoundedUnique(tokens, 0))
	require.Empty(t, BoundedUnique(tokens, -1))
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	first := Shuffle(tokens, rand.New(rand.NewSource(7)))
	second := Shuffle(tokens, rand.New(rand.NewSource(7)))
	require.Equal(t, first, second)
}

func TestShufflePermutesWithoutMutating(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	original := append([]string(nil), tokens...)

	shuffled := Shuffle(tokens, rand.New(rand.NewSource(1)))

	require.Equal(t, original, tokens)

	sortedShuffled := append([]string(nil), shuffled...)
	sort.Strings(sortedShuffled)
	sortedOriginal := append([]string(nil), original...)
	sort.Strings(sortedOriginal)
	require.Equal(t, sortedOriginal, sortedShuffled)
}
