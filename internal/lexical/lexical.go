// Package lexical provides the word-class predicates the vocabulary
// filters rely on. The verb list ships embedded so classification works
// offline and never touches the word services.
package lexical

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed verbs.txt
var verbsRaw string

var (
	verbsOnce sync.Once
	verbs     *Set
)

// Set is an immutable membership set of lowercase words.
type Set struct {
	words map[string]struct{}
}

// NewSet builds a Set from words, lowercasing each entry.
func NewSet(words []string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
	return s
}

// ParseList builds a Set from newline-separated text. Blank lines and
// lines starting with '#' are skipped.
func ParseList(raw string) *Set {
	var words []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return NewSet(words)
}

// Contains reports whether word is in the set. Lookup is case-insensitive.
func (s *Set) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct words in the set.
func (s *Set) Len() int {
	return len(s.words)
}

// Verbs returns the embedded English verb list, parsed once.
func Verbs() *Set {
	verbsOnce.Do(func() {
		verbs = ParseList(verbsRaw)
	})
	return verbs
}
