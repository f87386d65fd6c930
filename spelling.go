package poetic

import (
	"cmp"
	"slices"

	"github.com/agnivade/levenshtein"
)

// SpellChecker tests words against the dictionary.
type SpellChecker struct {
	t *Tables
}

// NewSpellChecker returns a SpellChecker reading from t.
func NewSpellChecker(t *Tables) *SpellChecker {
	return &SpellChecker{t: t}
}

// Known reports whether word, stripped of punctuation and lower-cased, is
// in the dictionary. Tokens made only of punctuation count as known.
func (s *SpellChecker) Known(word string) bool {
	w := cleanWord(word)
	if w == "" {
		return true
	}
	return s.t.bucket([]rune(w)[0])[w]
}

// Check returns one MisspelledWord defect per unknown word of the stanza.
func (s *SpellChecker) Check(stanza string) []Defect {
	return s.checkLines(splitLines(stanza))
}

func (s *SpellChecker) checkLines(lines [][]string) []Defect {
	var ds []Defect
	for i, words := range lines {
		for j, w := range words {
			if !s.Known(w) {
				ds = append(ds, Defect{Line: i + 1, Position: j + 1, Kind: MisspelledWord, Word: w})
			}
		}
	}
	return ds
}

// Suggest returns up to n dictionary words sharing word's first letter,
// closest first by edit distance. Equal distances sort alphabetically.
func (s *SpellChecker) Suggest(word string, n int) []string {
	w := cleanWord(word)
	if w == "" || n <= 0 {
		return nil
	}
	type scored struct {
		word string
		dist int
	}
	bucket := s.t.bucket([]rune(w)[0])
	cands := make([]scored, 0, len(bucket))
	for entry := range bucket {
		cands = append(cands, scored{word: entry, dist: levenshtein.ComputeDistance(w, entry)})
	}
	slices.SortFunc(cands, func(a, b scored) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), cmp.Compare(a.word, b.word))
	})
	out := make([]string, 0, min(n, len(cands)))
	for _, c := range cands[:min(n, len(cands))] {
		out = append(out, c.word)
	}
	return out
}
