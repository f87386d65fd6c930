package poetic

import (
	"fmt"
	"strings"
)

// Tone is the two-way tone class used by the prosody rules.
type Tone int

const (
	// Even (bằng): no mark or grave accent.
	Even Tone = iota
	// Uneven (trắc): acute, hook above, tilde or dot below.
	Uneven
)

func (t Tone) String() string {
	if t == Even {
		return "even"
	}
	return "uneven"
}

// MarshalText implements encoding.TextMarshaler.
func (t Tone) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tone) UnmarshalText(b []byte) error {
	v, err := ParseTone(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTone accepts "even"/"bang"/"B" and "uneven"/"trac"/"T".
func ParseTone(s string) (Tone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "even", "bang", "bằng", "b":
		return Even, nil
	case "uneven", "trac", "trắc", "t":
		return Uneven, nil
	}
	return Even, fmt.Errorf("unknown tone class %q", s)
}

// toneSlot is one positional requirement: the 1-based syllable position
// and the tone it must carry.
type toneSlot struct {
	Position int
	Tone     Tone
}

type tonePattern []toneSlot

// Syllable is one analyzed word of a poem.
type Syllable struct {
	// Text is the token as written, punctuation included.
	Text string `json:"text"`
	// Onset is the leading consonant span, digraphs "gi"/"qu" included.
	Onset string `json:"onset"`
	// Kernel is the rhyme kernel: vowel nucleus plus final consonant.
	Kernel string `json:"kernel"`
	Tone   Tone   `json:"tone"`
	// Line and Position are 1-based coordinates inside the stanza.
	Line     int `json:"line"`
	Position int `json:"position"`
}

// Analyzer splits syllables into onset and rhyme kernel and classifies
// their tone.
type Analyzer struct {
	t *Tables
}

// NewAnalyzer returns an Analyzer reading from t.
func NewAnalyzer(t *Tables) *Analyzer {
	return &Analyzer{t: t}
}

// SplitKernel returns the rhyme kernel of word: everything from the first
// vowel on. The "i" of "gi" and the "u" of "qu" belong to the onset.
// A word without any vowel is returned whole.
func (a *Analyzer) SplitKernel(word string) string {
	rs := []rune(cleanWord(word))
	return string(rs[a.kernelStart(rs):])
}

func (a *Analyzer) kernelStart(rs []rune) int {
	var prev rune
	for i, r := range rs {
		if (prev == 'g' && r == 'i') || (prev == 'q' && r == 'u') {
			continue
		}
		if a.t.vowels[r] {
			return i
		}
		prev = r
	}
	return 0
}

// ClassifyTone returns the tone class of word.
//
// When the kernel starts with a character from the ambiguity table the
// whole cluster votes: any uneven-marked ambiguous character makes the
// syllable Uneven. Otherwise the first, then the second kernel character
// is looked up in the even set, and anything else is Uneven. Empty words
// are Uneven.
func (a *Analyzer) ClassifyTone(word string) Tone {
	k := []rune(a.SplitKernel(word))
	if len(k) == 0 {
		return Uneven
	}
	if a.t.ambiguous[k[0]] {
		votes := 0
		for _, r := range k {
			if !a.t.even[r] && a.t.ambiguous[r] {
				votes++
			}
		}
		if votes > 0 {
			return Uneven
		}
		return Even
	}
	if a.t.even[k[0]] {
		return Even
	}
	if len(k) > 1 && a.t.even[k[1]] {
		return Even
	}
	return Uneven
}

// Syllable analyzes word found at the given 1-based line and position.
func (a *Analyzer) Syllable(word string, line, position int) Syllable {
	rs := []rune(cleanWord(word))
	start := a.kernelStart(rs)
	return Syllable{
		Text:     word,
		Onset:    string(rs[:start]),
		Kernel:   string(rs[start:]),
		Tone:     a.ClassifyTone(word),
		Line:     line,
		Position: position,
	}
}

// Syllables analyzes every word of a stanza.
func (a *Analyzer) Syllables(stanza string) [][]Syllable {
	lines := splitLines(stanza)
	out := make([][]Syllable, len(lines))
	for i, words := range lines {
		row := make([]Syllable, len(words))
		for j, w := range words {
			row[j] = a.Syllable(w, i+1, j+1)
		}
		out[i] = row
	}
	return out
}
