package poetic

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed data/*.json data/*.jsonl data/*.yaml
var defaultData embed.FS

// Tables holds the static lookup data every component reads. It is built
// once by LoadTables and never mutated afterwards, so one Tables value may
// be shared by any number of concurrent validations.
type Tables struct {
	// vowels is every vowel character, marked or not.
	vowels map[rune]bool
	// even is the subset of vowels carrying no mark or the grave accent.
	even map[rune]bool
	// ambiguous lists characters that trigger the cluster-wide tone vote.
	ambiguous map[rune]bool

	// rhymes maps kernel → compatible kernels, in table order.
	rhymes map[string][]string
	// rhymeSets is rhymes indexed for membership tests.
	rhymeSets map[string]map[string]bool

	// patterns maps line-length key → required tones, sorted by position.
	patterns map[string]tonePattern

	// dictionary maps first letter → set of lower-cased words.
	dictionary map[rune]map[string]bool
}

func newTables() *Tables {
	return &Tables{
		vowels:     make(map[rune]bool),
		even:       make(map[rune]bool),
		ambiguous:  make(map[rune]bool),
		rhymes:     make(map[string][]string),
		rhymeSets:  make(map[string]map[string]bool),
		patterns:   make(map[string]tonePattern),
		dictionary: make(map[rune]map[string]bool),
	}
}

// LoadTablesDir loads the tables from a directory on disk.
func LoadTablesDir(dir string) (*Tables, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTableLoad, err)
	}
	return LoadTables(os.DirFS(dir))
}

// DefaultTables loads the tables embedded in the package.
func DefaultTables() (*Tables, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTableLoad, err)
	}
	return LoadTables(sub)
}

// IsVowel reports whether r is a (possibly tone-marked) vowel.
func (t *Tables) IsVowel(r rune) bool { return t.vowels[r] }

// IsEven reports whether r is a vowel carrying an even tone mark.
func (t *Tables) IsEven(r rune) bool { return t.even[r] }

// RhymeSet returns the kernels compatible with kernel, or nil when the
// kernel is not in the rhyme table.
func (t *Tables) RhymeSet(kernel string) []string {
	set := t.rhymes[kernel]
	if set == nil {
		return nil
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}

// kernelRhymes reports whether b is listed as a rhyme of a.
// An unknown kernel a never rhymes.
func (t *Tables) kernelRhymes(a, b string) bool {
	return t.rhymeSets[a][b]
}

// pattern returns the positional tone requirements for key.
func (t *Tables) pattern(key string) tonePattern {
	return t.patterns[key]
}

// bucket returns the dictionary words starting with r.
func (t *Tables) bucket(r rune) map[string]bool {
	return t.dictionary[r]
}

// Stats reports table sizes, for logging at startup.
func (t *Tables) Stats() map[string]int {
	words := 0
	for _, b := range t.dictionary {
		words += len(b)
	}
	return map[string]int{
		"vowels":    len(t.vowels),
		"ambiguous": len(t.ambiguous),
		"rhymes":    len(t.rhymes),
		"patterns":  len(t.patterns),
		"words":     words,
	}
}
