package poetic

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Default table file names inside a tables directory.
const (
	VowelsFile        = "vowels.json"
	RhymesFile        = "rhymes.json"
	TonePositionsFile = "tone_positions.yaml"
	AmbiguityFile     = "tone_ambiguity.json"
	DictionaryFile    = "words.jsonl"
)

// Tone-position table keys. Pattern78Alt is the synthetic key holding the
// inverted triple used by alternate lines of the 7-syllable form.
const (
	patternShort  = "6"
	patternLong   = "8"
	pattern78     = "7"
	pattern78Alt  = "71"
	vowelKeyPlain = "khong_dau"
)

var vowelKeys = []string{"huyen", "sac", "nang", "hoi", "nga", vowelKeyPlain}

// ErrTableLoad wraps every failure to read or decode a static table.
var ErrTableLoad = errors.New("poetic: table load failed")

// LoadTables reads the five static tables from fsys and returns a read-only
// Tables value. The tables are decoded concurrently.
func LoadTables(fsys fs.FS) (*Tables, error) {
	t := newTables()

	var g errgroup.Group
	g.Go(func() error { return t.loadVowels(fsys, VowelsFile) })
	g.Go(func() error { return t.loadRhymes(fsys, RhymesFile) })
	g.Go(func() error { return t.loadTonePositions(fsys, TonePositionsFile) })
	g.Go(func() error { return t.loadAmbiguity(fsys, AmbiguityFile) })
	g.Go(func() error { return t.loadDictionary(fsys, DictionaryFile) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

// decodeTable decodes one serialized mapping, choosing the codec by extension.
func decodeTable(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrTableLoad, name, err)
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %s: unsupported table format", ErrTableLoad, name)
	}
	if err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrTableLoad, name, err)
	}
	return nil
}

// loadVowels reads the vowel/tone table: tone name → list of characters.
// Unmarked and grave-accent vowels are the even set.
func (t *Tables) loadVowels(fsys fs.FS, name string) error {
	var raw map[string][]string
	if err := decodeTable(fsys, name, &raw); err != nil {
		return err
	}
	for _, key := range vowelKeys {
		chars, ok := raw[key]
		if !ok {
			return fmt.Errorf("%w: %s: missing key %q", ErrTableLoad, name, key)
		}
		even := key == vowelKeyPlain || key == "huyen"
		for _, c := range chars {
			r, ok := singleRune(c)
			if !ok {
				return fmt.Errorf("%w: %s: %q is not a single character", ErrTableLoad, name, c)
			}
			t.vowels[r] = true
			if even {
				t.even[r] = true
			}
		}
	}
	return nil
}

// loadRhymes reads the rhyme table: kernel → compatible kernels.
func (t *Tables) loadRhymes(fsys fs.FS, name string) error {
	var raw map[string][]string
	if err := decodeTable(fsys, name, &raw); err != nil {
		return err
	}
	for kernel, compatible := range raw {
		key := norm.NFC.String(kernel)
		set := make(map[string]bool, len(compatible))
		list := make([]string, 0, len(compatible))
		for _, c := range compatible {
			c = norm.NFC.String(c)
			if !set[c] {
				set[c] = true
				list = append(list, c)
			}
		}
		t.rhymes[key] = list
		t.rhymeSets[key] = set
	}
	return nil
}

// loadTonePositions reads the positional tone table: line-length key →
// 0-based position → tone class name.
func (t *Tables) loadTonePositions(fsys fs.FS, name string) error {
	var raw map[string]map[int]string
	if err := decodeTable(fsys, name, &raw); err != nil {
		return err
	}
	for _, key := range []string{patternShort, patternLong, pattern78, pattern78Alt} {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("%w: %s: missing pattern %q", ErrTableLoad, name, key)
		}
	}
	for key, positions := range raw {
		p := make(tonePattern, 0, len(positions))
		for pos, toneName := range positions {
			tone, err := ParseTone(toneName)
			if err != nil {
				return fmt.Errorf("%w: %s: pattern %s position %d: %w", ErrTableLoad, name, key, pos, err)
			}
			if pos < 0 {
				return fmt.Errorf("%w: %s: pattern %s: negative position %d", ErrTableLoad, name, key, pos)
			}
			p = append(p, toneSlot{Position: pos + 1, Tone: tone})
		}
		slices.SortFunc(p, func(a, b toneSlot) int { return a.Position - b.Position })
		t.patterns[key] = p
	}
	return nil
}

// loadAmbiguity reads the flat list of characters whose position inside a
// vowel cluster does not settle the tone on its own.
func (t *Tables) loadAmbiguity(fsys fs.FS, name string) error {
	var raw []string
	if err := decodeTable(fsys, name, &raw); err != nil {
		return err
	}
	for _, c := range raw {
		r, ok := singleRune(c)
		if !ok {
			return fmt.Errorf("%w: %s: %q is not a single character", ErrTableLoad, name, c)
		}
		t.ambiguous[r] = true
	}
	return nil
}

// loadDictionary reads the word list, one JSON record with a "text" field
// per line, and groups the lower-cased entries by first letter.
func (t *Tables) loadDictionary(fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrTableLoad, name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var entry struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return fmt.Errorf("%w: %s:%d: %w", ErrTableLoad, name, lineNo, err)
		}
		text := strings.ToLower(norm.NFC.String(strings.TrimSpace(entry.Text)))
		if text == "" {
			continue
		}
		first := []rune(text)[0]
		bucket := t.dictionary[first]
		if bucket == nil {
			bucket = make(map[string]bool)
			t.dictionary[first] = bucket
		}
		bucket[text] = true
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrTableLoad, name, err)
	}
	return nil
}

// singleRune returns the only rune of s after NFC normalization.
func singleRune(s string) (rune, bool) {
	rs := []rune(norm.NFC.String(s))
	if len(rs) != 1 {
		return 0, false
	}
	return rs[0], true
}

// patternKey returns the tone-position table key for a line length.
func patternKey(n int) string {
	return strconv.Itoa(n)
}
