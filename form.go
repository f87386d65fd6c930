package poetic

import (
	"errors"
	"fmt"
	"strings"
)

// FormKind selects the rule set a poem is checked against.
type FormKind int

const (
	// Alternating68 is lục bát: 6-syllable and 8-syllable lines in pairs.
	Alternating68 FormKind = iota + 1
	// Fixed78 is thất ngôn bát cú: eight lines of seven syllables.
	Fixed78
	// SpellingOnly checks words against the dictionary and nothing else.
	SpellingOnly
)

// ErrUnknownForm is returned for an unrecognized form tag.
var ErrUnknownForm = errors.New("poetic: unknown form")

// ErrNotAStanza is returned by Status.Err for input holding more than one
// blank-line separated block.
var ErrNotAStanza = errors.New("poetic: not a single stanza")

// Line lengths of the two forms.
const (
	shortLen    = 6
	longLen     = 8
	fixedLen    = 7
	fixedLines  = 8
	fixedRhyme  = 7
	anchorShort = 6
	anchorLong  = 8
)

// fixedRhymeLines are the 1-based lines of the 7×8 form sharing the end rhyme.
var fixedRhymeLines = []int{1, 2, 4, 6, 8}

var formAliases = map[string]FormKind{
	"68":               Alternating68,
	"luc bat":          Alternating68,
	"lục bát":          Alternating68,
	"lucbat":           Alternating68,
	"78":               Fixed78,
	"that ngon bat cu": Fixed78,
	"thất ngôn bát cú": Fixed78,
	"thatngonbatcu":    Fixed78,
	"00":               SpellingOnly,
	"spelling":         SpellingOnly,
}

// ParseForm maps a form tag ("68", "78", "00") or a form name to a FormKind.
func ParseForm(s string) (FormKind, error) {
	key := strings.ToLower(strings.Join(strings.Fields(normalizeText(s)), " "))
	if f, ok := formAliases[key]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownForm, s)
}

// Tag returns the two-digit tag of the form.
func (f FormKind) Tag() string {
	switch f {
	case Alternating68:
		return "68"
	case Fixed78:
		return "78"
	case SpellingOnly:
		return "00"
	}
	return ""
}

func (f FormKind) String() string {
	if t := f.Tag(); t != "" {
		return t
	}
	return fmt.Sprintf("FormKind(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f FormKind) MarshalText() ([]byte, error) {
	if f.Tag() == "" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownForm, int(f))
	}
	return []byte(f.Tag()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FormKind) UnmarshalText(b []byte) error {
	v, err := ParseForm(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Status is the outcome of validating one stanza.
type Status int

const (
	StatusOK Status = iota
	// StatusNotAStanza: the input held several blank-line separated blocks.
	StatusNotAStanza
	// StatusEmpty: the stanza had no words.
	StatusEmpty
	// StatusLineCount: a 7×8 stanza without exactly eight lines. The pass
	// still runs over the lines present.
	StatusLineCount
	// StatusFailed: validation broke down internally; the stanza scores 0.
	StatusFailed
)

var statusNames = [...]string{"ok", "not_a_stanza", "empty", "wrong_line_count", "failed"}

func (s Status) String() string {
	if int(s) >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("poetic: unknown status %q", b)
}

// Malformed reports whether the stanza failed a structural check.
func (s Status) Malformed() bool {
	return s != StatusOK
}

// Err converts a structural failure to an error. It returns nil for
// StatusOK and StatusLineCount, whose stanzas are still checked.
func (s Status) Err() error {
	switch s {
	case StatusOK, StatusLineCount:
		return nil
	case StatusNotAStanza:
		return ErrNotAStanza
	case StatusEmpty:
		return ErrEmptyPoem
	}
	return fmt.Errorf("poetic: stanza %s", s)
}

// scorable reports whether a stanza in this status gets a computed score.
func (s Status) scorable() bool {
	return s == StatusOK || s == StatusLineCount
}
