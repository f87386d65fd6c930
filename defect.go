package poetic

import (
	"cmp"
	"fmt"
	"slices"
)

// DefectKind classifies a located violation.
type DefectKind int

const (
	MissingSyllable DefectKind = iota + 1
	ExtraSyllable
	WrongTone
	WrongRhyme
	MisspelledWord
)

var defectKindNames = map[DefectKind]string{
	MissingSyllable: "missing_syllable",
	ExtraSyllable:   "extra_syllable",
	WrongTone:       "wrong_tone",
	WrongRhyme:      "wrong_rhyme",
	MisspelledWord:  "misspelled_word",
}

func (k DefectKind) String() string {
	if s, ok := defectKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DefectKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k DefectKind) MarshalText() ([]byte, error) {
	if _, ok := defectKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown defect kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DefectKind) UnmarshalText(b []byte) error {
	for kind, name := range defectKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown defect kind %q", string(b))
}

// isLength reports whether k is a syllable-count defect.
func (k DefectKind) isLength() bool {
	return k == MissingSyllable || k == ExtraSyllable
}

// Defect is a single located violation. Stanza, Line and Position are
// 1-based; Line and Position are relative to the stanza.
type Defect struct {
	Stanza   int        `json:"stanza"`
	Line     int        `json:"line"`
	Position int        `json:"position"`
	Kind     DefectKind `json:"kind"`
	// Word is the offending token as written; empty for length defects.
	Word string `json:"word,omitempty"`
}

func (d Defect) String() string {
	return fmt.Sprintf("%d:%d:%d %s %q", d.Stanza, d.Line, d.Position, d.Kind, d.Word)
}

func compareDefects(a, b Defect) int {
	return cmp.Or(
		cmp.Compare(a.Stanza, b.Stanza),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Position, b.Position),
		cmp.Compare(a.Kind, b.Kind),
	)
}

// SortDefects orders defects by (stanza, line, position, kind), the order
// in which the masker must apply them.
func SortDefects(ds []Defect) {
	slices.SortStableFunc(ds, compareDefects)
}

// Counts tallies defects by scoring category.
type Counts struct {
	Length   int `json:"length"`
	Rhyme    int `json:"rhyme"`
	Tone     int `json:"tone"`
	Spelling int `json:"spelling"`
}

// CountDefects tallies ds by category.
func CountDefects(ds []Defect) Counts {
	var c Counts
	for _, d := range ds {
		switch {
		case d.Kind.isLength():
			c.Length++
		case d.Kind == WrongRhyme:
			c.Rhyme++
		case d.Kind == WrongTone:
			c.Tone++
		case d.Kind == MisspelledWord:
			c.Spelling++
		}
	}
	return c
}
