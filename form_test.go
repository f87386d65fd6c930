package poetic

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseForm(t *testing.T) {
	tests := map[string]FormKind{
		"68":               Alternating68,
		"lục bát":          Alternating68,
		"  Luc   Bat ":     Alternating68,
		"78":               Fixed78,
		"Thất ngôn bát cú": Fixed78,
		"00":               SpellingOnly,
		"spelling":         SpellingOnly,
	}
	for in, want := range tests {
		got, err := ParseForm(in)
		if err != nil || got != want {
			t.Errorf("ParseForm(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseForm("99"); !errors.Is(err, ErrUnknownForm) {
		t.Errorf("ParseForm(99) err = %v, want ErrUnknownForm", err)
	}
}

func TestFormJSON(t *testing.T) {
	var v struct {
		Form FormKind `json:"form"`
	}
	if err := json.Unmarshal([]byte(`{"form":"lục bát"}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Form != Alternating68 {
		t.Errorf("form = %v, want 68", v.Form)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"form":"68"}` {
		t.Errorf("Marshal = %s", b)
	}
	if _, err := json.Marshal(FormKind(9)); err == nil {
		t.Error("Marshal(FormKind(9)): expected error")
	}
}

func TestDefectJSON(t *testing.T) {
	d := Defect{Stanza: 1, Line: 2, Position: 6, Kind: WrongRhyme, Word: "con"}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"stanza":1,"line":2,"position":6,"kind":"wrong_rhyme","word":"con"}`
	if string(b) != want {
		t.Errorf("Marshal = %s, want %s", b, want)
	}

	var back Defect
	if err := json.Unmarshal([]byte(`{"line":3,"position":7,"kind":"extra_syllable"}`), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Kind != ExtraSyllable || back.Word != "" {
		t.Errorf("Unmarshal = %+v", back)
	}
	if err := json.Unmarshal([]byte(`{"kind":"typo"}`), &back); err == nil {
		t.Error("unknown kind: expected error")
	}
}

func TestSortDefects(t *testing.T) {
	ds := []Defect{
		{Stanza: 2, Line: 1, Position: 1, Kind: WrongTone},
		{Stanza: 1, Line: 3, Position: 7, Kind: ExtraSyllable},
		{Stanza: 1, Line: 3, Position: 6, Kind: WrongRhyme},
		{Stanza: 1, Line: 3, Position: 6, Kind: WrongTone},
		{Stanza: 1, Line: 1, Position: 4, Kind: WrongTone},
	}
	SortDefects(ds)
	want := []string{
		"1:1:4 wrong_tone \"\"",
		"1:3:6 wrong_tone \"\"",
		"1:3:6 wrong_rhyme \"\"",
		"1:3:7 extra_syllable \"\"",
		"2:1:1 wrong_tone \"\"",
	}
	for i, d := range ds {
		if d.String() != want[i] {
			t.Errorf("ds[%d] = %s, want %s", i, d, want[i])
		}
	}
}

func TestCountDefects(t *testing.T) {
	c := CountDefects([]Defect{
		{Kind: MissingSyllable}, {Kind: ExtraSyllable}, {Kind: WrongRhyme},
		{Kind: WrongTone}, {Kind: WrongTone}, {Kind: MisspelledWord},
	})
	if c != (Counts{Length: 2, Rhyme: 1, Tone: 2, Spelling: 1}) {
		t.Errorf("CountDefects = %+v", c)
	}
}

func TestStatus(t *testing.T) {
	if StatusOK.Malformed() || !StatusLineCount.Malformed() {
		t.Error("Malformed misreports")
	}
	if b, _ := StatusLineCount.MarshalText(); string(b) != "wrong_line_count" {
		t.Errorf("MarshalText = %s", b)
	}
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{StatusOK, StatusNotAStanza, StatusEmpty, StatusLineCount, StatusFailed} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", s, err)
		}
		var got Status
		if err := got.UnmarshalText(b); err != nil || got != s {
			t.Errorf("UnmarshalText(%s) = %v, %v", b, got, err)
		}
	}
	var s Status
	if err := s.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText(nope) should fail")
	}
}

func TestStatusErr(t *testing.T) {
	if StatusOK.Err() != nil || StatusLineCount.Err() != nil {
		t.Error("checked stanzas should carry no error")
	}
	if !errors.Is(StatusNotAStanza.Err(), ErrNotAStanza) {
		t.Errorf("NotAStanza.Err() = %v", StatusNotAStanza.Err())
	}
	if !errors.Is(StatusEmpty.Err(), ErrEmptyPoem) {
		t.Errorf("Empty.Err() = %v", StatusEmpty.Err())
	}
	if StatusFailed.Err() == nil {
		t.Error("Failed.Err() = nil")
	}
}
