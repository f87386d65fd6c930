package poetic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestSpellChecker(t *testing.T) *SpellChecker {
	t.Helper()
	tb, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables: %v", err)
	}
	return NewSpellChecker(tb)
}

func TestKnown(t *testing.T) {
	s := newTestSpellChecker(t)

	known := []string{"trời", "Trời,", "NGƯỜI", "(thân)", "cao.", "...", "—"}
	for _, w := range known {
		if !s.Known(w) {
			t.Errorf("Known(%q) = false, want true", w)
		}
	}
	unknown := []string{"nhớo", "xyzzy", "trờii", "ǂa"}
	for _, w := range unknown {
		if s.Known(w) {
			t.Errorf("Known(%q) = true, want false", w)
		}
	}
}

func TestCheck(t *testing.T) {
	s := newTestSpellChecker(t)
	got := s.Check("Bắt phong trần\nphải nhớo trần, xyzzy!")
	want := []Defect{
		{Line: 2, Position: 2, Kind: MisspelledWord, Word: "nhớo"},
		{Line: 2, Position: 4, Kind: MisspelledWord, Word: "xyzzy!"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Check mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggest(t *testing.T) {
	s := newTestSpellChecker(t)

	got := s.Suggest("nhớo", 1)
	if diff := cmp.Diff([]string{"nhớ"}, got); diff != "" {
		t.Errorf("Suggest(nhớo, 1) mismatch (-want +got):\n%s", diff)
	}
	t.Logf("Suggest(nhớo, 5) = %v", s.Suggest("nhớo", 5))

	if got := s.Suggest("nhớo", 0); got != nil {
		t.Errorf("Suggest(n=0) = %v, want nil", got)
	}
	if got := s.Suggest("...", 3); got != nil {
		t.Errorf("Suggest(punctuation) = %v, want nil", got)
	}
	if got := s.Suggest("ǂa", 3); len(got) != 0 {
		t.Errorf("Suggest(no bucket) = %v, want empty", got)
	}
}
