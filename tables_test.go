package poetic

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

// embeddedFS copies the embedded tables into a MapFS the test can corrupt.
func embeddedFS(t *testing.T) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	for _, name := range []string{VowelsFile, RhymesFile, TonePositionsFile, AmbiguityFile, DictionaryFile} {
		data, err := fs.ReadFile(defaultData, "data/"+name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		out[name] = &fstest.MapFile{Data: data}
	}
	return out
}

func TestDefaultTables(t *testing.T) {
	tb, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables: %v", err)
	}

	stats := tb.Stats()
	t.Logf("stats: %v", stats)
	if stats["vowels"] != 72 {
		t.Errorf("vowels = %d, want 72", stats["vowels"])
	}
	if stats["patterns"] != 4 {
		t.Errorf("patterns = %d, want 4", stats["patterns"])
	}
	if stats["rhymes"] <= 500 || stats["words"] <= 500 {
		t.Errorf("tables look truncated: %v", stats)
	}

	if !tb.IsVowel('ơ') || tb.IsVowel('đ') {
		t.Error("IsVowel misclassifies ơ or đ")
	}
	if !tb.IsEven('à') || tb.IsEven('ạ') {
		t.Error("IsEven misclassifies à or ạ")
	}
}

func TestLoadTablesDir(t *testing.T) {
	if _, err := LoadTablesDir("data"); err != nil {
		t.Fatalf("LoadTablesDir(data): %v", err)
	}
	if _, err := LoadTablesDir("no/such/dir"); !errors.Is(err, ErrTableLoad) {
		t.Errorf("LoadTablesDir(missing) error = %v, want ErrTableLoad", err)
	}
}

func TestLoadTablesErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fstest.MapFS)
	}{
		{"missing rhymes", func(m fstest.MapFS) { delete(m, RhymesFile) }},
		{"missing dictionary", func(m fstest.MapFS) { delete(m, DictionaryFile) }},
		{"corrupt vowels", func(m fstest.MapFS) { m[VowelsFile] = &fstest.MapFile{Data: []byte("{")} }},
		{"vowel key missing", func(m fstest.MapFS) {
			m[VowelsFile] = &fstest.MapFile{Data: []byte(`{"sac": ["á"]}`)}
		}},
		{"multi-character vowel", func(m fstest.MapFS) {
			m[AmbiguityFile] = &fstest.MapFile{Data: []byte(`["ab"]`)}
		}},
		{"pattern missing", func(m fstest.MapFS) {
			m[TonePositionsFile] = &fstest.MapFile{Data: []byte("\"6\":\n  1: even\n")}
		}},
		{"bad tone name", func(m fstest.MapFS) {
			m[TonePositionsFile] = &fstest.MapFile{Data: []byte(
				"\"6\": {1: flat}\n\"8\": {1: even}\n\"7\": {1: even}\n\"71\": {1: even}\n")}
		}},
		{"bad dictionary line", func(m fstest.MapFS) {
			m[DictionaryFile] = &fstest.MapFile{Data: []byte("{\"text\": \"a\"}\nnot json\n")}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := embeddedFS(t)
			tt.mutate(fsys)
			_, err := LoadTables(fsys)
			if !errors.Is(err, ErrTableLoad) {
				t.Errorf("LoadTables error = %v, want ErrTableLoad", err)
			}
		})
	}
}

func TestLoadTablesJSONTonePositions(t *testing.T) {
	fsys := embeddedFS(t)
	delete(fsys, TonePositionsFile)
	fsys["tone_positions.json"] = &fstest.MapFile{Data: []byte(
		`{"6": {"1": "even"}, "8": {"1": "even"}, "7": {"1": "uneven"}, "71": {"1": "even"}}`)}

	// the loader looks for the yaml file by name
	if _, err := LoadTables(fsys); !errors.Is(err, ErrTableLoad) {
		t.Errorf("LoadTables error = %v, want ErrTableLoad", err)
	}

	var raw map[string]map[int]string
	if err := decodeTable(fsys, "tone_positions.json", &raw); err != nil {
		t.Fatalf("decodeTable: %v", err)
	}
	if raw["7"][1] != "uneven" {
		t.Errorf("pattern 7 position 1 = %q, want uneven", raw["7"][1])
	}
}

func TestLoadTablesNormalizesKeys(t *testing.T) {
	fsys := embeddedFS(t)
	// "ời" written decomposed: o + combining horn + combining grave, then i
	fsys[RhymesFile] = &fstest.MapFile{Data: []byte("{\"o\u031b\u0300i\": [\"o\u031b\u0300i\", \"ười\", \"ười\"]}")}
	fsys[DictionaryFile] = &fstest.MapFile{Data: []byte("{\"text\": \" Tro\u031b\u0300i \"}\n\n")}

	tb, err := LoadTables(fsys)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if diff := cmp.Diff([]string{"ời", "ười"}, tb.RhymeSet("ời")); diff != "" {
		t.Errorf("RhymeSet mismatch (-want +got):\n%s", diff)
	}
	if !tb.bucket('t')["trời"] {
		t.Error("dictionary entry not normalized")
	}
	if tb.RhymeSet("xyz") != nil {
		t.Error("unknown kernel has a rhyme set")
	}
}

func TestRhymeSetIsCopy(t *testing.T) {
	tb, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables: %v", err)
	}
	set := tb.RhymeSet("ời")
	if len(set) == 0 {
		t.Fatal("empty rhyme set for ời")
	}
	set[0] = "changed"
	if tb.RhymeSet("ời")[0] == "changed" {
		t.Error("RhymeSet exposes the table")
	}
}
