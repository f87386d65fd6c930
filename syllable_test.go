package poetic

import "testing"

func TestSplitKernel(t *testing.T) {
	tb, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables: %v", err)
	}
	a := NewAnalyzer(tb)

	tests := []struct {
		word   string
		onset  string
		kernel string
	}{
		{"trời", "tr", "ời"},
		{"Người,", "ng", "ười"},
		{"giường", "gi", "ường"},
		{"gì", "g", "ì"},
		{"quốc", "qu", "ốc"},
		{"qua", "qu", "a"},
		{"khuya", "kh", "uya"},
		{"hương...", "h", "ương"},
		{"(Trời!", "tr", "ời"},
		{"oanh", "", "oanh"},
		{"uống", "", "uống"},
		{"b", "", "b"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := a.SplitKernel(tt.word); got != tt.kernel {
			t.Errorf("SplitKernel(%q) = %q, want %q", tt.word, got, tt.kernel)
		}
		s := a.Syllable(tt.word, 2, 3)
		if s.Onset != tt.onset || s.Kernel != tt.kernel || s.Line != 2 || s.Position != 3 {
			t.Errorf("Syllable(%q) = %+v, want onset %q kernel %q", tt.word, s, tt.onset, tt.kernel)
		}
	}
}

func TestSplitKernelDecomposed(t *testing.T) {
	tb, _ := DefaultTables()
	a := NewAnalyzer(tb)
	// "người" with the horn and grave as combining marks
	if got := a.SplitKernel("ngu\u031bo\u031b\u0300i"); got != "ười" {
		t.Errorf("SplitKernel(decomposed) = %q, want %q", got, "ười")
	}
}

func TestClassifyTone(t *testing.T) {
	tb, _ := DefaultTables()
	a := NewAnalyzer(tb)

	even := []string{"trời", "hay", "muôn", "người", "giường", "qua", "khuya", "nhưng", "yêu", "ngoằn", "à", "a", "Đôi"}
	uneven := []string{"sự", "bắt", "quốc", "thuở", "chuyện", "uống", "nợ", "tủi", "ngẫm", "á", "ổi", "ạ"}

	for _, w := range even {
		if got := a.ClassifyTone(w); got != Even {
			t.Errorf("ClassifyTone(%q) = %v, want even", w, got)
		}
	}
	for _, w := range uneven {
		if got := a.ClassifyTone(w); got != Uneven {
			t.Errorf("ClassifyTone(%q) = %v, want uneven", w, got)
		}
	}
}

func TestClassifyToneDegenerate(t *testing.T) {
	tb, _ := DefaultTables()
	a := NewAnalyzer(tb)
	for _, w := range []string{"", "b", "...", "x"} {
		if got := a.ClassifyTone(w); got != Uneven {
			t.Errorf("ClassifyTone(%q) = %v, want uneven", w, got)
		}
	}
}

func TestSyllables(t *testing.T) {
	tb, _ := DefaultTables()
	a := NewAnalyzer(tb)

	rows := a.Syllables("Bắt phong trần\n\n  phải phong trần ")
	if len(rows) != 2 || len(rows[0]) != 3 || len(rows[1]) != 3 {
		t.Fatalf("Syllables shape = %v", rows)
	}
	last := rows[1][2]
	if last.Text != "trần" || last.Kernel != "ần" || last.Tone != Even || last.Line != 2 || last.Position != 3 {
		t.Errorf("last syllable = %+v", last)
	}
}

func TestParseTone(t *testing.T) {
	tests := map[string]Tone{
		"even": Even, "B": Even, "bằng": Even, " bang ": Even,
		"uneven": Uneven, "T": Uneven, "trắc": Uneven, "trac": Uneven,
	}
	for in, want := range tests {
		got, err := ParseTone(in)
		if err != nil || got != want {
			t.Errorf("ParseTone(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTone("flat"); err == nil {
		t.Error("ParseTone(flat): expected error")
	}

	var tone Tone
	if err := tone.UnmarshalText([]byte("uneven")); err != nil || tone != Uneven {
		t.Errorf("UnmarshalText(uneven) = %v, %v", tone, err)
	}
	if b, _ := Even.MarshalText(); string(b) != "even" {
		t.Errorf("MarshalText(Even) = %q", b)
	}
}
