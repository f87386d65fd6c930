package poetic

// Validator checks syllable counts, positional tones and rhyme chains of a
// single stanza. Every call builds a fresh defect list; the Validator
// itself holds only read-only tables.
type Validator struct {
	t *Tables
	a *Analyzer
	r *RhymeMatcher
}

// NewValidator returns a Validator over t.
func NewValidator(t *Tables, a *Analyzer, r *RhymeMatcher) *Validator {
	return &Validator{t: t, a: a, r: r}
}

// StanzaResult is the outcome of one validation pass.
type StanzaResult struct {
	Status  Status   `json:"status"`
	Lines   int      `json:"lines"`
	Words   int      `json:"words"`
	Defects []Defect `json:"defects"`
}

// Validate checks a single stanza against form. Multi-stanza input is
// reported as StatusNotAStanza and not checked; the caller splits poems.
func (v *Validator) Validate(stanza string, form FormKind) StanzaResult {
	if !isStanza(stanza) {
		return StanzaResult{Status: StatusNotAStanza}
	}
	lines := splitLines(stanza)
	res := StanzaResult{Lines: len(lines), Words: countWords(lines)}
	if len(lines) == 0 {
		res.Status = StatusEmpty
		return res
	}
	switch form {
	case Alternating68:
		res.Defects = v.alternating(lines)
	case Fixed78:
		if len(lines) != fixedLines {
			res.Status = StatusLineCount
		}
		res.Defects = v.fixed(lines)
	}
	SortDefects(res.Defects)
	return res
}

func countWords(lines [][]string) int {
	n := 0
	for _, l := range lines {
		n += len(l)
	}
	return n
}

// expectedLen returns the syllable count required of 0-based line i.
func expectedLen(form FormKind, i int) int {
	switch form {
	case Alternating68:
		if i%2 == 0 {
			return shortLen
		}
		return longLen
	case Fixed78:
		return fixedLen
	}
	return 0
}

// lengthDefect returns the Missing/Extra defect for a line of n words that
// should have want, placed at want or want+1.
func lengthDefect(line, n, want int) (Defect, bool) {
	switch {
	case n < want:
		return Defect{Line: line, Position: want, Kind: MissingSyllable}, true
	case n > want:
		return Defect{Line: line, Position: want + 1, Kind: ExtraSyllable}, true
	}
	return Defect{}, false
}

// tonePatterns returns the positional requirements of every line, or nil
// for lines whose length is wrong: those are reported as length defects
// and their tones are left unchecked.
func (v *Validator) tonePatterns(form FormKind, lines [][]string) []tonePattern {
	out := make([]tonePattern, len(lines))
	var primary, secondary tonePattern
	if form == Fixed78 {
		// Line 1's second syllable picks which of the two triples line 1
		// follows; later lines invert, repeat, invert, repeat...
		primary, secondary = v.t.pattern(pattern78Alt), v.t.pattern(pattern78)
		if w := wordAt(lines[0], 2); w != "" && v.a.ClassifyTone(w) == Uneven {
			primary, secondary = secondary, primary
		}
	}
	for i, words := range lines {
		want := expectedLen(form, i)
		if len(words) != want {
			continue
		}
		switch form {
		case Alternating68:
			out[i] = v.t.pattern(patternKey(want))
		case Fixed78:
			if ((i+1)/2)%2 == 0 {
				out[i] = primary
			} else {
				out[i] = secondary
			}
		}
	}
	return out
}

// checkLengths emits one length defect per line of the wrong size.
func (v *Validator) checkLengths(form FormKind, lines [][]string) []Defect {
	var ds []Defect
	for i, words := range lines {
		if d, ok := lengthDefect(i+1, len(words), expectedLen(form, i)); ok {
			ds = append(ds, d)
		}
	}
	return ds
}

// checkTones emits a WrongTone defect for every mismatched position.
func (v *Validator) checkTones(form FormKind, lines [][]string) []Defect {
	var ds []Defect
	for i, p := range v.tonePatterns(form, lines) {
		for _, slot := range p {
			w := wordAt(lines[i], slot.Position)
			if w == "" {
				continue
			}
			if v.a.ClassifyTone(w) != slot.Tone {
				ds = append(ds, Defect{Line: i + 1, Position: slot.Position, Kind: WrongTone, Word: w})
			}
		}
	}
	return ds
}

// alternating validates a lục bát stanza: odd lines short, even lines long.
func (v *Validator) alternating(lines [][]string) []Defect {
	ds := v.checkLengths(Alternating68, lines)
	ds = append(ds, v.checkTones(Alternating68, lines)...)
	return append(ds, v.alternatingRhymes(lines)...)
}

// alternatingRhymes walks the line pairs. The 6th syllable of a short line
// must rhyme with the 8th syllable of the previous long line (the seed)
// and with the 6th syllable of its own long line. A failure is charged to
// the later syllable of the pair compared.
func (v *Validator) alternatingRhymes(lines [][]string) []Defect {
	var ds []Defect
	seed := ""
	for i := 0; i < len(lines); i += 2 {
		s6 := wordAt(lines[i], anchorShort)
		if seed != "" && s6 != "" && !v.r.Rhymes(seed, s6) {
			ds = append(ds, Defect{Line: i + 1, Position: anchorShort, Kind: WrongRhyme, Word: s6})
		}
		if i+1 >= len(lines) {
			break
		}
		long := lines[i+1]
		if l6 := wordAt(long, anchorShort); s6 != "" && l6 != "" && !v.r.Rhymes(s6, l6) {
			ds = append(ds, Defect{Line: i + 2, Position: anchorShort, Kind: WrongRhyme, Word: l6})
		}
		seed = wordAt(long, anchorLong)
	}
	return ds
}

// fixed validates a thất ngôn bát cú stanza.
func (v *Validator) fixed(lines [][]string) []Defect {
	ds := v.checkLengths(Fixed78, lines)
	ds = append(ds, v.checkTones(Fixed78, lines)...)
	return append(ds, v.fixedRhymes(lines)...)
}

// fixedRhymes checks the 7th syllable of lines 1, 2, 4, 6 and 8 against
// the dominant rhyme class among them.
func (v *Validator) fixedRhymes(lines [][]string) []Defect {
	type candidate struct {
		line   int
		word   string
		kernel string
	}
	var cands []candidate
	for _, n := range fixedRhymeLines {
		if n > len(lines) {
			break
		}
		w := wordAt(lines[n-1], fixedRhyme)
		if w == "" {
			continue
		}
		cands = append(cands, candidate{line: n, word: w, kernel: v.a.SplitKernel(w)})
	}
	kernels := make([]string, len(cands))
	for i, c := range cands {
		kernels[i] = c.kernel
	}
	head := v.r.dominantKernel(kernels)

	var ds []Defect
	for _, c := range cands {
		if !v.r.inGroup(head, c.kernel) {
			ds = append(ds, Defect{Line: c.line, Position: fixedRhyme, Kind: WrongRhyme, Word: c.word})
		}
	}
	return ds
}
