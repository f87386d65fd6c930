package poetic

import "strings"

// Annotation markers appended to words (or prefixed to lines).
const (
	markEven       = "(B)"
	markUneven     = "(T)"
	markWrongTone  = "(E_T)"
	markWrongRhyme = "(E_V)"
	markMisspelled = "(E_S)"
	markLength     = "(L)"
)

// annotateStanza returns the stanza with every checked position marked:
// (B)/(T) for a correct tone, (E_T) for a wrong one, (E_V) for a broken
// rhyme and (E_S) for an unknown word. Lines of the wrong length are
// prefixed with (L). defects must belong to this stanza.
func (v *Validator) annotateStanza(stanza string, form FormKind, defects []Defect) string {
	lines := splitLines(stanza)
	marks := make(map[[2]int][]string)
	add := func(line, pos int, m string) {
		k := [2]int{line, pos}
		marks[k] = append(marks[k], m)
	}

	if form != SpellingOnly {
		for i, p := range v.tonePatterns(form, lines) {
			for _, slot := range p {
				w := wordAt(lines[i], slot.Position)
				if w == "" {
					continue
				}
				switch got := v.a.ClassifyTone(w); {
				case got != slot.Tone:
					add(i+1, slot.Position, markWrongTone)
				case got == Even:
					add(i+1, slot.Position, markEven)
				default:
					add(i+1, slot.Position, markUneven)
				}
			}
		}
	}

	badLength := make(map[int]bool)
	for _, d := range defects {
		switch {
		case d.Kind.isLength():
			badLength[d.Line] = true
		case d.Kind == WrongRhyme:
			add(d.Line, d.Position, markWrongRhyme)
		case d.Kind == MisspelledWord:
			add(d.Line, d.Position, markMisspelled)
		}
	}

	rows := make([]string, len(lines))
	for i, words := range lines {
		out := make([]string, len(words))
		for j, w := range words {
			out[j] = w + strings.Join(marks[[2]int{i + 1, j + 1}], "")
		}
		row := strings.Join(out, " ")
		if badLength[i+1] {
			row = markLength + row
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
