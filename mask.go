package poetic

import (
	"fmt"
	"slices"
	"strings"
)

// Placeholder replaces every masked syllable.
const Placeholder = "[MASKED_WORD]"

// MaskResult holds a poem before and after masking. Stanzas are separated
// by one blank line in both.
type MaskResult struct {
	Normalized string `json:"normalized"`
	Masked     string `json:"masked"`
}

// Masker blanks out defective syllables so a downstream filler can
// rewrite them, and tags every line with its structural slot.
type Masker struct{}

// NewMasker returns a Masker.
func NewMasker() *Masker { return &Masker{} }

// Apply masks poem at the given defects. Defects are applied in
// (stanza, line, position) order whatever order they arrive in; a zero
// Stanza means the first. Defects pointing outside the poem are ignored.
func (m *Masker) Apply(poem string, form FormKind, defects []Defect) MaskResult {
	stanzas := splitStanzas(poem)
	rows := make([][]string, len(stanzas))
	for i, st := range stanzas {
		rows[i] = strings.Split(st, "\n")
	}

	ds := slices.Clone(defects)
	for i := range ds {
		if ds[i].Stanza == 0 {
			ds[i].Stanza = 1
		}
	}
	SortDefects(ds)
	for _, d := range ds {
		s, l := d.Stanza-1, d.Line-1
		if s < 0 || s >= len(rows) || l < 0 || l >= len(rows[s]) {
			continue
		}
		rows[s][l] = m.applyOne(rows[s][l], form, d)
	}

	masked := make([]string, len(rows))
	short, long, abs := 0, 0, 0
	for i, lines := range rows {
		out := make([]string, len(lines))
		for j, line := range lines {
			abs++
			var tag string
			switch form {
			case Alternating68:
				if j%2 == 0 {
					short++
					tag = fmt.Sprintf("(%d_%d)", shortLen, short)
				} else {
					long++
					tag = fmt.Sprintf("(%d_%d)", longLen, long)
				}
			case Fixed78:
				tag = fmt.Sprintf("(%d_%d)", fixedLen, abs)
			default:
				tag = fmt.Sprintf("(%d_%d)", len(strings.Fields(stanzaLine(stanzas[i], j))), abs)
			}
			out[j] = line + " " + tag
		}
		masked[i] = strings.Join(out, "\n")
	}
	return MaskResult{
		Normalized: strings.Join(stanzas, "\n\n"),
		Masked:     strings.Join(masked, "\n\n"),
	}
}

// applyOne masks a single defect on line. The line is re-split each time
// so earlier edits on the same line are seen.
func (m *Masker) applyOne(line string, form FormKind, d Defect) string {
	words := strings.Fields(line)
	p := d.Position
	if d.Kind.isLength() && (p < 1 || p > len(words)+1) {
		return line
	}
	switch d.Kind {
	case MissingSyllable:
		words = append(words, Placeholder)
	case ExtraSyllable:
		keep := min(max(p-2, 0), len(words))
		words = append(words[:keep], Placeholder)
	default:
		if p < 1 || p > len(words) {
			return line
		}
		from := p - 1
		if form == Alternating68 {
			switch {
			case d.Line%2 == 1 && p == anchorShort:
				from = p - 2
			case d.Line%2 == 0 && p == anchorLong:
				from = p - 4
			}
		}
		for k := max(from, 0); k < p; k++ {
			words[k] = Placeholder
		}
	}
	return strings.Join(words, " ")
}

// stanzaLine returns line j of a normalized stanza.
func stanzaLine(stanza string, j int) string {
	lines := strings.Split(stanza, "\n")
	if j < len(lines) {
		return lines[j]
	}
	return ""
}
