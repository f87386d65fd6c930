package poetic

// RhymeMatcher decides whether two syllables rhyme using the kernel table.
type RhymeMatcher struct {
	t *Tables
	a *Analyzer
}

// NewRhymeMatcher returns a RhymeMatcher reading from t.
func NewRhymeMatcher(t *Tables, a *Analyzer) *RhymeMatcher {
	return &RhymeMatcher{t: t, a: a}
}

// Rhymes reports whether b's kernel is listed among the rhymes of a's
// kernel. The table is not assumed symmetric, so argument order matters:
// a is the earlier syllable. A kernel missing from the table never rhymes.
func (m *RhymeMatcher) Rhymes(a, b string) bool {
	return m.t.kernelRhymes(m.a.SplitKernel(a), m.a.SplitKernel(b))
}

// Symmetric reports whether a and b rhyme in both directions.
func (m *RhymeMatcher) Symmetric(a, b string) bool {
	return m.Rhymes(a, b) && m.Rhymes(b, a)
}

// rhymeGroup counts the candidates sharing one rhyme class.
type rhymeGroup struct {
	kernel string
	count  int
}

// dominantKernel groups kernels by rhyme class in order of appearance and
// returns the kernel heading the largest group. A kernel joins the first
// earlier group whose head lists it as a rhyme; kernels found in no group
// start their own. Ties go to the group formed first.
func (m *RhymeMatcher) dominantKernel(kernels []string) string {
	var groups []*rhymeGroup
	for _, k := range kernels {
		var g *rhymeGroup
		for _, cand := range groups {
			if cand.kernel == k || m.t.kernelRhymes(cand.kernel, k) {
				g = cand
				break
			}
		}
		if g == nil {
			g = &rhymeGroup{kernel: k}
			groups = append(groups, g)
		}
		g.count++
	}
	if len(groups) == 0 {
		return ""
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.count > best.count {
			best = g
		}
	}
	return best.kernel
}

// inGroup reports whether kernel belongs to the rhyme class headed by head.
func (m *RhymeMatcher) inGroup(head, kernel string) bool {
	return head == kernel || m.t.kernelRhymes(head, kernel)
}
