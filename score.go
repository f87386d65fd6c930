package poetic

import (
	"errors"
	"math"
)

// ErrEmptyPoem is returned when a poem holds no stanza to score.
var ErrEmptyPoem = errors.New("poetic: empty poem")

// Score weights: rhyme accounts for 70 points, tone for the other 30.
const (
	maxScore    = 100.0
	rhymeWeight = 70.0
	toneWeight  = 30.0
)

// DefaultPassThreshold is the poem score at or above which a poem passes.
const DefaultPassThreshold = 95.0

// checkPoints returns the rhyme and tone check-point totals the defect
// counts are scaled against, for a stanza of n lines. Degenerate totals
// (a one-line 7×8 stanza, say) are raised to 1.
func checkPoints(form FormKind, n int) (rhyme, tone int) {
	odd := (n + 1) / 2
	even := n / 2
	switch form {
	case Alternating68:
		rhyme = odd + 2*even - 1
		tone = 3*odd + 4*even
	case Fixed78:
		rhyme = odd + even - 3
		tone = 3*odd + 3*even
	}
	return max(rhyme, 1), max(tone, 1)
}

// StanzaScore computes the 0–100 score of one validated stanza. Length
// defects are counted but do not lower the score. Malformed stanzas score 0.
func StanzaScore(form FormKind, res StanzaResult) float64 {
	if !res.Status.scorable() {
		return 0
	}
	c := CountDefects(res.Defects)
	var s float64
	switch form {
	case SpellingOnly:
		if res.Words == 0 {
			return 0
		}
		s = maxScore - maxScore*float64(c.Spelling)/float64(res.Words)
	case Alternating68, Fixed78:
		r, t := checkPoints(form, res.Lines)
		s = maxScore - rhymeWeight*float64(c.Rhyme)/float64(r) - toneWeight*float64(c.Tone)/float64(t)
	default:
		return 0
	}
	return clampScore(s)
}

func clampScore(s float64) float64 {
	return math.Min(maxScore, math.Max(0, s))
}

// meanScore is the unweighted mean of stanza scores.
func meanScore(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrEmptyPoem
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), nil
}
