package poetic

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// stanzaBreak matches a blank line (possibly holding only spaces).
var stanzaBreak = regexp.MustCompile(`\n\s*\n`)

// normalizeText converts s to NFC and unifies line endings, so that
// decomposed diacritics compare equal to the table characters.
func normalizeText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitStanzas splits a poem on blank lines. Each returned stanza has its
// lines trimmed and runs of spaces collapsed; empty stanzas are dropped.
func splitStanzas(poem string) []string {
	var out []string
	for _, part := range stanzaBreak.Split(normalizeText(poem), -1) {
		lines := splitLines(part)
		if len(lines) == 0 {
			continue
		}
		out = append(out, joinLines(lines))
	}
	return out
}

// splitLines splits a stanza into lines of words. Blank lines are skipped.
func splitLines(stanza string) [][]string {
	var lines [][]string
	for _, line := range strings.Split(normalizeText(stanza), "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		lines = append(lines, words)
	}
	return lines
}

// joinLines is the inverse of splitLines: single spaces, one line per row.
func joinLines(lines [][]string) string {
	rows := make([]string, len(lines))
	for i, words := range lines {
		rows[i] = strings.Join(words, " ")
	}
	return strings.Join(rows, "\n")
}

// isStanza reports whether text holds a single stanza.
func isStanza(text string) bool {
	return !stanzaBreak.MatchString(strings.TrimSpace(normalizeText(text)))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

// stripPunct drops leading punctuation and everything from the first
// non-word character on: "hương..." → "hương", "(trời" → "trời".
func stripPunct(word string) string {
	word = strings.TrimLeftFunc(word, func(r rune) bool { return !isWordRune(r) })
	if i := strings.IndexFunc(word, func(r rune) bool { return !isWordRune(r) }); i >= 0 {
		return word[:i]
	}
	return word
}

// cleanWord is the lookup form of a token: NFC, lower case, no punctuation.
func cleanWord(word string) string {
	return stripPunct(strings.ToLower(norm.NFC.String(word)))
}

// wordAt returns the 1-based position p of words, or "" when absent.
func wordAt(words []string, p int) string {
	if p < 1 || p > len(words) {
		return ""
	}
	return words[p-1]
}
