package hangul

import "strings"

const (
	syllableFirst = 0xAC00 // 가
	syllableLast  = 0xD7A3 // 힣
	finalCount    = 28
	medialCount   = 21
)

// Syllable is a precomposed block split into its jamo indices. Final is 0
// when the syllable has no final consonant.
type Syllable struct {
	Initial int
	Medial  int
	Final   int
}

// Decompose splits a precomposed syllable block.
func Decompose(r rune) (Syllable, bool) {
	if r < syllableFirst || r > syllableLast {
		return Syllable{}, false
	}
	code := int(r - syllableFirst)
	return Syllable{
		Initial: code / (finalCount * medialCount),
		Medial:  (code / finalCount) % medialCount,
		Final:   code % finalCount,
	}, true
}

// IsWellFormed reports whether text consists only of composed syllable
// blocks and spaces.
func IsWellFormed(text string) bool {
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if _, ok := Decompose(r); !ok {
			return false
		}
	}
	return true
}

// Revised Romanization, indexed like the Unicode syllable arithmetic.
var (
	romanInitials = [...]string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp",
		"s", "ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	romanMedials = [...]string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o",
		"wa", "wae", "oe", "yo", "u", "wo", "we", "wi", "yu",
		"eu", "ui", "i",
	}
	romanFinals = [...]string{
		"", "k", "k", "k", "n", "n", "n", "t", "l", "k",
		"m", "l", "l", "l", "p", "l", "m", "p", "p",
		"t", "t", "ng", "t", "t", "k", "t", "p", "t",
	}
)

// Romanize spells composed Hangul in Latin letters so the result can be read
// back. Finals use their unreleased sound (ㅅ -> t, ㅋ -> k). Anything that is
// not a syllable block passes through unchanged.
func Romanize(text string) string {
	var b strings.Builder
	for _, r := range text {
		s, ok := Decompose(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteString(romanInitials[s.Initial])
		b.WriteString(romanMedials[s.Medial])
		b.WriteString(romanFinals[s.Final])
	}
	return b.String()
}
