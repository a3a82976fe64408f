package ipa

import (
	"unicode"

	"github.com/jusunglee/phonetics-to-hangul/internal/hangul"
)

// kind selects the rule that turns a symbol into assembler calls.
type kind int

const (
	unknown kind = iota
	consonant
	stop
	liquid
	sibilant
	postalveolar
	velarNasal
	affricateTS
	vowel
	palatalGlide
	labialGlide
	ignorable
	boundary
	numKinds
)

// quality groups vowels by how a preceding glide fuses with them.
type quality int

const (
	noQuality quality = iota
	highFront         // i ɪ j y
	midFront          // e
	openFront         // ɛ æ
	open              // a ɐ
	back              // ʌ ɔ ɒ ɑ
	midBack           // o
	highBack          // ʊ u
)

type phoneme struct {
	kind kind

	consonant hangul.Consonant
	vowel     hangul.Vowel
	quality   quality

	// Voiceless stops are tense at the start of a word.
	tense    hangul.Consonant
	hasTense bool

	// A stop followed by fricative is written as the single affricate.
	fricative rune
	affricate hangul.Consonant
}

const boundaryMark = '|'

var phonemes = map[rune]phoneme{
	'n': {kind: consonant, consonant: hangul.N},
	'm': {kind: consonant, consonant: hangul.M},
	'h': {kind: consonant, consonant: hangul.H},
	'l': {kind: consonant, consonant: hangul.L},
	'f': {kind: consonant, consonant: hangul.P},
	'ð': {kind: consonant, consonant: hangul.D},
	'θ': {kind: consonant, consonant: hangul.D},
	'ʧ': {kind: consonant, consonant: hangul.Ch},
	'ʤ': {kind: consonant, consonant: hangul.J},

	'p': {kind: stop, consonant: hangul.P, tense: hangul.Bb, hasTense: true},
	't': {kind: stop, consonant: hangul.T, tense: hangul.Dd, hasTense: true, fricative: 'ʃ', affricate: hangul.Ch},
	'k': {kind: stop, consonant: hangul.K, tense: hangul.Gg, hasTense: true},
	'b': {kind: stop, consonant: hangul.B},
	'g': {kind: stop, consonant: hangul.G},
	'ɡ': {kind: stop, consonant: hangul.G},
	'd': {kind: stop, consonant: hangul.D, fricative: 'ʒ', affricate: hangul.J},

	'r': {kind: liquid, consonant: hangul.L},
	'ɹ': {kind: liquid, consonant: hangul.L},

	's': {kind: sibilant, consonant: hangul.S},
	'z': {kind: sibilant, consonant: hangul.S},
	'ʃ': {kind: postalveolar, consonant: hangul.S},
	'ʒ': {kind: postalveolar, consonant: hangul.S},

	'ŋ': {kind: velarNasal, consonant: hangul.Ng},
	'ʦ': {kind: affricateTS},

	'ʌ': {kind: vowel, vowel: hangul.Eo, quality: back},
	'ɔ': {kind: vowel, vowel: hangul.Eo, quality: back},
	'ɒ': {kind: vowel, vowel: hangul.Eo, quality: back},
	'ɑ': {kind: vowel, vowel: hangul.Eo, quality: back},
	'ə': {kind: vowel, vowel: hangul.Eu},
	'ɜ': {kind: vowel, vowel: hangul.Eu},
	'ɝ': {kind: vowel, vowel: hangul.Eu},
	'a': {kind: vowel, vowel: hangul.A, quality: open},
	'ɐ': {kind: vowel, vowel: hangul.A, quality: open},
	'ʊ': {kind: vowel, vowel: hangul.U, quality: highBack},
	'u': {kind: vowel, vowel: hangul.U, quality: highBack},
	'o': {kind: vowel, vowel: hangul.O, quality: midBack},
	'e': {kind: vowel, vowel: hangul.E, quality: midFront},
	'ɛ': {kind: vowel, vowel: hangul.Ae, quality: openFront},
	'æ': {kind: vowel, vowel: hangul.Ae, quality: openFront},

	'j': {kind: palatalGlide, vowel: hangul.I, quality: highFront},
	'ɪ': {kind: palatalGlide, vowel: hangul.I, quality: highFront},
	'y': {kind: palatalGlide, vowel: hangul.I, quality: highFront},
	'i': {kind: palatalGlide, vowel: hangul.I, quality: highFront},

	// Before a vowel that does not fuse these read as ㅜ, at the end as ㅂ.
	'w': {kind: labialGlide, vowel: hangul.U, consonant: hangul.B},
	'v': {kind: labialGlide, vowel: hangul.U, consonant: hangul.B},

	'ˈ':  {kind: ignorable},
	'ˌ':  {kind: ignorable},
	'ː':  {kind: ignorable},
	'\'': {kind: ignorable},

	boundaryMark: {kind: boundary},
}

var palatalFusions = map[quality]hangul.Vowel{
	openFront: hangul.Yae,
	open:      hangul.Ya,
	back:      hangul.Yeo,
	midFront:  hangul.Ye,
	midBack:   hangul.Yo,
	highBack:  hangul.Yu,
}

var labialFusions = map[quality]hangul.Vowel{
	highFront: hangul.Wi,
	openFront: hangul.Wae,
	open:      hangul.Wa,
	back:      hangul.Wo,
	midBack:   hangul.Wo,
	midFront:  hangul.We,
}

func classify(r rune) phoneme {
	if unicode.IsSpace(r) {
		return phoneme{kind: ignorable}
	}
	return phonemes[r]
}

// IsPhoneme reports whether r is a sound the converter writes. Stress and
// length marks, whitespace and the word boundary are not phonemes.
func IsPhoneme(r rune) bool {
	switch classify(r).kind {
	case unknown, ignorable, boundary:
		return false
	}
	return true
}
