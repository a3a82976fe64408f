package hangul

import "fmt"

// Consonant is a jamo usable as an initial and, except for the tense
// stops, as a final consonant.
type Consonant int

const (
	B  Consonant = iota // ㅂ
	J                   // ㅈ
	D                   // ㄷ
	G                   // ㄱ
	S                   // ㅅ
	M                   // ㅁ
	N                   // ㄴ
	Ng                  // ㅇ
	L                   // ㄹ
	H                   // ㅎ
	K                   // ㅋ
	T                   // ㅌ
	Ch                  // ㅊ
	P                   // ㅍ
	Bb                  // ㅃ
	Gg                  // ㄲ
	Dd                  // ㄸ
	numConsonants
)

// Vowel is a medial jamo.
type Vowel int

const (
	Ae  Vowel = iota // ㅐ
	E                // ㅔ
	O                // ㅗ
	Eo               // ㅓ
	A                // ㅏ
	I                // ㅣ
	U                // ㅜ
	Eu               // ㅡ
	Wi               // ㅟ
	Wae              // ㅙ
	Wa               // ㅘ
	Wo               // ㅝ
	We               // ㅞ
	Yae              // ㅒ
	Ya               // ㅑ
	Yeo              // ㅕ
	Ye               // ㅖ
	Yo               // ㅛ
	Yu               // ㅠ
	numVowels
)

// Conjoining jamo. NFC composes an initial, a medial and an optional final
// into one syllable block.
const (
	fillerInitial = '\u110B' // ᄋ
	fillerVowel   = '\u1173' // ᅳ
	noFinal       = rune(0)
)

var initialJamo = [numConsonants]rune{
	B:  '\u1107',
	J:  '\u110C',
	D:  '\u1103',
	G:  '\u1100',
	S:  '\u1109',
	M:  '\u1106',
	N:  '\u1102',
	Ng: '\u110B',
	L:  '\u1105',
	H:  '\u1112',
	K:  '\u110F',
	T:  '\u1110',
	Ch: '\u110E',
	P:  '\u1111',
	Bb: '\u1108',
	Gg: '\u1101',
	Dd: '\u1104',
}

// The tense stops have no final form.
var finalJamo = [numConsonants]rune{
	B:  '\u11B8',
	J:  '\u11BD',
	D:  '\u11AE',
	G:  '\u11A8',
	S:  '\u11BA',
	M:  '\u11B7',
	N:  '\u11AB',
	Ng: '\u11BC',
	L:  '\u11AF',
	H:  '\u11C2',
	K:  '\u11BF',
	T:  '\u11C0',
	Ch: '\u11BE',
	P:  '\u11C1',
	Bb: noFinal,
	Gg: noFinal,
	Dd: noFinal,
}

var medialJamo = [numVowels]rune{
	Ae:  '\u1162',
	E:   '\u1166',
	O:   '\u1169',
	Eo:  '\u1165',
	A:   '\u1161',
	I:   '\u1175',
	U:   '\u116E',
	Eu:  '\u1173',
	Wi:  '\u1171',
	Wae: '\u116B',
	Wa:  '\u116A',
	Wo:  '\u116F',
	We:  '\u1170',
	Yae: '\u1164',
	Ya:  '\u1163',
	Yeo: '\u1167',
	Ye:  '\u1168',
	Yo:  '\u116D',
	Yu:  '\u1172',
}

var consonantNames = [numConsonants]string{
	"B", "J", "D", "G", "S", "M", "N", "Ng", "L", "H", "K", "T", "Ch", "P", "Bb", "Gg", "Dd",
}

var vowelNames = [numVowels]string{
	"Ae", "E", "O", "Eo", "A", "I", "U", "Eu", "Wi", "Wae", "Wa", "Wo", "We", "Yae", "Ya", "Yeo", "Ye", "Yo", "Yu",
}

func (c Consonant) String() string {
	if c < 0 || c >= numConsonants {
		return fmt.Sprintf("Consonant(%d)", int(c))
	}
	return consonantNames[c]
}

func (v Vowel) String() string {
	if v < 0 || v >= numVowels {
		return fmt.Sprintf("Vowel(%d)", int(v))
	}
	return vowelNames[v]
}

// HasFinal reports whether c may close a syllable.
func (c Consonant) HasFinal() bool {
	return c >= 0 && c < numConsonants && finalJamo[c] != noFinal
}
