package arpabet

import (
	"strings"
	"unicode"
)

// ipaBySymbol maps every CMUdict phone (stress digit stripped) to IPA.
var ipaBySymbol = map[string]string{
	"AA": "ɑ",
	"AE": "æ",
	"AH": "ʌ",
	"AO": "ɔ",
	"AW": "aʊ",
	"AY": "aɪ",
	"B":  "b",
	"CH": "tʃ",
	"D":  "d",
	"DH": "ð",
	"EH": "ɛ",
	"ER": "ɝ",
	"EY": "eɪ",
	"F":  "f",
	"G":  "ɡ",
	"HH": "h",
	"IH": "ɪ",
	"IY": "i",
	"JH": "dʒ",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",
	"OW": "oʊ",
	"OY": "ɔɪ",
	"P":  "p",
	"R":  "ɹ",
	"S":  "s",
	"SH": "ʃ",
	"T":  "t",
	"TH": "θ",
	"UH": "ʊ",
	"UW": "u",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "ʒ",
}

// StripStress removes the trailing stress digit from a symbol, e.g. "AH0" -> "AH".
func StripStress(symbol string) string {
	return strings.TrimRightFunc(symbol, unicode.IsDigit)
}

// ToIPA translates a single ARPABET symbol into its IPA rendering.
// The stress digit, if any, is ignored.
func ToIPA(symbol string) (string, bool) {
	ipa, ok := ipaBySymbol[StripStress(symbol)]
	return ipa, ok
}

// mustIPA is used on symbols that were already validated by Parse.
func mustIPA(symbol string) string {
	ipa, ok := ToIPA(symbol)
	if !ok {
		panic("arpabet: unknown symbol " + symbol + " in a parsed dictionary")
	}
	return ipa
}
