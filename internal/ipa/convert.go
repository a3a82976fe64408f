// Package ipa converts IPA text into Hangul by driving a hangul.Assembler
// with English-to-Korean transcription rules.
package ipa

import (
	"iter"
	"log/slog"

	"github.com/jusunglee/phonetics-to-hangul/internal/hangul"
	"github.com/jusunglee/phonetics-to-hangul/internal/metrics"
)

// Converter turns IPA symbol streams into Hangul. It holds no per-call state
// and is safe for concurrent use.
type Converter struct {
	logger *slog.Logger
}

func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{logger: logger}
}

// Convert reads phonetic until it is exhausted and returns the composed
// Hangul. Unknown symbols are logged and skipped.
func (c *Converter) Convert(phonetic iter.Seq[rune]) string {
	next, stop := iter.Pull(phonetic)
	defer stop()

	conv := &conversion{
		in:     &stream{next: next},
		out:    hangul.NewAssembler(),
		logger: c.logger,
	}
	for {
		r, p, ok := conv.in.read()
		if !ok {
			break
		}
		conv.symbol = r
		rules[p.kind](conv, p)
	}

	metrics.ConversionsTotal.Inc()
	return conv.out.Finish()
}

func (c *Converter) ConvertString(phonetic string) string {
	return c.Convert(Runes(phonetic))
}

// Convert converts with a Converter that logs to slog.Default.
func Convert(phonetic iter.Seq[rune]) string {
	return NewConverter(nil).Convert(phonetic)
}

func ConvertString(phonetic string) string {
	return NewConverter(nil).ConvertString(phonetic)
}

// Runes yields the runes of s.
func Runes(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}

// stream is the input with one symbol of lookahead. Ignorable marks never
// reach the rules, so they cannot hide a symbol from a peek.
type stream struct {
	next func() (rune, bool)

	peeked    rune
	hasPeeked bool
}

func (s *stream) fill() bool {
	for !s.hasPeeked {
		r, ok := s.next()
		if !ok {
			return false
		}
		if classify(r).kind == ignorable {
			continue
		}
		s.peeked, s.hasPeeked = r, true
	}
	return true
}

func (s *stream) read() (rune, phoneme, bool) {
	if !s.fill() {
		return 0, phoneme{}, false
	}
	s.hasPeeked = false
	return s.peeked, classify(s.peeked), true
}

// peek returns the next symbol of the current word. The end of the input
// and a word boundary both report false.
func (s *stream) peek() (rune, phoneme, bool) {
	if !s.fill() {
		return 0, phoneme{}, false
	}
	p := classify(s.peeked)
	if p.kind == boundary {
		return 0, phoneme{}, false
	}
	return s.peeked, p, true
}

func (s *stream) skip() {
	s.read()
}

type conversion struct {
	in     *stream
	out    *hangul.Assembler
	logger *slog.Logger
	symbol rune
}

var rules = [numKinds]func(*conversion, phoneme){
	unknown:      (*conversion).unknownSymbol,
	consonant:    (*conversion).consonant,
	stop:         (*conversion).stop,
	liquid:       (*conversion).liquid,
	sibilant:     (*conversion).sibilant,
	postalveolar: (*conversion).postalveolar,
	velarNasal:   (*conversion).velarNasal,
	affricateTS:  (*conversion).affricateTS,
	vowel:        (*conversion).vowel,
	palatalGlide: (*conversion).palatalGlide,
	labialGlide:  (*conversion).labialGlide,
	ignorable:    func(*conversion, phoneme) {},
	boundary:     (*conversion).boundary,
}

func (c *conversion) unknownSymbol(phoneme) {
	metrics.UnknownSymbolsTotal.Inc()
	c.logger.Warn("skipping unknown phonetic symbol", "symbol", string(c.symbol), "codepoint", c.symbol)
}

func (c *conversion) consonant(p phoneme) {
	c.out.PushConsonant(p.consonant)
}

func (c *conversion) stop(p phoneme) {
	if p.fricative != 0 {
		if r, _, ok := c.in.peek(); ok && r == p.fricative {
			c.in.skip()
			c.out.PushConsonant(p.affricate)
			return
		}
	}
	if p.hasTense && c.out.IsStartOfWord() {
		c.out.PushConsonant(p.tense)
		return
	}
	c.out.PushConsonant(p.consonant)
}

// A trailing liquid has no reading of its own.
func (c *conversion) liquid(p phoneme) {
	if _, _, ok := c.in.peek(); ok {
		c.out.PushConsonant(p.consonant)
	}
}

func (c *conversion) sibilant(p phoneme) {
	c.out.AdvanceTo(hangul.InitialConsonant)
	c.out.PushConsonant(p.consonant)
}

func (c *conversion) postalveolar(p phoneme) {
	c.out.PushConsonant(p.consonant)
	if _, next, ok := c.in.peek(); ok && next.kind == palatalGlide {
		return
	}
	c.out.PushVowel(hangul.I)
}

func (c *conversion) velarNasal(p phoneme) {
	c.out.AdvanceTo(hangul.FinalConsonant)
	c.out.PushConsonant(p.consonant)
}

func (c *conversion) affricateTS(phoneme) {
	c.out.AdvanceTo(hangul.FinalConsonant)
	c.out.PushConsonant(hangul.T)
	c.out.PushConsonant(hangul.S)
}

func (c *conversion) vowel(p phoneme) {
	c.out.PushVowel(p.vowel)
}

func (c *conversion) palatalGlide(p phoneme) {
	c.out.PushVowel(c.fuse(palatalFusions, p.vowel))
}

func (c *conversion) labialGlide(p phoneme) {
	if _, _, ok := c.in.peek(); !ok {
		c.out.PushConsonant(p.consonant)
		return
	}
	c.out.PushVowel(c.fuse(labialFusions, p.vowel))
}

// fuse consumes the next symbol when the glide merges with it and returns
// the merged vowel, or fallback when it does not.
func (c *conversion) fuse(fusions map[quality]hangul.Vowel, fallback hangul.Vowel) hangul.Vowel {
	_, next, ok := c.in.peek()
	if !ok {
		return fallback
	}
	v, ok := fusions[next.quality]
	if !ok {
		return fallback
	}
	c.in.skip()
	return v
}

func (c *conversion) boundary(phoneme) {
	c.out.PushSpace()
}
