// Package arpabet parses CMUdict-style pronunciation corpora and translates
// their ARPABET symbols into IPA characters.
package arpabet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// CommentPrefix marks corpus lines that are skipped.
const CommentPrefix = ";;;"

// fieldSeparator splits the word from its symbols.
const fieldSeparator = "  "

var (
	ErrMalformedEntry = errors.New("malformed entry")
	ErrUnknownSymbol  = errors.New("unknown ARPABET symbol")
)

// ParseError reports the first corpus line that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Dictionary maps case-folded words to their ARPABET symbol sequences.
// It is immutable after Parse and safe for concurrent readers.
type Dictionary struct {
	entries map[string]string
}

// Pronunciation is the phonetic sequence of one dictionary entry. Translation
// to IPA happens lazily each time Runes is ranged over.
type Pronunciation struct {
	symbols string
}

// Parse builds a Dictionary from corpus text. Any malformed line fails the
// whole parse.
func Parse(corpus string) (*Dictionary, error) {
	return Load(strings.NewReader(corpus))
}

// Load reads a corpus from r.
// Format: WORD<two spaces>SYM SYM SYM ...
func Load(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		word, symbols, ok := strings.Cut(line, fieldSeparator)
		symbols = strings.TrimSpace(symbols)
		if !ok || word == "" || symbols == "" {
			return nil, &ParseError{Line: lineNum, Text: line, Err: ErrMalformedEntry}
		}

		for sym := range strings.FieldsSeq(symbols) {
			if _, known := ToIPA(sym); !known {
				return nil, &ParseError{Line: lineNum, Text: line, Err: fmt.Errorf("%w %q", ErrUnknownSymbol, sym)}
			}
		}

		d.entries[fold(word)] = symbols
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	return d, nil
}

// LoadFile is a convenience wrapper that opens a file path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LookUp returns the pronunciation of word, ignoring case.
func (d *Dictionary) LookUp(word string) (Pronunciation, bool) {
	symbols, ok := d.entries[fold(word)]
	if !ok {
		return Pronunciation{}, false
	}
	return Pronunciation{symbols: symbols}, true
}

// Variants returns the primary pronunciation followed by the numbered
// alternates CMUdict stores as WORD(1), WORD(2), ...
func (d *Dictionary) Variants(word string) []Pronunciation {
	var out []Pronunciation
	if p, ok := d.LookUp(word); ok {
		out = append(out, p)
	}
	for i := 1; ; i++ {
		p, ok := d.LookUp(word + "(" + strconv.Itoa(i) + ")")
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

// Len returns the number of distinct entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Symbols returns the raw ARPABET symbols, stress digits included.
func (p Pronunciation) Symbols() []string {
	return strings.Fields(p.symbols)
}

// Runes yields the IPA characters of the pronunciation. The sequence can be
// iterated any number of times.
func (p Pronunciation) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for sym := range strings.FieldsSeq(p.symbols) {
			for _, r := range mustIPA(sym) {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// String renders the pronunciation as IPA text.
func (p Pronunciation) String() string {
	var b strings.Builder
	for r := range p.Runes() {
		b.WriteRune(r)
	}
	return b.String()
}

func fold(word string) string {
	return cases.Fold().String(word)
}
