package pronounce

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/phonetics-to-hangul/internal/ipa"
)

// NotFoundMark stands in for the Hangul of a word no source knows.
const NotFoundMark = "?"

const maxConcurrentLookups = 4

// Result is one transcribed word.
type Result struct {
	Word     string
	Phonetic string
	Hangul   string
	Source   string
	Found    bool
}

// Transcriber turns text into Hangul word by word.
type Transcriber struct {
	source    Source
	converter *ipa.Converter
	logger    *slog.Logger
}

func NewTranscriber(source Source, converter *ipa.Converter, logger *slog.Logger) *Transcriber {
	return &Transcriber{source: source, converter: converter, logger: logger}
}

// Transcribe looks up every word of text concurrently and converts each
// pronunciation. Words no source knows get NotFoundMark. The first lookup
// failure other than ErrNotFound cancels the rest and is returned.
func (t *Transcriber) Transcribe(ctx context.Context, text string) ([]Result, error) {
	words := Words(text)
	results := make([]Result, len(words))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, word := range words {
		g.Go(func() error {
			p, err := t.source.Pronounce(ctx, word)
			if errors.Is(err, ErrNotFound) {
				t.logger.DebugContext(ctx, "no pronunciation found", "word", word)
				results[i] = Result{Word: word, Hangul: NotFoundMark}
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = Result{
				Word:     p.Word,
				Phonetic: p.Phonetic,
				Hangul:   t.converter.ConvertString(p.Phonetic),
				Source:   p.Source,
				Found:    true,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// TranscribeIPA converts IPA typed by a user. Each whitespace-separated
// chunk is one word. Chunks with no sounds in them, such as a lone stress
// mark, are dropped.
func (t *Transcriber) TranscribeIPA(text string) []Result {
	return lo.FilterMap(strings.Fields(text), func(chunk string, _ int) (Result, bool) {
		hangul := t.converter.ConvertString(chunk)
		return Result{
			Word:     chunk,
			Phonetic: chunk,
			Hangul:   hangul,
			Source:   SourceIPA,
			Found:    true,
		}, hangul != ""
	})
}

// Words splits text into lookup keys, dropping surrounding punctuation.
// Apostrophes inside a word are kept (don't, o'clock).
func Words(text string) []string {
	trimmed := lo.Map(strings.Fields(text), func(f string, _ int) string {
		return strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
	})
	return lo.Compact(trimmed)
}

// Joined renders results as one line of Hangul.
func Joined(results []Result) string {
	return strings.Join(lo.Map(results, func(r Result, _ int) string { return r.Hangul }), " ")
}
