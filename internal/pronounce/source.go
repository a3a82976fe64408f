// Package pronounce resolves words to IPA pronunciations from the bundled
// dictionary, the online dictionary, or a language model, and transcribes
// them into Hangul.
package pronounce

import (
	"context"
	"errors"
	"fmt"

	"github.com/jusunglee/phonetics-to-hangul/internal/arpabet"
	"github.com/jusunglee/phonetics-to-hangul/internal/lexicala"
	"github.com/jusunglee/phonetics-to-hangul/internal/metrics"
)

// ErrNotFound means the source has no pronunciation for the word. It is an
// expected outcome, not a failure.
var ErrNotFound = errors.New("word not found")

const (
	SourceDictionary = "dictionary"
	SourceLexicala   = "lexicala"
	SourceLLM        = "llm"
	SourceIPA        = "ipa"
)

// Pronunciation is a word and how it sounds, in IPA.
type Pronunciation struct {
	Word     string
	Phonetic string
	Source   string
}

type Source interface {
	Pronounce(ctx context.Context, word string) (Pronunciation, error)
}

// DictionarySource reads the bundled ARPABET dictionary.
type DictionarySource struct {
	dict *arpabet.Dictionary
}

func NewDictionarySource(dict *arpabet.Dictionary) *DictionarySource {
	return &DictionarySource{dict: dict}
}

func (s *DictionarySource) Pronounce(_ context.Context, word string) (Pronunciation, error) {
	pron, ok := s.dict.LookUp(word)
	if !ok {
		metrics.LookupsTotal.WithLabelValues(SourceDictionary, "not_found").Inc()
		return Pronunciation{}, fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	metrics.LookupsTotal.WithLabelValues(SourceDictionary, "found").Inc()
	return Pronunciation{Word: word, Phonetic: pron.String(), Source: SourceDictionary}, nil
}

// WordLookup is implemented by *lexicala.Client.
type WordLookup interface {
	LookUp(ctx context.Context, word, language string) (lexicala.Word, error)
}

// OnlineSource asks the online dictionary in a fixed language.
type OnlineSource struct {
	client   WordLookup
	language string
}

func NewOnlineSource(client WordLookup, language string) *OnlineSource {
	return &OnlineSource{client: client, language: language}
}

func (s *OnlineSource) Pronounce(ctx context.Context, word string) (Pronunciation, error) {
	w, err := s.client.LookUp(ctx, word, s.language)
	if errors.Is(err, lexicala.ErrNotFound) || errors.Is(err, lexicala.ErrNoPronunciation) {
		metrics.LookupsTotal.WithLabelValues(SourceLexicala, "not_found").Inc()
		return Pronunciation{}, fmt.Errorf("%q: %w", word, ErrNotFound)
	}
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(SourceLexicala, "error").Inc()
		return Pronunciation{}, fmt.Errorf("looking up %q: %w", word, err)
	}
	metrics.LookupsTotal.WithLabelValues(SourceLexicala, "found").Inc()
	if w.Word == "" {
		w.Word = word
	}
	return Pronunciation{Word: w.Word, Phonetic: w.Pronunciation, Source: SourceLexicala}, nil
}

// Chain tries each source in order and returns the first pronunciation
// found. Any error other than ErrNotFound stops the chain.
type Chain []Source

func (c Chain) Pronounce(ctx context.Context, word string) (Pronunciation, error) {
	for _, s := range c {
		p, err := s.Pronounce(ctx, word)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return p, err
	}
	return Pronunciation{}, fmt.Errorf("%q: %w", word, ErrNotFound)
}
