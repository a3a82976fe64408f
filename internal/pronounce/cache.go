package pronounce

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jusunglee/phonetics-to-hangul/internal/db"
	"github.com/jusunglee/phonetics-to-hangul/internal/metrics"
)

const DefaultCacheTTL = 24 * time.Hour

// CachedSource is a read-through cache in front of a remote source. Only
// pronunciations are stored, never the Hangul made from them.
type CachedSource struct {
	source   Source
	repo     db.Repository
	language string
	ttl      time.Duration
	logger   *slog.Logger
}

func NewCachedSource(source Source, repo db.Repository, language string, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		source:   source,
		repo:     repo,
		language: language,
		ttl:      ttl,
		logger:   logger,
	}
}

func (c *CachedSource) Pronounce(ctx context.Context, word string) (Pronunciation, error) {
	cached, err := c.repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{
		Word:     word,
		Language: c.language,
	})
	if err == nil {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return Pronunciation{Word: cached.Word, Phonetic: cached.Phonetic, Source: cached.Source}, nil
	}
	if !db.IsNoRows(err) {
		return Pronunciation{}, fmt.Errorf("pronunciation cache lookup failed: %w", err)
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	p, err := c.source.Pronounce(ctx, word)
	if err != nil {
		return Pronunciation{}, err
	}

	// Keyed by the word asked for, the source may return a different spelling.
	if err := c.repo.CachePronunciation(ctx, db.CachePronunciationParams{
		Word:      word,
		Language:  c.language,
		Phonetic:  p.Phonetic,
		Source:    p.Source,
		ExpiresAt: time.Now().Add(c.ttl),
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to cache pronunciation", "word", word, "error", err)
	}

	return p, nil
}
