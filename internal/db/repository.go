package db

import (
	"context"
	"time"
)

// CachedPronunciation is a pronunciation fetched from a remote source.
type CachedPronunciation struct {
	Word      string
	Language  string
	Phonetic  string
	Source    string
	CachedAt  time.Time
	ExpiresAt time.Time
}

type GetCachedPronunciationParams struct {
	Word     string
	Language string
}

type CachePronunciationParams struct {
	Word      string
	Language  string
	Phonetic  string
	Source    string
	ExpiresAt time.Time
}

// Repository defines the interface for database operations
type Repository interface {
	// GetCachedPronunciation returns ErrNoRows when the word is not cached
	// or its entry has expired.
	GetCachedPronunciation(ctx context.Context, arg GetCachedPronunciationParams) (CachedPronunciation, error)
	CachePronunciation(ctx context.Context, arg CachePronunciationParams) error
	DeleteExpiredPronunciations(ctx context.Context) (int64, error)

	// Lifecycle
	Close() error
}
