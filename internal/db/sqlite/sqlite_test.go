package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jusunglee/phonetics-to-hangul/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPronunciationCache(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.CachePronunciation(ctx, db.CachePronunciationParams{
		Word:      "example",
		Language:  "en",
		Phonetic:  "ɪɡˈzæmpəl",
		Source:    "lexicala",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "example", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "ɪɡˈzæmpəl", got.Phonetic)
	assert.Equal(t, "lexicala", got.Source)
	assert.True(t, got.ExpiresAt.After(got.CachedAt))

	// Language is part of the key
	_, err = repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "example", Language: "de"})
	assert.True(t, db.IsNoRows(err))

	// Miss
	_, err = repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "zzzqx", Language: "en"})
	assert.True(t, db.IsNoRows(err))
}

func TestCachePronunciationOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, phonetic := range []string{"tɛkst", "tɛks"} {
		require.NoError(t, repo.CachePronunciation(ctx, db.CachePronunciationParams{
			Word: "text", Language: "en", Phonetic: phonetic, Source: "llm",
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}

	got, err := repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "text", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "tɛks", got.Phonetic)
}

func TestExpiredPronunciations(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CachePronunciation(ctx, db.CachePronunciationParams{
		Word: "old", Language: "en", Phonetic: "oʊld", Source: "lexicala",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, repo.CachePronunciation(ctx, db.CachePronunciationParams{
		Word: "new", Language: "en", Phonetic: "nu", Source: "lexicala",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err := repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "old", Language: "en"})
	assert.True(t, db.IsNoRows(err), "expired entries are not returned")

	deleted, err := repo.DeleteExpiredPronunciations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "new", Language: "en"})
	require.NoError(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	repo, err := New(ctx, "sqlite://"+path)
	require.NoError(t, err)
	require.NoError(t, repo.CachePronunciation(ctx, db.CachePronunciationParams{
		Word: "cat", Language: "en", Phonetic: "kæt", Source: "lexicala",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Close())

	repo, err = New(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "cat", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "kæt", got.Phonetic)
}
