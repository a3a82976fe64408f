package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/phonetics-to-hangul/internal/hangul"
	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
)

var discard = slog.New(slog.DiscardHandler)

func TestFlagsConfig(t *testing.T) {
	fs := ff.NewFlagSet("test")
	flags := RegisterFlags(fs)

	err := ff.Parse(fs, []string{
		"--online",
		"--dict-user", "me",
		"--dict-pass", "secret",
		"--dict-lang", "fr",
		"--llm-provider", "google",
		"--cache-ttl", "1h",
	})
	require.NoError(t, err)

	cfg := flags.Config()
	assert.True(t, cfg.Online)
	assert.Equal(t, "me", cfg.DictUser)
	assert.Equal(t, "secret", cfg.DictPass)
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, pronounce.ProviderGoogle, cfg.LLM.Provider)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestFlagsDefaults(t *testing.T) {
	fs := ff.NewFlagSet("test")
	flags := RegisterFlags(fs)
	require.NoError(t, ff.Parse(fs, nil))

	cfg := flags.Config()
	assert.False(t, cfg.Online)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, pronounce.ProviderNone, cfg.LLM.Provider)
	assert.Equal(t, pronounce.DefaultCacheTTL, cfg.CacheTTL)
}

func TestValidateOnlineCredentials(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.ErrorContains(t, Config{Online: true}.Validate(), "DICT_USER")
	assert.ErrorContains(t, Config{Online: true, DictUser: "me"}.Validate(), "DICT_PASS")
	assert.NoError(t, Config{Online: true, DictUser: "me", DictPass: "pw"}.Validate())
}

func TestLoadDictionaryBundled(t *testing.T) {
	dict, err := LoadDictionary(context.Background(), "")
	require.NoError(t, err)
	_, ok := dict.LookUp("hello")
	assert.True(t, ok)
}

func TestLoadDictionaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.dict")
	require.NoError(t, os.WriteFile(path, []byte("CAT  K AE1 T\n"), 0o644))

	dict, err := LoadDictionary(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, dict.Len())
}

func TestLoadDictionaryURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cmudict.dict" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(";;; test\nDOG  D AO1 G\nCAT  K AE1 T\n"))
	}))
	defer srv.Close()

	dict, err := LoadDictionary(context.Background(), srv.URL+"/cmudict.dict")
	require.NoError(t, err)
	assert.Equal(t, 2, dict.Len())

	_, err = LoadDictionary(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestOpenRepository(t *testing.T) {
	repo, err := OpenRepository(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = OpenRepository(context.Background(), "mysql://localhost/db")
	assert.ErrorContains(t, err, "unsupported database scheme")
}

func TestBuildOffline(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, Config{Language: "en"}, discard)
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.Repo)

	results, err := a.Transcriber.Transcribe(ctx, "Hello, world! xyzzy")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Found)
	assert.Equal(t, pronounce.SourceDictionary, results[0].Source)
	assert.Equal(t, a.Converter.ConvertString(results[0].Phonetic), results[0].Hangul)
	assert.True(t, hangul.IsWellFormed(results[1].Hangul))

	assert.False(t, results[2].Found)
	assert.Equal(t, pronounce.NotFoundMark, results[2].Hangul)
}

func TestBuildWithCache(t *testing.T) {
	a, err := Build(context.Background(), Config{CacheURL: ":memory:", CacheTTL: time.Hour}, discard)
	require.NoError(t, err)
	assert.NotNil(t, a.Repo)

	checks := a.HealthChecks()
	require.Len(t, checks, 1)
	assert.NoError(t, checks[0](context.Background()))

	require.NoError(t, a.Close())
	assert.Error(t, checks[0](context.Background()), "closed cache should fail the check")
}

func TestHealthChecksWithoutCache(t *testing.T) {
	a, err := Build(context.Background(), Config{}, discard)
	require.NoError(t, err)
	assert.Empty(t, a.HealthChecks())
}

func TestBuildErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Build(ctx, Config{Online: true}, discard)
	assert.ErrorContains(t, err, "dict-user")

	_, err = Build(ctx, Config{LLM: pronounce.LLMConfig{Provider: pronounce.ProviderAnthropic}}, discard)
	assert.ErrorContains(t, err, "anthropic-api-key is required")

	_, err = Build(ctx, Config{Dictionary: filepath.Join(t.TempDir(), "missing.dict")}, discard)
	assert.ErrorContains(t, err, "loading dictionary")
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "postgres://app:xxxxx@db:5432/cache", redact("postgres://app:hunter2@db:5432/cache"))
	assert.Equal(t, "cache.db", redact("cache.db"))
}

type fakeDeleter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeDeleter) DeleteExpiredPronunciations(context.Context) (int64, error) {
	f.calls.Add(1)
	return 3, f.err
}

func TestRunCacheJanitorStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	deleter := &fakeDeleter{err: errors.New("boom")}

	done := make(chan struct{})
	go func() {
		RunCacheJanitor(ctx, deleter, 10*time.Millisecond, discard)
		close(done)
	}()

	require.Eventually(t, func() bool { return deleter.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestExportPoolStatsIgnoresSQLite(t *testing.T) {
	repo, err := OpenRepository(context.Background(), ":memory:")
	require.NoError(t, err)
	defer repo.Close()

	done := make(chan struct{})
	go func() {
		ExportPoolStats(context.Background(), repo, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ExportPoolStats should return for a repository without a pool")
	}
}
