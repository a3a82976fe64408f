// Package app wires pronunciation sources, the cache and the converter from
// command-line configuration. Every binary builds its Transcriber here.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v4"

	"github.com/jusunglee/phonetics-to-hangul/internal/arpabet"
	"github.com/jusunglee/phonetics-to-hangul/internal/db"
	"github.com/jusunglee/phonetics-to-hangul/internal/db/postgres"
	"github.com/jusunglee/phonetics-to-hangul/internal/db/sqlite"
	"github.com/jusunglee/phonetics-to-hangul/internal/health"
	"github.com/jusunglee/phonetics-to-hangul/internal/ipa"
	"github.com/jusunglee/phonetics-to-hangul/internal/lexicala"
	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
)

const dictionaryDownloadTimeout = 2 * time.Minute

type Config struct {
	Language   string
	Online     bool
	Dictionary string
	DictUser   string
	DictPass   string
	LLM        pronounce.LLMConfig
	CacheURL   string
	CacheTTL   time.Duration
}

// Flags holds the flag values registered on a FlagSet until parsing is done.
type Flags struct {
	language        *string
	online          *bool
	dictionary      *string
	dictUser        *string
	dictPass        *string
	llmProvider     *string
	llmModel        *string
	anthropicAPIKey *string
	googleAPIKey    *string
	openAIAPIKey    *string
	ollamaBaseURL   *string
	awsRegion       *string
	cacheURL        *string
	cacheTTL        *time.Duration
}

// RegisterFlags adds the pronunciation source flags shared by all binaries.
// With ff.WithEnvVars each flag can also be set from its upper-case
// environment variable, e.g. --dict-user from DICT_USER.
func RegisterFlags(fs *ff.FlagSet) *Flags {
	return &Flags{
		language:        fs.StringLong("dict-lang", "en", "Language of the input words"),
		online:          fs.BoolLong("online", "Look words up in the Lexicala online dictionary"),
		dictionary:      fs.StringLong("dictionary", "", "Path or http(s) URL of a CMUdict corpus (default: bundled common words)"),
		dictUser:        fs.StringLong("dict-user", "", "Lexicala API user name"),
		dictPass:        fs.StringLong("dict-pass", "", "Lexicala API password"),
		llmProvider:     fs.StringEnumLong("llm-provider", "LLM used when no dictionary knows a word", pronounce.Providers...),
		llmModel:        fs.StringLong("llm-model", "", "LLM model name"),
		anthropicAPIKey: fs.StringLong("anthropic-api-key", "", "Anthropic API key"),
		googleAPIKey:    fs.StringLong("google-api-key", "", "Google API key"),
		openAIAPIKey:    fs.StringLong("openai-api-key", "", "OpenAI API key"),
		ollamaBaseURL:   fs.StringLong("ollama-base-url", "", "Ollama server URL (default http://localhost:11434)"),
		awsRegion:       fs.StringLong("aws-region", "", "AWS region for Bedrock (default us-east-1)"),
		cacheURL:        fs.StringLong("cache-url", "", "Pronunciation cache database, a SQLite path or postgres:// URL"),
		cacheTTL:        fs.DurationLong("cache-ttl", pronounce.DefaultCacheTTL, "How long remote pronunciations stay cached"),
	}
}

func (f *Flags) Config() Config {
	return Config{
		Language:   *f.language,
		Online:     *f.online,
		Dictionary: *f.dictionary,
		DictUser:   *f.dictUser,
		DictPass:   *f.dictPass,
		LLM: pronounce.LLMConfig{
			Provider:        *f.llmProvider,
			Model:           *f.llmModel,
			AnthropicAPIKey: *f.anthropicAPIKey,
			GoogleAPIKey:    *f.googleAPIKey,
			OpenAIAPIKey:    *f.openAIAPIKey,
			OllamaURL:       *f.ollamaBaseURL,
			AWSRegion:       *f.awsRegion,
		},
		CacheURL: *f.cacheURL,
		CacheTTL: *f.cacheTTL,
	}
}

func (c Config) Validate() error {
	if c.Online {
		if c.DictUser == "" {
			return errors.New("for online usage, dict-user (DICT_USER) is required")
		}
		if c.DictPass == "" {
			return errors.New("for online usage, dict-pass (DICT_PASS) is required")
		}
	}
	return nil
}

// App is the assembled conversion pipeline.
type App struct {
	Converter   *ipa.Converter
	Transcriber *pronounce.Transcriber
	// Repo is nil when no cache is configured.
	Repo db.Repository
}

// Build opens the cache, loads or connects the pronunciation sources and
// returns the pipeline. The caller must Close it.
func Build(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{Converter: ipa.NewConverter(log)}

	if cfg.CacheURL != "" {
		repo, err := OpenRepository(ctx, cfg.CacheURL)
		if err != nil {
			return nil, err
		}
		a.Repo = repo
		log.InfoContext(ctx, "pronunciation cache ready", "url", redact(cfg.CacheURL))
	}

	chain, err := a.sources(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Transcriber = pronounce.NewTranscriber(chain, a.Converter, log)
	return a, nil
}

func (a *App) sources(ctx context.Context, cfg Config, log *slog.Logger) (pronounce.Chain, error) {
	var chain pronounce.Chain

	if cfg.Online {
		client := lexicala.NewClient(cfg.DictUser, cfg.DictPass)
		chain = append(chain, a.cached(pronounce.NewOnlineSource(client, cfg.Language), cfg, log))
	} else {
		dict, err := LoadDictionary(ctx, cfg.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("loading dictionary: %w", err)
		}
		log.InfoContext(ctx, "dictionary loaded", "entries", dict.Len())
		chain = append(chain, pronounce.NewDictionarySource(dict))
	}

	llmClient, err := pronounce.NewLLMClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	if llmClient != nil {
		chain = append(chain, a.cached(pronounce.NewLLMSource(llmClient, log), cfg, log))
	}

	return chain, nil
}

// cached puts remote sources behind the cache when one is configured.
func (a *App) cached(source pronounce.Source, cfg Config, log *slog.Logger) pronounce.Source {
	if a.Repo == nil {
		return source
	}
	return pronounce.NewCachedSource(source, a.Repo, cfg.Language, cfg.CacheTTL, log)
}

// HealthChecks probes the cache, which is the only dependency that can be
// down while the process runs.
func (a *App) HealthChecks() []health.Check {
	if a.Repo == nil {
		return nil
	}
	return []health.Check{func(ctx context.Context) error {
		_, err := a.Repo.GetCachedPronunciation(ctx, db.GetCachedPronunciationParams{Word: "health", Language: "health"})
		if err != nil && !db.IsNoRows(err) {
			return fmt.Errorf("pronunciation cache: %w", err)
		}
		return nil
	}}
}

func (a *App) Close() error {
	if a.Repo == nil {
		return nil
	}
	return a.Repo.Close()
}

// OpenRepository opens the cache database named by databaseURL.
func OpenRepository(ctx context.Context, databaseURL string) (db.Repository, error) {
	driver, err := db.DriverFor(databaseURL)
	if err != nil {
		return nil, err
	}
	switch driver {
	case db.DriverPostgres:
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		return repo, nil
	default:
		repo, err := sqlite.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating SQLite database: %w", err)
		}
		return repo, nil
	}
}

// LoadDictionary reads a corpus from a file path or an http(s) URL. An empty
// location selects the bundled corpus.
func LoadDictionary(ctx context.Context, location string) (*arpabet.Dictionary, error) {
	if location == "" {
		return arpabet.Bundled()
	}
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return arpabet.LoadFile(location)
	}

	ctx, cancel := context.WithTimeout(ctx, dictionaryDownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %d", location, resp.StatusCode)
	}
	return arpabet.Load(resp.Body)
}

// redact hides the password of a database URL for logging.
func redact(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.User == nil {
		return databaseURL
	}
	return u.Redacted()
}
