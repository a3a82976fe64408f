package pronounce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jusunglee/phonetics-to-hangul/internal/anthropic"
	"github.com/jusunglee/phonetics-to-hangul/internal/bedrock"
	"github.com/jusunglee/phonetics-to-hangul/internal/google"
	"github.com/jusunglee/phonetics-to-hangul/internal/ipa"
	"github.com/jusunglee/phonetics-to-hangul/internal/llm"
	"github.com/jusunglee/phonetics-to-hangul/internal/metrics"
	"github.com/jusunglee/phonetics-to-hangul/internal/ollama"
	"github.com/jusunglee/phonetics-to-hangul/internal/openai"
)

const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderBedrock   = "bedrock"
)

// Providers lists every accepted LLMConfig.Provider, ProviderNone first.
var Providers = []string{ProviderNone, ProviderAnthropic, ProviderGoogle, ProviderOpenAI, ProviderOllama, ProviderBedrock}

type LLMConfig struct {
	Provider        string
	Model           string
	AnthropicAPIKey string
	GoogleAPIKey    string
	OpenAIAPIKey    string
	OllamaURL       string
	AWSRegion       string
}

// NewLLMClient builds the client for cfg.Provider. It returns nil for
// ProviderNone.
func NewLLMClient(ctx context.Context, cfg LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, errors.New("anthropic-api-key is required when using anthropic provider")
		}
		return anthropic.NewClient(cfg.AnthropicAPIKey, anthropic.Model(cfg.Model)), nil
	case ProviderGoogle:
		if cfg.GoogleAPIKey == "" {
			return nil, errors.New("google-api-key is required when using google provider")
		}
		client, err := google.NewClient(ctx, cfg.GoogleAPIKey, google.Model(cfg.Model))
		if err != nil {
			return nil, fmt.Errorf("creating Google client: %w", err)
		}
		return client, nil
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("openai-api-key is required when using openai provider")
		}
		return openai.NewClient(cfg.OpenAIAPIKey, openai.Model(cfg.Model)), nil
	case ProviderOllama:
		return ollama.NewClient(cfg.OllamaURL, cfg.Model), nil
	case ProviderBedrock:
		client, err := bedrock.NewClient(ctx, cfg.AWSRegion, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("creating Bedrock client: %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

const systemPrompt = `You give the pronunciation of English words in IPA.

Use General American pronunciation. Write only the IPA symbols, without slashes or brackets.
Mark primary stress with ˈ and secondary stress with ˌ.
If the input is not a word you can pronounce, return an empty "ipa".

Respond ONLY with a JSON object, no other text. Example:
{"word": "example", "ipa": "ɪɡˈzæmpəl"}`

type llmPronunciation struct {
	Word string `json:"word"`
	IPA  string `json:"ipa"`
}

// LLMSource asks a language model for a word's pronunciation. It is meant
// as the last source in a Chain.
type LLMSource struct {
	client llm.Client
	logger *slog.Logger
}

func NewLLMSource(client llm.Client, logger *slog.Logger) *LLMSource {
	return &LLMSource{client: client, logger: logger}
}

func (s *LLMSource) Pronounce(ctx context.Context, word string) (Pronunciation, error) {
	start := time.Now()
	text, err := s.client.Complete(ctx, systemPrompt, "Word: "+word)
	metrics.LLMRequestDuration.WithLabelValues(s.client.Provider()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(SourceLLM, "error").Inc()
		return Pronunciation{}, fmt.Errorf("asking %s for %q: %w", s.client.Provider(), word, err)
	}

	var resp llmPronunciation
	if err := json.Unmarshal([]byte(llm.ExtractJSONObject(text)), &resp); err != nil {
		metrics.LookupsTotal.WithLabelValues(SourceLLM, "error").Inc()
		return Pronunciation{}, fmt.Errorf("failed to parse pronunciation response: %w (response: %s)", err, text)
	}

	phonetic := cleanIPA(resp.IPA)
	if !strings.ContainsFunc(phonetic, ipa.IsPhoneme) {
		s.logger.DebugContext(ctx, "llm returned no usable pronunciation", "word", word, "response", text)
		metrics.LookupsTotal.WithLabelValues(SourceLLM, "not_found").Inc()
		return Pronunciation{}, fmt.Errorf("%q: %w", word, ErrNotFound)
	}

	metrics.LookupsTotal.WithLabelValues(SourceLLM, "found").Inc()
	return Pronunciation{Word: word, Phonetic: phonetic, Source: SourceLLM}, nil
}

// cleanIPA drops the slashes and brackets that commonly delimit IPA.
func cleanIPA(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "/[]"))
}
