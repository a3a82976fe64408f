// Package lexicala looks up word pronunciations in the Lexicala online
// dictionary API.
package lexicala

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jusunglee/phonetics-to-hangul/internal/metrics"
)

const DefaultBaseURL = "https://dictapi.lexicala.com"

var ErrNotFound = errors.New("the dictionary does not contain the word")
var ErrNoPronunciation = errors.New("the entry has no pronunciation")

// APIError is an error message returned by the API itself.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dictionary API error (status %d): %s", e.StatusCode, e.Message)
}

// Word is a headword and its IPA pronunciation.
type Word struct {
	Word          string
	Pronunciation string
}

type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(user, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		user:     user,
		password: password,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
}

type entryResponse struct {
	Headword headwords `json:"headword"`
}

type headword struct {
	Text          string `json:"text"`
	Pronunciation struct {
		Value string `json:"value"`
	} `json:"pronunciation"`
}

// headwords accepts either a single headword object or a list of them.
type headwords []headword

func (h *headwords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []headword
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*h = list
		return nil
	}
	var single headword
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*h = headwords{single}
	return nil
}

// LookUp searches for word in the given language and returns the first
// pronunciation of the first matching entry.
func (c *Client) LookUp(ctx context.Context, word, language string) (Word, error) {
	var search searchResponse
	query := url.Values{"language": {language}, "text": {word}}
	if err := c.call(ctx, "search", "/search?"+query.Encode(), &search); err != nil {
		return Word{}, fmt.Errorf("searching the word: %w", err)
	}
	if len(search.Results) == 0 {
		metrics.DictAPICallsTotal.WithLabelValues("search", "not_found").Inc()
		return Word{}, ErrNotFound
	}
	metrics.DictAPICallsTotal.WithLabelValues("search", "success").Inc()

	var entry entryResponse
	if err := c.call(ctx, "entry", "/entries/"+url.PathEscape(search.Results[0].ID), &entry); err != nil {
		return Word{}, fmt.Errorf("looking up the word's pronunciation: %w", err)
	}
	metrics.DictAPICallsTotal.WithLabelValues("entry", "success").Inc()
	if len(entry.Headword) == 0 {
		return Word{}, errors.New("the entry has an empty headword list")
	}

	hw := entry.Headword[0]
	pronunciation, _, _ := strings.Cut(hw.Pronunciation.Value, ",")
	pronunciation = strings.TrimSpace(pronunciation)
	if pronunciation == "" {
		return Word{}, ErrNoPronunciation
	}

	return Word{Word: hw.Text, Pronunciation: pronunciation}, nil
}

func (c *Client) call(ctx context.Context, endpoint, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.DictAPILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DictAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed accessing the dictionary API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.DictAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed to read response: %w", err)
	}

	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		metrics.DictAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}
	if resp.StatusCode != http.StatusOK {
		metrics.DictAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.DictAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed parsing the response from the dictionary API: %w", err)
	}
	return nil
}
