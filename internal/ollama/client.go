package ollama

import (
	"context"
	"fmt"
	"strings"

	ollamasdk "github.com/rozoomcool/go-ollama-sdk"

	"github.com/jusunglee/phonetics-to-hangul/internal/llm"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.1"
)

// chatter is the part of the SDK client used here.
type chatter interface {
	Chat(model string, messages []ollamasdk.ChatMessage) (string, error)
}

type Client struct {
	client chatter
	model  string
}

var _ llm.Client = (*Client)(nil)

func NewClient(baseURL, model string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: ollamasdk.NewClient(baseURL),
		model:  model,
	}
}

func (c *Client) Provider() string {
	return "ollama"
}

// Complete runs the chat call in its own goroutine since the SDK takes no
// context. A cancelled ctx returns at once; the call finishes in the
// background.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := c.client.Chat(c.model, []ollamasdk.ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		})
		done <- reply{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("ollama chat failed: %w", r.err)
		}
		text := strings.TrimSpace(r.text)
		if text == "" {
			return "", fmt.Errorf("empty response from ollama")
		}
		return llm.StripMarkdownCodeBlocks(text), nil
	}
}
