package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"github.com/jusunglee/phonetics-to-hangul/internal/llm"
)

type Model = shared.ResponsesModel

const (
	ModelGPT5Mini Model = "gpt-5-mini"
	ModelGPT5Nano Model = "gpt-5-nano"
	ModelGPT41    Model = "gpt-4.1"
)

var DefaultModel Model = ModelGPT5Mini

type Client struct {
	client openai.Client
	model  Model
}

var _ llm.Client = (*Client)(nil)

// NewClient talks to the OpenAI Responses API. Extra options such as
// option.WithBaseURL point it at a compatible server.
func NewClient(apiKey string, model Model, opts ...option.RequestOption) *Client {
	if model == "" {
		model = DefaultModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *Client) Provider() string {
	return "openai"
}

func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(system, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(prompt, responses.EasyInputMessageRoleUser),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}

	text := resp.OutputText()
	if text == "" {
		return "", fmt.Errorf("empty response from openai")
	}
	return llm.StripMarkdownCodeBlocks(text), nil
}
