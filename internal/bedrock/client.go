package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/jusunglee/phonetics-to-hangul/internal/llm"
)

const (
	DefaultModel  = "us.anthropic.claude-haiku-4-5-20251001-v1:0"
	DefaultRegion = "us-east-1"
)

// A single word's IPA never needs more than this.
const maxTokens = 256

// converser is the part of the Bedrock runtime client used here.
type converser interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type Client struct {
	client converser
	model  string
}

var _ llm.Client = (*Client)(nil)

// NewClient loads AWS credentials from the default chain (environment,
// shared profile, instance role).
func NewClient(ctx context.Context, region, model string) (*Client, error) {
	if region == "" {
		region = DefaultRegion
	}
	if model == "" {
		model = DefaultModel
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Client{
		client: bedrockruntime.NewFromConfig(cfg),
		model:  model,
	}, nil
}

func (c *Client) Provider() string {
	return "bedrock"
}

func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	out, err := c.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		},
		Messages: []types.Message{{
			Role: types.ConversationRoleUser,
			Content: []types.ContentBlock{
				&types.ContentBlockMemberText{Value: prompt},
			},
		}},
		InferenceConfig: &types.InferenceConfiguration{MaxTokens: aws.Int32(maxTokens)},
	})
	if err != nil {
		return "", fmt.Errorf("bedrock API call failed: %w", err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("bedrock response is not a message")
	}
	var parts []string
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok && text.Value != "" {
			parts = append(parts, text.Value)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text content in bedrock response")
	}
	return llm.StripMarkdownCodeBlocks(strings.Join(parts, "")), nil
}
