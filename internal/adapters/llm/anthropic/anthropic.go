// Package anthropic implements polish.Generator on the Messages API
package anthropic

import (
	"context"
	"strings"
	"time"

	"textpolish/internal/adapters/llm/llmerr"
	"textpolish/internal/core/polish"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultMaxTokens = 2000

// Options configures the client
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client implements polish.Generator
type Client struct {
	client sdk.Client
	model  sdk.Model
}

// New builds a client with retries disabled
func New(o Options) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(o.APIKey),
		option.WithMaxRetries(0),
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	if o.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(o.Timeout))
	}
	return &Client{client: sdk.NewClient(opts...), model: sdk.Model(o.Model)}
}

// Name returns "anthropic"
func (c *Client) Name() string { return "anthropic" }

// Generate sends one message and joins the text blocks of the reply
func (c *Client) Generate(ctx context.Context, p polish.Prompt) (polish.Completion, error) {
	maxTokens := int64(p.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(p.User)),
		},
		Temperature: sdk.Float(p.Temperature),
	}
	if p.System != "" {
		params.System = []sdk.TextBlockParam{{Text: p.System}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return polish.Completion{}, llmerr.Wrap("anthropic", err)
	}

	var text, thinking strings.Builder
	for _, b := range resp.Content {
		switch b.Type {
		case "text":
			text.WriteString(b.Text)
		case "thinking":
			thinking.WriteString(b.Thinking)
		}
	}
	if text.Len() == 0 {
		return polish.Completion{}, llmerr.Empty("anthropic")
	}
	return polish.Completion{Text: text.String(), Reasoning: thinking.String()}, nil
}
