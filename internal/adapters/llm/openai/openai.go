// Package openai talks to OpenAI compatible chat completion APIs such as
// DeepSeek and Volcengine ARK
package openai

import (
	"context"
	"encoding/json"
	"net"
	"net/url"
	"strings"
	"time"

	"textpolish/internal/adapters/llm/llmerr"
	"textpolish/internal/core/polish"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

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
	model  string
	name   string
}

// New builds a client. Retries are disabled; callers fall back instead.
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
	return &Client{
		client: sdk.NewClient(opts...),
		model:  o.Model,
		name:   hostLabel(o.BaseURL),
	}
}

// Name is derived from the API host: api.deepseek.com is "deepseek"
func (c *Client) Name() string { return c.name }

// Generate sends one chat completion
func (c *Client) Generate(ctx context.Context, p polish.Prompt) (polish.Completion, error) {
	params := sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(c.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(p.System),
			sdk.UserMessage(p.User),
		},
		Temperature: sdk.Float(p.Temperature),
	}
	if p.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(p.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return polish.Completion{}, llmerr.Wrap(c.name, err)
	}
	if len(resp.Choices) == 0 {
		return polish.Completion{}, llmerr.Empty(c.name)
	}
	msg := resp.Choices[0].Message
	return polish.Completion{Text: msg.Content, Reasoning: reasoning(msg.RawJSON())}, nil
}

// reasoning pulls reasoning_content, which DeepSeek R1 returns next to content
func reasoning(raw string) string {
	if raw == "" {
		return ""
	}
	var extra struct {
		ReasoningContent string `json:"reasoning_content"`
	}
	if err := json.Unmarshal([]byte(raw), &extra); err != nil {
		return ""
	}
	return extra.ReasoningContent
}

func hostLabel(base string) string {
	u, err := url.Parse(base)
	if base == "" || err != nil || u.Hostname() == "" {
		return "openai"
	}
	host := u.Hostname()
	if host == "localhost" || net.ParseIP(host) != nil {
		return "openai"
	}
	labels := strings.Split(host, ".")
	if labels[0] == "api" && len(labels) > 2 {
		labels = labels[1:]
	}
	return labels[0]
}
