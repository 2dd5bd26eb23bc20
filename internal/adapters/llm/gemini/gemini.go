// Package gemini implements polish.Generator on Google's Gemini API
package gemini

import (
	"context"
	"strings"

	"textpolish/internal/adapters/llm/llmerr"
	"textpolish/internal/core/polish"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Options configures the client
type Options struct {
	APIKey string
	Model  string
}

// Client implements polish.Generator and io.Closer
type Client struct {
	cl    *genai.Client
	model string
}

// New dials the API; Close releases the connection
func New(ctx context.Context, o Options) (*Client, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(strings.TrimSpace(o.APIKey)))
	if err != nil {
		return nil, err
	}
	return &Client{cl: cl, model: strings.TrimSpace(o.Model)}, nil
}

// Name returns "gemini"
func (c *Client) Name() string { return "gemini" }

// Close releases the client
func (c *Client) Close() error { return c.cl.Close() }

// Generate runs one GenerateContent call
func (c *Client) Generate(ctx context.Context, p polish.Prompt) (polish.Completion, error) {
	m := c.cl.GenerativeModel(c.model)
	if p.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	}
	m.SetTemperature(float32(p.Temperature))
	if p.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(p.MaxTokens))
	}

	resp, err := m.GenerateContent(ctx, genai.Text(p.User))
	if err != nil {
		return polish.Completion{}, llmerr.Wrap("gemini", err)
	}
	txt := joinText(resp)
	if txt == "" {
		return polish.Completion{}, llmerr.Empty("gemini")
	}
	return polish.Completion{Text: txt}, nil
}

// joinText concatenates the text parts of the first candidate with content
func joinText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}
