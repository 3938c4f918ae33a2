package models

import (
	"context"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicLLM implements Backend using Anthropic's Messages API.
type AnthropicLLM struct {
	Client        *anthropic.Client
	Model         string
	MaxTokens     int
	ContextTokens int
}

var anthropicContextTokens = map[string]int{
	"claude-3-5-sonnet": 200000,
	"claude-3-5-haiku":  200000,
	"claude-3-opus":     200000,
	"claude-3-haiku":    200000,
}

// NewAnthropicLLM constructs a client. It reads ANTHROPIC_API_KEY from the env.
func NewAnthropicLLM(model string) *AnthropicLLM {
	key := os.Getenv("ANTHROPIC_API_KEY")
	cl := anthropic.NewClient(
		anthropicopt.WithAPIKey(key),
	)
	return &AnthropicLLM{
		Client:        &cl,
		Model:         model, // e.g. "claude-3-5-sonnet-latest"
		MaxTokens:     1024,
		ContextTokens: contextTokensFor(anthropicContextTokens, model, 200000),
	}
}

// Summarize performs a single-turn completion and returns concatenated text.
func (a *AnthropicLLM) Summarize(ctx context.Context, lines []string, opts *Options) (string, error) {
	maxTokens := a.MaxTokens
	params := anthropic.MessageNewParams{
		Model: anthropic.Model(a.Model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(lines))),
		},
	}
	if opts != nil {
		if opts.MaxTokens > 0 {
			maxTokens = opts.MaxTokens
		}
		if opts.Temperature > 0 {
			params.Temperature = anthropic.Float(float64(opts.Temperature))
		}
	}
	params.MaxTokens = int64(maxTokens)

	msg, err := a.Client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String(), nil
}

func (a *AnthropicLLM) MaxContextTokens() int { return a.ContextTokens }

var _ Backend = (*AnthropicLLM)(nil)
