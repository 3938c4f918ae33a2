package models

import (
	"context"
	"errors"
	"os"

	"github.com/sashabaranov/go-openai"
)

type OpenAILLM struct {
	Client        *openai.Client
	Model         string
	ContextTokens int
}

var openaiContextTokens = map[string]int{
	"gpt-4o":        128000,
	"gpt-4o-mini":   128000,
	"gpt-4-turbo":   128000,
	"gpt-4":         8192,
	"gpt-3.5-turbo": 16385,
}

// NewOpenAILLM constructs a client. It reads OPENAI_API_KEY from the env.
func NewOpenAILLM(model string) *OpenAILLM {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_KEY") // fallback
	}
	client := openai.NewClient(apiKey)
	return &OpenAILLM{
		Client:        client,
		Model:         model,
		ContextTokens: contextTokensFor(openaiContextTokens, model, defaultContextTokens),
	}
}

func (o *OpenAILLM) Summarize(ctx context.Context, lines []string, opts *Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(lines),
		}},
	}
	if opts != nil {
		req.MaxTokens = opts.MaxTokens
		req.Temperature = opts.Temperature
	}

	resp, err := o.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAILLM) MaxContextTokens() int { return o.ContextTokens }

var _ Backend = (*OpenAILLM)(nil)
