package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiLLM struct {
	Client        *genai.Client
	Model         string
	ContextTokens int
}

var geminiContextTokens = map[string]int{
	"gemini-1.5-pro":   2000000,
	"gemini-1.5-flash": 1000000,
	"gemini-2.0-flash": 1000000,
	"gemini-2.5-pro":   1000000,
}

func NewGeminiLLM(ctx context.Context, model string) (*GeminiLLM, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("missing GOOGLE_API_KEY or GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiLLM{
		Client:        client,
		Model:         model,
		ContextTokens: contextTokensFor(geminiContextTokens, model, 1000000),
	}, nil
}

func (g *GeminiLLM) Summarize(ctx context.Context, lines []string, opts *Options) (string, error) {
	model := g.Client.GenerativeModel(g.Model)
	if opts != nil {
		if opts.MaxTokens > 0 {
			model.SetMaxOutputTokens(int32(opts.MaxTokens))
		}
		if opts.Temperature > 0 {
			model.SetTemperature(opts.Temperature)
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(lines)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String(), nil
}

func (g *GeminiLLM) MaxContextTokens() int { return g.ContextTokens }

var _ Backend = (*GeminiLLM)(nil)
