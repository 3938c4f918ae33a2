package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

type OllamaLLM struct {
	Client        *ollama.Client
	Model         string
	ContextTokens int
}

var ollamaContextTokens = map[string]int{
	"llama3":  8192,
	"llama2":  4096,
	"mistral": 8192,
	"qwen2":   32768,
}

func NewOllamaLLM(model string) (*OllamaLLM, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}

	httpClient := &http.Client{
		Timeout: 120 * time.Second,
	}

	c := ollama.NewClient(u, httpClient)
	return &OllamaLLM{
		Client:        c,
		Model:         model,
		ContextTokens: contextTokensFor(ollamaContextTokens, model, defaultContextTokens),
	}, nil
}

func (o *OllamaLLM) Summarize(ctx context.Context, lines []string, opts *Options) (string, error) {
	req := &ollama.GenerateRequest{
		Model:  o.Model,
		Prompt: buildPrompt(lines),
	}
	if opts != nil {
		options := map[string]any{}
		if opts.MaxTokens > 0 {
			options["num_predict"] = opts.MaxTokens
		}
		if opts.Temperature > 0 {
			options["temperature"] = opts.Temperature
		}
		if len(options) > 0 {
			req.Options = options
		}
	}

	var text strings.Builder
	if err := o.Client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		if gr.Response != "" {
			text.WriteString(gr.Response)
		}
		return nil
	}); err != nil {
		return "", err
	}
	return text.String(), nil
}

func (o *OllamaLLM) MaxContextTokens() int { return o.ContextTokens }

var _ Backend = (*OllamaLLM)(nil)
