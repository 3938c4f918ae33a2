package models

import "context"

// Options tune a single summarization call. A nil Options means backend
// defaults.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Backend is the text-generation capability the digest engine depends on.
// Summarize sends the given conversation lines in one request and returns
// the model's text. MaxContextTokens reports the model's input context size
// so callers can budget their payloads.
type Backend interface {
	Summarize(ctx context.Context, lines []string, opts *Options) (string, error)
	MaxContextTokens() int
}
