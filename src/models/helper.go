package models

import (
	"context"
	"fmt"
	"strings"
)

const summaryInstruction = "Summarize the following chat conversation concisely. Mention the main topics discussed and who raised them. Reply in the language the conversation is written in."

// defaultContextTokens is assumed when a model is missing from a provider's
// context table.
const defaultContextTokens = 8192

// NewBackend returns a concrete Backend for the named provider.
func NewBackend(ctx context.Context, provider string, model string) (Backend, error) {
	switch provider {
	case "openai":
		return NewOpenAILLM(model), nil
	case "gemini", "google":
		return NewGeminiLLM(ctx, model)
	case "ollama":
		return NewOllamaLLM(model)
	case "anthropic", "claude":
		return NewAnthropicLLM(model), nil
	case "dummy":
		return NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// buildPrompt prefixes the summarization instruction and joins the
// conversation lines into one request body.
func buildPrompt(lines []string) string {
	var b strings.Builder
	size := len(summaryInstruction) + 2
	for _, line := range lines {
		size += len(line) + 1
	}
	b.Grow(size)
	b.WriteString(summaryInstruction)
	b.WriteString("\n\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}

// contextTokensFor resolves a model's context window from a provider table,
// matching by prefix so dated snapshots ("gpt-4o-2024-08-06") still resolve.
func contextTokensFor(table map[string]int, model string, fallback int) int {
	if tokens, ok := table[model]; ok {
		return tokens
	}
	best, bestLen := fallback, 0
	for name, tokens := range table {
		if strings.HasPrefix(model, name) && len(name) > bestLen {
			best, bestLen = tokens, len(name)
		}
	}
	return best
}
