package models

import (
	"context"
	"fmt"
	"strings"
)

// DummyLLM is a lightweight backend useful for local testing without API calls.
type DummyLLM struct {
	Prefix        string
	ContextTokens int
}

func NewDummyLLM(prefix string) *DummyLLM {
	if strings.TrimSpace(prefix) == "" {
		prefix = "Digest:"
	}
	return &DummyLLM{Prefix: prefix, ContextTokens: defaultContextTokens}
}

// Summarize answers deterministically with the line count and the last
// non-empty line, so tests can assert on it.
func (d *DummyLLM) Summarize(_ context.Context, lines []string, _ *Options) (string, error) {
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		if candidate := strings.TrimSpace(lines[i]); candidate != "" {
			last = candidate
			break
		}
	}
	if last == "" {
		last = "<empty conversation>"
	}
	return fmt.Sprintf("%s %d lines, ending with %q", d.Prefix, len(lines), last), nil
}

func (d *DummyLLM) MaxContextTokens() int { return d.ContextTokens }

var _ Backend = (*DummyLLM)(nil)
