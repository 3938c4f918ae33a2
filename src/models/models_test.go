package models

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/recapd/recapd/src/cache"
)

func TestDummyLLMIsDeterministic(t *testing.T) {
	d := NewDummyLLM("")
	lines := []string{"[10:00] alice: hi", "", "[10:01] bob: bye"}

	first, err := d.Summarize(context.Background(), lines, nil)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	second, _ := d.Summarize(context.Background(), lines, nil)
	if first != second {
		t.Fatalf("dummy output not deterministic: %q vs %q", first, second)
	}
	if !strings.Contains(first, "bob: bye") {
		t.Fatalf("expected last non-empty line in output, got %q", first)
	}
}

func TestNewBackendUnknownProvider(t *testing.T) {
	if _, err := NewBackend(context.Background(), "watson", "any"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewBackendDummy(t *testing.T) {
	b, err := NewBackend(context.Background(), "dummy", "")
	if err != nil {
		t.Fatalf("NewBackend returned error: %v", err)
	}
	if b.MaxContextTokens() <= 0 {
		t.Fatalf("expected positive context size, got %d", b.MaxContextTokens())
	}
}

type countingBackend struct {
	calls int
	fail  error
}

func (c *countingBackend) Summarize(_ context.Context, lines []string, _ *Options) (string, error) {
	c.calls++
	if c.fail != nil {
		return "", c.fail
	}
	return "summary of " + lines[0], nil
}

func (c *countingBackend) MaxContextTokens() int { return 4096 }

func TestCachedBackendAvoidsRepeatCalls(t *testing.T) {
	inner := &countingBackend{}
	cached := NewCachedBackend(inner, cache.NewLRUCache(8, time.Minute))
	ctx := context.Background()
	lines := []string{"[10:00] alice: hi"}

	first, err := cached.Summarize(ctx, lines, nil)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	second, err := cached.Summarize(ctx, lines, nil)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if first != second {
		t.Fatalf("cached result differs: %q vs %q", first, second)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 underlying call, got %d", inner.calls)
	}
}

func TestCachedBackendKeyIncludesOptions(t *testing.T) {
	inner := &countingBackend{}
	cached := NewCachedBackend(inner, cache.NewLRUCache(8, time.Minute))
	ctx := context.Background()
	lines := []string{"[10:00] alice: hi"}

	if _, err := cached.Summarize(ctx, lines, nil); err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if _, err := cached.Summarize(ctx, lines, &Options{MaxTokens: 100}); err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected different options to miss the cache, got %d calls", inner.calls)
	}
}

func TestCachedBackendDoesNotCacheErrors(t *testing.T) {
	wantErr := errors.New("backend down")
	inner := &countingBackend{fail: wantErr}
	cached := NewCachedBackend(inner, cache.NewLRUCache(8, time.Minute))
	ctx := context.Background()

	if _, err := cached.Summarize(ctx, []string{"x"}, nil); !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	inner.fail = nil
	if _, err := cached.Summarize(ctx, []string{"x"}, nil); err != nil {
		t.Fatalf("expected retry to reach backend, got %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 underlying calls, got %d", inner.calls)
	}
}

func TestContextTokensForPrefixes(t *testing.T) {
	if got := contextTokensFor(openaiContextTokens, "gpt-4o-2024-08-06", defaultContextTokens); got != 128000 {
		t.Fatalf("prefix match failed: got %d", got)
	}
	if got := contextTokensFor(openaiContextTokens, "experimental", 1234); got != 1234 {
		t.Fatalf("fallback failed: got %d", got)
	}
}

func TestBuildPromptJoinsLines(t *testing.T) {
	prompt := buildPrompt([]string{"a", "b"})
	if !strings.HasSuffix(prompt, "a\nb") {
		t.Fatalf("unexpected prompt tail: %q", prompt)
	}
	if !strings.Contains(prompt, "Summarize") {
		t.Fatalf("prompt missing instruction: %q", prompt)
	}
}
