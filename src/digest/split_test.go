package digest

import (
	"strings"
	"testing"
)

func TestSplitEmptyInput(t *testing.T) {
	if chunks := SplitLines(nil, 100, DefaultSplitOptions()); chunks != nil {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func TestSplitWithinBudgetSingleChunk(t *testing.T) {
	lines := []string{"one", "two", "three"}
	chunks := SplitLines(lines, 100, DefaultSplitOptions())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0]) != 3 {
		t.Fatalf("expected chunk equal to input, got %v", chunks[0])
	}
	for i := range lines {
		if chunks[0][i] != lines[i] {
			t.Fatalf("chunk differs from input at %d: %q", i, chunks[0][i])
		}
	}
}

func TestSplitOverBudget(t *testing.T) {
	// 30 lines of 10 tokens each against a 100-token budget.
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = strings.Repeat("x", 39) + string(rune('a'+i%26))
	}
	opts := DefaultSplitOptions()
	budget := 100
	chunks := SplitLines(lines, budget, opts)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) == 0 {
			t.Fatalf("chunk %d is empty", i)
		}
		if got := EstimateTokens(chunk); got > budget {
			t.Errorf("chunk %d estimates %d tokens, over budget %d", i, got, budget)
		}
		if i < len(chunks)-1 && len(chunk) < opts.MinChunkLines {
			t.Errorf("chunk %d has %d lines, below minimum %d", i, len(chunk), opts.MinChunkLines)
		}
	}

	// Overlap: each chunk after the first starts with the previous chunk's
	// trailing lines.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		for j := 0; j < opts.OverlapLines; j++ {
			want := prev[len(prev)-opts.OverlapLines+j]
			if chunks[i][j] != want {
				t.Errorf("chunk %d line %d = %q, want overlap %q", i, j, chunks[i][j], want)
			}
		}
	}

	// No line is dropped.
	seen := make(map[string]bool)
	for _, chunk := range chunks {
		for _, line := range chunk {
			seen[line] = true
		}
	}
	for _, line := range lines {
		if !seen[line] {
			t.Errorf("line %q missing from all chunks", line)
		}
	}
}

func TestSplitTruncatesOversizedLine(t *testing.T) {
	budget := 10
	short := "aaaa"
	long := strings.Repeat("b", 100) // 25 tokens, over the whole budget
	chunks := SplitLines([]string{short, long}, budget, DefaultSplitOptions())

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	got := chunks[0]
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got[0] != short {
		t.Fatalf("short line altered: %q", got[0])
	}
	if !strings.HasSuffix(got[1], truncationMark) {
		t.Fatalf("oversized line not marked truncated: %q", got[1])
	}
	if est := EstimateTokens(got); est > budget {
		t.Fatalf("truncated chunk estimates %d tokens, over budget %d", est, budget)
	}
}

func TestSplitOnlyLastChunkShort(t *testing.T) {
	// 17 lines of 10 tokens against a 50-token budget: chunks of 5 lines
	// (3 new + 2 overlap after the first), last chunk short.
	lines := make([]string, 17)
	for i := range lines {
		lines[i] = strings.Repeat("y", 40)
	}
	opts := DefaultSplitOptions()
	chunks := SplitLines(lines, 50, opts)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk) < opts.MinChunkLines {
			t.Errorf("non-final chunk %d has %d lines", i, len(chunk))
		}
	}
}
