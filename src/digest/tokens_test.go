package digest

import (
	"strings"
	"testing"
)

func TestEstimateTokensRoundsUp(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty input", nil, 0},
		{"empty line", []string{""}, 0},
		{"exact multiple", []string{"abcd"}, 1},
		{"one over", []string{"abcde"}, 2},
		{"hundred chars", []string{strings.Repeat("x", 100)}, 25},
		{"sum across lines", []string{"ab", "cd"}, 1},
		{"sum rounds up once", []string{"abc", "ab"}, 2},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.lines); got != tc.want {
			t.Errorf("%s: EstimateTokens = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestEstimateLineCountsRunes(t *testing.T) {
	// 4 multi-byte characters estimate as one token, not three.
	if got := EstimateLine("привет"); got != 2 {
		t.Fatalf("EstimateLine(привет) = %d, want 2", got)
	}
	if got := EstimateLine("日本語!"); got != 1 {
		t.Fatalf("EstimateLine(日本語!) = %d, want 1", got)
	}
}
