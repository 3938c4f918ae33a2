package digest

import "unicode/utf8"

// charsPerToken is a deliberate approximation: most BPE tokenizers land
// around four characters per token for conversational text. Estimating
// locally avoids a backend round-trip just to size the problem.
const charsPerToken = 4

// EstimateTokens returns ceil(total characters / 4) across all lines.
// An empty input estimates to zero.
func EstimateTokens(lines []string) int {
	total := 0
	for _, line := range lines {
		total += utf8.RuneCountInString(line)
	}
	return (total + charsPerToken - 1) / charsPerToken
}

// EstimateLine estimates a single line, rounding up so running per-line
// sums stay conservative against budget overflow.
func EstimateLine(line string) int {
	return (utf8.RuneCountInString(line) + charsPerToken - 1) / charsPerToken
}
