package digest

// SplitOptions tune chunk partitioning.
type SplitOptions struct {
	// MinChunkLines is the smallest chunk the splitter will close early;
	// only the final chunk may be shorter.
	MinChunkLines int
	// OverlapLines is how many trailing lines of a closed chunk seed the
	// next one, so context is not sharply cut at a boundary.
	OverlapLines int
}

// DefaultSplitOptions returns the splitting defaults.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{MinChunkLines: 5, OverlapLines: 2}
}

const truncationMark = "…"

// SplitLines partitions lines into chunks whose estimated token count stays
// within budget. Input entirely within budget yields a single chunk equal to
// the input; empty input yields no chunks. A single line whose estimate
// alone exceeds the budget is truncated to fit the remaining budget rather
// than failing the whole request.
func SplitLines(lines []string, budget int, opts SplitOptions) [][]string {
	if len(lines) == 0 {
		return nil
	}
	if opts.MinChunkLines <= 0 {
		opts.MinChunkLines = DefaultSplitOptions().MinChunkLines
	}
	if opts.OverlapLines < 0 {
		opts.OverlapLines = 0
	}
	if EstimateTokens(lines) <= budget {
		return [][]string{append([]string(nil), lines...)}
	}

	var chunks [][]string
	var current []string
	running := 0
	for _, line := range lines {
		cost := EstimateLine(line)
		if running+cost > budget && len(current) >= opts.MinChunkLines {
			chunks = append(chunks, current)
			overlap := opts.OverlapLines
			if overlap > len(current) {
				overlap = len(current)
			}
			seed := append([]string(nil), current[len(current)-overlap:]...)
			current = seed
			running = EstimateTokens(seed)
		}
		if cost > budget {
			line = truncateToTokens(line, budget-running)
			cost = EstimateLine(line)
		}
		current = append(current, line)
		running += cost
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

// truncateToTokens cuts line so its estimate fits within remaining tokens,
// ending in a truncation mark.
func truncateToTokens(line string, remaining int) string {
	maxChars := remaining * charsPerToken
	if maxChars < 2 {
		maxChars = 2
	}
	runes := []rune(line)
	if len(runes) <= maxChars {
		return line
	}
	return string(runes[:maxChars-1]) + truncationMark
}
