package recapd

import (
	"context"
	"fmt"

	"github.com/recapd/recapd/src/digest"
)

const combinePreamble = "The following are partial summaries of different parts of one long conversation. Merge them into a single cohesive summary of the whole conversation."

// hierarchical summarizes an over-budget conversation in two phases:
// summarize each chunk, then combine the partial summaries. If splitting
// collapses to a single chunk it degenerates to one direct call.
func (e *Engine) hierarchical(ctx context.Context, lines []string, budget int) (string, error) {
	chunks := digest.SplitLines(lines, budget, e.split)
	if len(chunks) == 1 {
		return e.backend.Summarize(ctx, chunks[0], e.call)
	}

	summaries, err := e.summarizeChunks(ctx, chunks)
	if err != nil {
		return "", err
	}
	return e.combine(ctx, summaries)
}

// summarizeChunks issues one backend call per chunk, strictly in chunk
// order. Sequencing is deliberate: it bounds the outbound request rate and
// keeps chunk i summarized before chunk i+1. The first failure aborts the
// whole operation; partial results are discarded.
func (e *Engine) summarizeChunks(ctx context.Context, chunks [][]string) ([]string, error) {
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		payload := make([]string, 0, len(chunk)+1)
		payload = append(payload, fmt.Sprintf("[Part %d of %d]", i+1, len(chunks)))
		payload = append(payload, chunk...)

		out, err := e.backend.Summarize(ctx, payload, e.call)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, fmt.Sprintf("Part %d: %s", i+1, out))
	}
	return summaries, nil
}

// combine asks the backend to merge the labeled chunk summaries into one
// digest and returns its response verbatim.
func (e *Engine) combine(ctx context.Context, summaries []string) (string, error) {
	payload := make([]string, 0, len(summaries)+1)
	payload = append(payload, combinePreamble)
	payload = append(payload, summaries...)
	return e.backend.Summarize(ctx, payload, e.call)
}
