package recapd

import (
	"context"

	"github.com/recapd/recapd/src/concurrent"
)

// BatchResult pairs a chat with its digest or per-chat failure.
type BatchResult struct {
	ChatID int64
	Digest string
	Err    error
}

// DigestAll produces digests for several chats, fanning out across chats
// with bounded concurrency. Each per-chat request keeps its internal
// sequential call policy. Per-chat failures (including ErrNoMessages) are
// reported in the result rather than aborting the batch; only context
// cancellation returns an error.
func (e *Engine) DigestAll(ctx context.Context, chatIDs []int64, r Range, maxConcurrency int) ([]BatchResult, error) {
	return concurrent.ParallelMap(ctx, chatIDs, func(chatID int64) (BatchResult, error) {
		text, err := e.Digest(ctx, chatID, r)
		return BatchResult{ChatID: chatID, Digest: text, Err: err}, nil
	}, maxConcurrency)
}
