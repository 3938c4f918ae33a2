package recapd

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/recapd/recapd/src/digest"
	"github.com/recapd/recapd/src/models"
	"github.com/recapd/recapd/src/store"
)

// ErrNoMessages is returned when the requested range holds nothing to
// summarize, so callers can explain the empty result instead of showing an
// empty digest.
var ErrNoMessages = errors.New("no messages in the requested range")

// defaultSafetyTokens is the context share reserved for the instruction and
// the model's reply.
const defaultSafetyTokens = 500

// Options configure a new Engine.
type Options struct {
	Store   store.MessageStore
	Backend models.Backend

	// SafetyTokens is subtracted from the backend's context size to form
	// the usable budget. Zero means the default.
	SafetyTokens int
	Split        digest.SplitOptions
	Format       digest.FormatOptions
	// Call tunes every backend call; nil means backend defaults.
	Call *models.Options
	// Now is a clock seam for tests; nil means time.Now.
	Now func() time.Time
}

// Engine turns a chat's stored messages into a natural-language digest. When
// the formatted conversation exceeds the backend's usable context it falls
// back to hierarchical summarization: split into overlapping chunks,
// summarize each, then merge the partial summaries.
type Engine struct {
	store        store.MessageStore
	backend      models.Backend
	safetyTokens int
	split        digest.SplitOptions
	format       digest.FormatOptions
	call         *models.Options
	now          func() time.Time
}

// New creates an Engine with the provided options.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.New("engine requires a message store")
	}
	if opts.Backend == nil {
		return nil, errors.New("engine requires a text-generation backend")
	}
	safety := opts.SafetyTokens
	if safety <= 0 {
		safety = defaultSafetyTokens
	}
	split := opts.Split
	if split.MinChunkLines <= 0 {
		split = digest.DefaultSplitOptions()
	}
	format := opts.Format
	if format.PreviewLimit <= 0 {
		format = digest.DefaultFormatOptions()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:        opts.Store,
		backend:      opts.Backend,
		safetyTokens: safety,
		split:        split,
		format:       format,
		call:         opts.Call,
		now:          now,
	}, nil
}

// Digest runs one summarization request for a single chat and returns the
// final digest text. Backend errors propagate unchanged; an empty range
// returns ErrNoMessages.
func (e *Engine) Digest(ctx context.Context, chatID int64, r Range) (string, error) {
	msgs, err := e.fetch(ctx, chatID, r)
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "", ErrNoMessages
	}

	lines := digest.FormatMessagesWith(msgs, e.format)
	budget := e.usableBudget()
	if digest.EstimateTokens(lines) <= budget {
		return e.backend.Summarize(ctx, lines, e.call)
	}
	return e.hierarchical(ctx, lines, budget)
}

// fetch translates the range into a store query and normalizes the result
// to ascending timestamp order.
func (e *Engine) fetch(ctx context.Context, chatID int64, r Range) ([]store.StoredMessage, error) {
	q := store.MessageQuery{ChatID: chatID}
	switch r.kind {
	case rangeTime:
		end := e.now()
		start := end.Add(-time.Duration(r.value) * time.Hour)
		q.StartTime = start.UnixMilli()
		q.EndTime = end.UnixMilli()
	case rangeCount:
		q.Limit = r.value
	}

	msgs, err := e.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	// Count queries may come back most-recent-first; formatting requires
	// chronological order either way.
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp < msgs[j].Timestamp })
	return msgs, nil
}

func (e *Engine) usableBudget() int {
	budget := e.backend.MaxContextTokens() - e.safetyTokens
	if budget < 1 {
		budget = 1
	}
	return budget
}
