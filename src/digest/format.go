package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/recapd/recapd/src/store"
)

// FormatOptions tune how stored messages are rendered into lines.
type FormatOptions struct {
	// PreviewLimit caps the quoted excerpt of a reply target, in characters.
	PreviewLimit int
}

// DefaultFormatOptions returns the formatting defaults.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{PreviewLimit: 50}
}

// FormatMessages renders messages with the default options.
func FormatMessages(msgs []store.StoredMessage) []string {
	return FormatMessagesWith(msgs, DefaultFormatOptions())
}

// FormatMessagesWith renders each message as a single human-readable line,
// one line per message, preserving input order. Reply targets are resolved
// only within the given set; a reply whose target is absent is annotated
// "(reply)" without a preview.
func FormatMessagesWith(msgs []store.StoredMessage, opts FormatOptions) []string {
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = DefaultFormatOptions().PreviewLimit
	}
	byID := make(map[int64]store.StoredMessage, len(msgs))
	for _, m := range msgs {
		byID[m.MessageID] = m
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, formatMessage(m, byID, opts.PreviewLimit))
	}
	return lines
}

func formatMessage(m store.StoredMessage, byID map[int64]store.StoredMessage, previewLimit int) string {
	var b strings.Builder
	if m.ThreadID != nil {
		fmt.Fprintf(&b, "[Topic %d] ", *m.ThreadID)
	}
	b.WriteString("[")
	b.WriteString(time.UnixMilli(m.Timestamp).UTC().Format("15:04"))
	b.WriteString("] ")
	b.WriteString(m.Username)
	if m.ReplyToMessageID != nil {
		if target, ok := byID[*m.ReplyToMessageID]; ok {
			fmt.Fprintf(&b, " (reply to %s: \"%s\")", target.Username, truncateRunes(target.Text, previewLimit))
		} else {
			b.WriteString(" (reply)")
		}
	}
	if m.ForwardFromName != "" {
		b.WriteString(" forwarded from ")
		b.WriteString(m.ForwardFromName)
	}
	b.WriteString(": ")
	b.WriteString(m.Text)
	return b.String()
}

// truncateRunes caps s at limit characters, appending an ellipsis when cut.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
