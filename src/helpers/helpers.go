package helpers

import (
	"strconv"
	"strings"
)

// ParseCSVList splits a comma separated flag value into trimmed, non-empty
// items.
func ParseCSVList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseChatIDs parses a comma separated list of chat identifiers.
func ParseChatIDs(raw string) ([]int64, error) {
	items := ParseCSVList(raw)
	if len(items) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
