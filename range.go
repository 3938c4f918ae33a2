package recapd

import "fmt"

type rangeKind int

const (
	rangeTime rangeKind = iota
	rangeCount
)

// Range selects which messages a digest covers: either a trailing time
// window or a trailing message count. The two constructors are the only way
// to build one, so a range is always exactly one of the two.
type Range struct {
	kind  rangeKind
	value int
}

// LastHours selects all messages from the past h hours.
func LastHours(h int) Range {
	return Range{kind: rangeTime, value: h}
}

// LastMessages selects the n most recent messages.
func LastMessages(n int) Range {
	return Range{kind: rangeCount, value: n}
}

func (r Range) String() string {
	if r.kind == rangeTime {
		return fmt.Sprintf("%dh", r.value)
	}
	return fmt.Sprintf("%dmsg", r.value)
}
