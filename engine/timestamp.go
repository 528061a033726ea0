package engine

import (
	"fmt"
	"math"
)

// Timestamp orders packets within a stream. Values are opaque ticks; the
// engine defines their real-time meaning. A handful of sentinel values mark
// stream boundaries.
type Timestamp int64

const (
	// TimestampUnset marks a packet or bound that has no timestamp assigned.
	TimestampUnset Timestamp = math.MinInt64
	// TimestampPreStream is delivered before the first regular packet.
	TimestampPreStream Timestamp = math.MinInt64 + 1
	// TimestampMin is the smallest regular timestamp.
	TimestampMin Timestamp = math.MinInt64 + 2
	// TimestampMax is the largest regular timestamp.
	TimestampMax Timestamp = math.MaxInt64 - 2
	// TimestampPostStream is delivered after the last regular packet.
	TimestampPostStream Timestamp = math.MaxInt64 - 1
	// TimestampDone indicates no further packets will ever arrive.
	TimestampDone Timestamp = math.MaxInt64
)

// IsSpecial reports whether t is one of the sentinel values rather than a
// regular stream timestamp.
func (t Timestamp) IsSpecial() bool {
	return t < TimestampMin || t > TimestampMax
}

// Next returns the smallest timestamp strictly after t. Calling Next on
// TimestampDone is a programmer error.
func (t Timestamp) Next() Timestamp {
	if t >= TimestampDone {
		panic("engine: no timestamp after TimestampDone")
	}
	return t + 1
}

func (t Timestamp) String() string {
	switch t {
	case TimestampUnset:
		return "unset"
	case TimestampPreStream:
		return "prestream"
	case TimestampPostStream:
		return "poststream"
	case TimestampDone:
		return "done"
	}
	return fmt.Sprintf("%d", int64(t))
}
