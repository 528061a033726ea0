package port

// Stream is a handle to a named data stream produced during graph
// construction: by a node output, or by the graph's own input boundary.
// The type parameter ties producer and consumer payload types together at
// compile time.
type Stream[T any] struct {
	s *streamState
}

type streamState struct {
	name string
}

// NewStream wraps an already-named stream, typically one of the graph's
// external inputs.
func NewStream[T any](name string) Stream[T] {
	return Stream[T]{s: &streamState{name: name}}
}

// Name returns the stream's name in the graph description.
func (s Stream[T]) Name() string {
	if s.s == nil {
		return ""
	}
	return s.s.name
}

func (s Stream[T]) mustName() string {
	if s.s == nil || s.s.name == "" {
		panic("port: use of a zero Stream handle; obtain streams from an output or the graph boundary")
	}
	return s.s.name
}

// Side is a handle to a named side packet: a single value delivered once,
// with no timestamp semantics.
type Side[T any] struct {
	s *streamState
}

// NewSide wraps an already-named side packet.
func NewSide[T any](name string) Side[T] {
	return Side[T]{s: &streamState{name: name}}
}

// Name returns the side packet's name in the graph description.
func (s Side[T]) Name() string {
	if s.s == nil {
		return ""
	}
	return s.s.name
}

func (s Side[T]) mustName() string {
	if s.s == nil || s.s.name == "" {
		panic("port: use of a zero Side handle; obtain side packets from a side output or the graph boundary")
	}
	return s.s.name
}
