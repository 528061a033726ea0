package graphdesc

import (
	"fmt"
	"strconv"
	"strings"
)

// Binding ties one port address to a stream or side-packet name. The
// textual form has three shapes:
//
//	name            untagged port
//	TAG:name        tagged port with a single instance
//	TAG:index:name  repeated port, index always explicit
type Binding struct {
	Tag     string
	Index   int
	Indexed bool
	Name    string
}

// String renders the binding in its canonical textual form.
func (b Binding) String() string {
	if b.Tag == "" && !b.Indexed {
		return b.Name
	}
	if b.Indexed {
		return fmt.Sprintf("%s:%d:%s", b.Tag, b.Index, b.Name)
	}
	return fmt.Sprintf("%s:%s", b.Tag, b.Name)
}

// ParseBinding parses any of the three textual binding forms.
func ParseBinding(s string) (Binding, error) {
	if s == "" {
		return Binding{}, fmt.Errorf("graphdesc: empty binding")
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		return Binding{Name: parts[0]}, nil
	case 2:
		if parts[1] == "" {
			return Binding{}, fmt.Errorf("graphdesc: binding %q has no stream name", s)
		}
		return Binding{Tag: parts[0], Name: parts[1]}, nil
	case 3:
		index, err := strconv.Atoi(parts[1])
		if err != nil || index < 0 {
			return Binding{}, fmt.Errorf("graphdesc: binding %q has invalid index %q", s, parts[1])
		}
		if parts[2] == "" {
			return Binding{}, fmt.Errorf("graphdesc: binding %q has no stream name", s)
		}
		return Binding{Tag: parts[0], Index: index, Indexed: true, Name: parts[2]}, nil
	}
	return Binding{}, fmt.Errorf("graphdesc: malformed binding %q", s)
}
