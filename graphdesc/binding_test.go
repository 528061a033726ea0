package graphdesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinding_RoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected Binding
	}{
		{
			name:     "untagged",
			text:     "frames",
			expected: Binding{Name: "frames"},
		},
		{
			name:     "tagged",
			text:     "VIDEO:frames",
			expected: Binding{Tag: "VIDEO", Name: "frames"},
		},
		{
			name:     "indexed",
			text:     "VIDEO:2:frames",
			expected: Binding{Tag: "VIDEO", Index: 2, Indexed: true, Name: "frames"},
		},
		{
			name:     "indexed with empty tag",
			text:     ":0:frames",
			expected: Binding{Tag: "", Index: 0, Indexed: true, Name: "frames"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseBinding(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, b)
			assert.Equal(t, tc.text, b.String())
		})
	}
}

func TestParseBinding_Errors(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "missing name", text: "TAG:"},
		{name: "missing indexed name", text: "TAG:0:"},
		{name: "negative index", text: "TAG:-1:frames"},
		{name: "non-numeric index", text: "TAG:x:frames"},
		{name: "too many separators", text: "TAG:0:frames:extra"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBinding(tc.text)
			require.Error(t, err)
		})
	}
}
