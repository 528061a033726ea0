package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func key(kind Kind, tag string, index int) PortKey {
	return PortKey{Kind: kind, Tag: tag, Index: index}
}

func TestContractSpec_AddPort(t *testing.T) {
	s := NewContractSpec("Adder")

	require.NoError(t, s.AddPort(PortSpec{Key: key(KindInput, "IN", 0), Type: cty.Number}))
	require.NoError(t, s.AddPort(PortSpec{Key: key(KindInput, "IN", 1), Type: cty.Number}))
	require.NoError(t, s.AddPort(PortSpec{Key: key(KindOutput, "IN", 0), Type: cty.Number}))

	err := s.AddPort(PortSpec{Key: key(KindInput, "IN", 0), Type: cty.String})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	assert.Len(t, s.Ports(), 3)
	assert.Equal(t, 2, s.Count(KindInput, "IN"))
}

func TestContractSpec_ConnectedCount(t *testing.T) {
	s := NewContractSpec("Mux")
	assert.Equal(t, 0, s.ConnectedCount(KindInput, "IN"))

	s.MarkConnected(key(KindInput, "IN", 0))
	s.MarkConnected(key(KindInput, "IN", 2))
	s.MarkConnected(key(KindOutput, "OUT", 0))

	// Count covers the highest wired index, holes included.
	assert.Equal(t, 3, s.ConnectedCount(KindInput, "IN"))
	assert.Equal(t, 1, s.ConnectedCount(KindOutput, "OUT"))
	assert.True(t, s.Connected(key(KindInput, "IN", 2)))
	assert.False(t, s.Connected(key(KindInput, "IN", 1)))
}

func TestContractSpec_Resolve(t *testing.T) {
	t.Run("dynamic side adopts the concrete type", func(t *testing.T) {
		s := NewContractSpec("Passthrough")
		in := key(KindInput, "IN", 0)
		out := key(KindOutput, "OUT", 0)
		require.NoError(t, s.AddPort(PortSpec{Key: in, Type: cty.String}))
		require.NoError(t, s.AddPort(PortSpec{Key: out, Type: cty.DynamicPseudoType}))
		s.SetSameAs(out, in)

		require.NoError(t, s.Resolve())
		ps, ok := s.Port(out)
		require.True(t, ok)
		assert.True(t, ps.Type.Equals(cty.String))
	})

	t.Run("matching concrete types resolve", func(t *testing.T) {
		s := NewContractSpec("Passthrough")
		in := key(KindInput, "IN", 0)
		out := key(KindOutput, "OUT", 0)
		require.NoError(t, s.AddPort(PortSpec{Key: in, Type: cty.Number}))
		require.NoError(t, s.AddPort(PortSpec{Key: out, Type: cty.Number}))
		s.SetSameAs(out, in)

		require.NoError(t, s.Resolve())
	})

	t.Run("mismatched concrete types fail", func(t *testing.T) {
		s := NewContractSpec("Passthrough")
		in := key(KindInput, "IN", 0)
		out := key(KindOutput, "OUT", 0)
		require.NoError(t, s.AddPort(PortSpec{Key: in, Type: cty.String}))
		require.NoError(t, s.AddPort(PortSpec{Key: out, Type: cty.Number}))
		s.SetSameAs(out, in)

		err := s.Resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})

	t.Run("all violations are reported together", func(t *testing.T) {
		s := NewContractSpec("Broken")
		a := key(KindInput, "A", 0)
		b := key(KindInput, "B", 0)
		require.NoError(t, s.AddPort(PortSpec{Key: a, Type: cty.String}))
		require.NoError(t, s.AddPort(PortSpec{Key: b, Type: cty.Number}))
		s.SetSameAs(a, b)
		s.SetSameAs(a, key(KindInput, "MISSING", 0))

		err := s.Resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
		assert.Contains(t, err.Error(), "not a registered port")
	})
}
