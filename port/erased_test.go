package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowgrid/engine"
	"github.com/zclconf/go-cty/cty"
)

func TestAnyVal(t *testing.T) {
	v := AnyOf("payload")

	require.True(t, Has[string](v))
	require.False(t, Has[int](v))

	s, err := Get[string](v)
	require.NoError(t, err)
	assert.Equal(t, "payload", s)

	_, err = Get[int](v)
	require.Error(t, err)

	assert.Equal(t, "payload", MustGet[string](v))
	assert.Panics(t, func() { MustGet[int](v) })
}

func TestOneOf2(t *testing.T) {
	t.Run("declares its alternatives", func(t *testing.T) {
		typ, oneOf := OneOf2[string, int64]{}.payloadType()
		assert.True(t, typ.Equals(cty.DynamicPseudoType))
		require.Len(t, oneOf, 2)
		assert.True(t, oneOf[0].Equals(cty.String))
		assert.True(t, oneOf[1].Equals(cty.Number))
	})

	t.Run("visit dispatches on the active alternative", func(t *testing.T) {
		v := FirstOf2[string, int64]("hello")

		var got string
		err := v.Visit(
			func(s string) { got = s },
			func(i int64) { t.Fatal("wrong alternative") },
		)
		require.NoError(t, err)
		assert.Equal(t, "hello", got)

		var gotInt int64
		err = SecondOf2[string, int64](7).Visit(
			func(s string) { t.Fatal("wrong alternative") },
			func(i int64) { gotInt = i },
		)
		require.NoError(t, err)
		assert.Equal(t, int64(7), gotInt)
	})

	t.Run("no matching alternative", func(t *testing.T) {
		v := OneOf2[string, int64]{p: engine.NewPacket(true)}
		err := v.Visit(func(string) {}, func(int64) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "matches no alternative")
	})

	t.Run("visit any", func(t *testing.T) {
		var got any
		require.NoError(t, FirstOf2[string, int64]("x").VisitAny(func(v any) { got = v }))
		assert.Equal(t, "x", got)

		require.Error(t, OneOf2[string, int64]{}.VisitAny(func(any) {}))
	})
}

func TestOneOf3(t *testing.T) {
	var got bool
	err := ThirdOf3[string, int64, bool](true).Visit(
		func(string) { t.Fatal("wrong alternative") },
		func(int64) { t.Fatal("wrong alternative") },
		func(b bool) { got = b },
	)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestPacketOf(t *testing.T) {
	v := FirstOf2[string, int64]("hello")

	pk, err := PacketOf[string](v)
	require.NoError(t, err)
	assert.Equal(t, "hello", pk.Value())

	_, err = PacketOf[int64](v)
	require.Error(t, err)
}
