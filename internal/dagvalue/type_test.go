package dagvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCompatible_Reflexive(t *testing.T) {
	t.Parallel()

	types := []Type{
		Null, Integer, Float, Text, Json,
		List(Integer),
		List(List(Text)),
		Channel(Integer),
		UnionOf(Integer, Text),
	}

	for _, ty := range types {
		assert.Truef(t, IsCompatible(ty, ty), "expected %s to be reflexively compatible", ty)
	}
}

func TestIsCompatible_Union(t *testing.T) {
	t.Parallel()

	target := UnionOf(Integer, Text)

	assert.True(t, IsCompatible(Integer, target))
	assert.True(t, IsCompatible(Text, target))
	assert.False(t, IsCompatible(Float, target))

	// Not symmetric: the union itself is not compatible with one of its arms.
	assert.False(t, IsCompatible(target, Integer))
}

func TestIsCompatible_List(t *testing.T) {
	t.Parallel()

	require.True(t, IsCompatible(List(Integer), List(Integer)))
	require.True(t, IsCompatible(List(List(Text)), List(List(Text))))
	require.False(t, IsCompatible(List(Integer), List(Text)))
	require.False(t, IsCompatible(List(Integer), Integer))
}

func TestIsCompatible_NestedUnionInList(t *testing.T) {
	t.Parallel()

	source := List(Integer)
	target := List(UnionOf(Integer, Text))
	assert.True(t, IsCompatible(source, target))
}

func TestIsCompatible_Incompatible(t *testing.T) {
	t.Parallel()

	assert.False(t, IsCompatible(Integer, Text))
	assert.False(t, IsCompatible(Json, Integer))
	assert.False(t, IsCompatible(Null, Integer))
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Integer", Integer.String())
	assert.Equal(t, "List(Text)", List(Text).String())
	assert.Contains(t, UnionOf(Integer, Text).String(), "Union(")
}
