package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumFloatAbsencePropagation(t *testing.T) {
	assert.Nil(t, SumFloat(nil, nil))

	got := SumFloat(nil, Float(5))
	require.NotNil(t, got)
	assert.Equal(t, 5.0, *got)

	got = SumFloat(Float(3), Float(4))
	require.NotNil(t, got)
	assert.Equal(t, 7.0, *got)
}

func TestSumFloatRounding(t *testing.T) {
	got := SumFloat(Float(0.105), Float(0.001))
	require.NotNil(t, got)
	assert.InDelta(t, 0.11, *got, 0.001)
}

func TestSumFloatCommutativeAssociative(t *testing.T) {
	a, b, c := Float(1.11), Float(2.22), (*float64)(nil)

	ab := SumFloat(a, b)
	ba := SumFloat(b, a)
	require.NotNil(t, ab)
	require.NotNil(t, ba)
	assert.InDelta(t, *ab, *ba, 0.01)

	left := SumFloat(SumFloat(a, b), c)
	right := SumFloat(a, SumFloat(b, c))
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.InDelta(t, *left, *right, 0.01)
}

func TestSumInt(t *testing.T) {
	assert.Nil(t, SumInt(nil, nil))

	got := SumInt(Int(2), nil)
	require.NotNil(t, got)
	assert.Equal(t, 2, *got)

	got = SumInt(Int(2), Int(3))
	require.NotNil(t, got)
	assert.Equal(t, 5, *got)
}

func TestUnionStrings(t *testing.T) {
	assert.Nil(t, UnionStrings(nil, nil))
	assert.Nil(t, UnionStrings([]string{}, nil))

	got := UnionStrings([]string{"gluten", "milk"}, []string{"milk", "soy"})
	assert.Equal(t, []string{"gluten", "milk", "soy"}, got)

	// one side empty keeps the other as-is
	got = UnionStrings(nil, []string{"fish"})
	assert.Equal(t, []string{"fish"}, got)
}
