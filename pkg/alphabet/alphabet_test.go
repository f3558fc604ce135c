package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Is26LowercaseSymbols(t *testing.T) {
	assert.Equal(t, 26, Default.Size())
	assert.True(t, Default.Contains('a'))
	assert.False(t, Default.Contains('A'))
}

func TestCaseSensitive_Is52Symbols(t *testing.T) {
	assert.Equal(t, 52, CaseSensitive.Size())
	assert.True(t, CaseSensitive.Contains('a'))
	assert.True(t, CaseSensitive.Contains('A'))
}

func TestNormalize_FoldsOnlyWhenCaseInsensitive(t *testing.T) {
	assert.Equal(t, 'a', Default.Normalize('A'))
	assert.Equal(t, 'a', Default.Normalize('a'))
	assert.Equal(t, 'A', CaseSensitive.Normalize('A'))
}

func TestBitset_SetHasClear(t *testing.T) {
	var b Mask
	b = b.Set(3)
	assert.True(t, b.Has(3))
	assert.False(t, b.Has(4))
	b = b.Clear(3)
	assert.False(t, b.Has(3))
	assert.True(t, b.IsZero())
}

func TestBitset_SubsetOf(t *testing.T) {
	var a, b Mask
	a = a.Set(1).Set(2)
	b = b.Set(1).Set(2).Set(3)
	assert.True(t, a.SubsetOf(b))
	assert.False(t, b.SubsetOf(a))
}

func TestMaskFor_RejectsSymbolOutsideAlphabet(t *testing.T) {
	_, err := MaskFor(Default, []rune{'a', '3'})
	require.Error(t, err)
}

func TestMaskFor_BuildsUnionOfPositions(t *testing.T) {
	m, err := MaskFor(Default, []rune{'a', 'c'})
	require.NoError(t, err)
	posA, _ := Default.PositionOf('a')
	posC, _ := Default.PositionOf('c')
	assert.True(t, m.Has(posA))
	assert.True(t, m.Has(posC))
}
