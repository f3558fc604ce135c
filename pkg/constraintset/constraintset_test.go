package constraintset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestFromRequest_Valid(t *testing.T) {
	cs, err := FromRequest(Raw{Available: "abcdefg", Required: "a"})
	require.NoError(t, err)
	assert.Equal(t, []rune("abcdefg"), cs.Available())
	assert.Equal(t, []rune("a"), cs.Required())
	assert.Equal(t, 1, cs.MinLength())
	assert.Nil(t, cs.MaxLength())
	assert.Nil(t, cs.RepeatCap())
}

func TestFromRequest_DeduplicatesPreservingOrder(t *testing.T) {
	cs, err := FromRequest(Raw{Available: "aabbccabc", Required: "aa"})
	require.NoError(t, err)
	assert.Equal(t, []rune("abc"), cs.Available())
	assert.Equal(t, []rune("a"), cs.Required())
}

func TestFromRequest_EmptyLetters(t *testing.T) {
	_, err := FromRequest(Raw{Available: ""})
	assert.ErrorIs(t, err, ErrEmptyLetters)
}

func TestFromRequest_RequiredNotAvailable(t *testing.T) {
	_, err := FromRequest(Raw{Available: "abc", Required: "z"})
	assert.ErrorIs(t, err, ErrRequiredNotAvailable)
}

func TestFromRequest_UnsupportedSymbol(t *testing.T) {
	_, err := FromRequest(Raw{Available: "ab3"})
	assert.ErrorIs(t, err, ErrUnsupportedSymbol)
}

func TestFromRequest_NonPositiveRepeats(t *testing.T) {
	_, err := FromRequest(Raw{Available: "abc", Repeats: intPtr(0)})
	assert.ErrorIs(t, err, ErrNonPositiveRepeats)

	_, err = FromRequest(Raw{Available: "abc", Repeats: intPtr(-1)})
	assert.ErrorIs(t, err, ErrNonPositiveRepeats)
}

func TestFromRequest_NonPositiveLength(t *testing.T) {
	_, err := FromRequest(Raw{Available: "abc", MinLength: intPtr(0)})
	assert.ErrorIs(t, err, ErrNonPositiveLength)

	_, err = FromRequest(Raw{Available: "abc", MaxLength: intPtr(-2)})
	assert.ErrorIs(t, err, ErrNonPositiveLength)
}

func TestFromRequest_MinExceedsMax(t *testing.T) {
	_, err := FromRequest(Raw{Available: "abc", MinLength: intPtr(5), MaxLength: intPtr(3)})
	assert.ErrorIs(t, err, ErrMinExceedsMax)
}

func TestFromRequest_RepeatCapFallsBackToMaxLength(t *testing.T) {
	cs, err := FromRequest(Raw{Available: "abc", MaxLength: intPtr(4)})
	require.NoError(t, err)
	require.NotNil(t, cs.RepeatCap())
	assert.Equal(t, 4, *cs.RepeatCap())
}

func TestFromRequest_RepeatCapUsesRepeatsWhenPresent(t *testing.T) {
	cs, err := FromRequest(Raw{Available: "abc", Repeats: intPtr(1), MaxLength: intPtr(10)})
	require.NoError(t, err)
	require.NotNil(t, cs.RepeatCap())
	assert.Equal(t, 1, *cs.RepeatCap())
}

func TestFromRequest_CaseSensitiveDistinguishesSymbols(t *testing.T) {
	cs, err := FromRequest(Raw{Available: "Walrus", Required: "W", CaseSensitive: true})
	require.NoError(t, err)
	assert.Equal(t, []rune("Walrus"), cs.Available())

	_, err = FromRequest(Raw{Available: "Walrus", Required: "w", CaseSensitive: true})
	assert.ErrorIs(t, err, ErrRequiredNotAvailable)
}

func TestFromRequest_CaseInsensitiveFoldsBeforeDedup(t *testing.T) {
	cs, err := FromRequest(Raw{Available: "AaBbCc"})
	require.NoError(t, err)
	assert.Equal(t, []rune("abc"), cs.Available())
}
