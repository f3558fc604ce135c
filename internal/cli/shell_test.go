package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_LettersOnly(t *testing.T) {
	req, err := parseLine("abcdefg", "", "")
	require.NoError(t, err)
	assert.Equal(t, "abcdefg", req.Letters)
	assert.Empty(t, req.Present)
	assert.Nil(t, req.MinimalWordLength)
}

func TestParseLine_WithPresentAndFlags(t *testing.T) {
	req, err := parseLine("abcdefg a min=5 max=8 repeats=2", "free-dictionary", "")
	require.NoError(t, err)
	assert.Equal(t, "abcdefg", req.Letters)
	assert.Equal(t, "a", req.Present)
	require.NotNil(t, req.MinimalWordLength)
	assert.Equal(t, 5, *req.MinimalWordLength)
	require.NotNil(t, req.MaximalWordLength)
	assert.Equal(t, 8, *req.MaximalWordLength)
	require.NotNil(t, req.Repeats)
	assert.Equal(t, 2, *req.Repeats)
	assert.Equal(t, "free-dictionary", req.Validator)
}

func TestParseLine_UnknownFlagRejected(t *testing.T) {
	_, err := parseLine("abcdefg a bogus=1", "", "")
	assert.Error(t, err)
}

func TestParseLine_MalformedFlagRejected(t *testing.T) {
	_, err := parseLine("abcdefg a min=notanumber", "", "")
	assert.Error(t, err)
}

func TestParseLine_EmptyInput(t *testing.T) {
	_, err := parseLine("   ", "", "")
	assert.Error(t, err)
}
