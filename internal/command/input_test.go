package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	v, err := ParseLength(" 5 ")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = ParseWidth("0.25")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
}

func TestParseLengthRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"":      msgInvalidNumber,
		"abc":   msgInvalidNumber,
		"5cm":   msgInvalidNumber,
		"0":     msgNotPositive,
		"-2":    msgNotPositive,
		"Inf":   msgNotFinite,
		"NaN":   msgNotFinite,
		"1e999": msgInvalidNumber,
	}
	for input, reason := range cases {
		_, err := ParseLength(input)
		var ie *InputError
		require.ErrorAs(t, err, &ie, "input %q", input)
		assert.Equal(t, reason, ie.Reason, "input %q", input)
		assert.Equal(t, "Length", ie.Field)
	}
}
