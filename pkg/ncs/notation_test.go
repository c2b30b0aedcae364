package ncs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Code
	}{
		{"full notation", "NCS S 1050-Y90R", Code{Edition: "S", Blackness: 10, Chromaticness: 50, Hue: "Y90R"}},
		{"without system prefix", "S 1050-Y90R", Code{Edition: "S", Blackness: 10, Chromaticness: 50, Hue: "Y90R"}},
		{"nuance and hue only", "2060-B", Code{Blackness: 20, Chromaticness: 60, Hue: "B"}},
		{"neutral", "NCS S 0500-N", Code{Edition: "S", Blackness: 5, Chromaticness: 0, Hue: "N"}},
		{"extra spacing", "  NCS  S 8505 - R80B ", Code{Edition: "S", Blackness: 85, Chromaticness: 5, Hue: "R80B"}},
		{"lower-case hue", "S 3020-g10y", Code{Edition: "S", Blackness: 30, Chromaticness: 20, Hue: "G10Y"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			code, err := Parse(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, code)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"letters in nuance", "NCS S 10A0-Y90R"},
		{"short nuance", "NCS S 105-Y90R"},
		{"long nuance", "NCS S 10500-Y90R"},
		{"missing hue", "NCS S 1050"},
		{"too many tokens", "NCS S 1050-Y90R-EXTRA"},
		{"single word", "red"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Parse(testCase.input)
			require.ErrorIs(t, err, ErrMalformedCode)

			var codeErr *CodeError
			require.ErrorAs(t, err, &codeErr)
			assert.Equal(t, testCase.input, codeErr.Code)
		})
	}
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "S 0500-N", Code{Edition: "S", Blackness: 5, Hue: "N"}.String())
	assert.Equal(t, "1050-Y90R", Code{Blackness: 10, Chromaticness: 50, Hue: "Y90R"}.String())
}

func TestIsBare(t *testing.T) {
	assert.True(t, IsBare("red"))
	assert.True(t, IsBare("WHITE"))
	assert.False(t, IsBare("S 1050-Y90R"))
	assert.False(t, IsBare("1050-Y90R"))
}

func TestLookupKey(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"NCS S 1050-Y90R", "S 1050-Y90R"},
		{"S 1050-Y90R", "S 1050-Y90R"},
		{"ncs S 0500-N", "S 0500-N"},
		{" NCS S 2070-R ", "S 2070-R"},
		{"NCSX 1050-R", "NCSX 1050-R"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			assert.Equal(t, testCase.expected, LookupKey(testCase.input))
		})
	}
}
