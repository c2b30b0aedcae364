package populate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Triangular", "TRIANGULAR"},
		{"speed limit", "SPEED_LIMIT"},
		{"no entry ", "NO_ENTRY_"},
		{"", ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			assert.Equal(t, testCase.expected, NormalizeLabel(testCase.input))
		})
	}
}

func TestNormalizeSymbolValue(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"50", "50"},
		{"3,5 t", "3.5_T"},
		{"10%", "10PERCENT"},
		{"12 % slope", "12_PERCENT_SLOPE"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			assert.Equal(t, testCase.expected, NormalizeSymbolValue(testCase.input))
		})
	}
}
