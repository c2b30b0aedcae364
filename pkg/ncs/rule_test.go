package ncs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleClassifier_BareNamesUnchanged(t *testing.T) {
	classifier := NewRuleClassifier()

	for _, name := range []string{"red", "blue", "green", "yellow", "black", "white", "RED", "White"} {
		result, err := classifier.Classify(name)
		require.NoError(t, err)
		assert.Equal(t, name, result)

		again, err := classifier.Classify(result)
		require.NoError(t, err)
		assert.Equal(t, result, again)
	}
}

func TestRuleClassifier_EveryHueHasOneBucket(t *testing.T) {
	classifier := NewRuleClassifier()

	seen := make(map[string]bool, 40)
	for _, colour := range []PrimaryColour{Red, Blue, Green, Yellow} {
		for _, hue := range Hues(colour) {
			assert.False(t, seen[hue], "hue %s appears in more than one bucket", hue)
			seen[hue] = true

			result, err := classifier.Classify(fmt.Sprintf("NCS S 2040-%s", hue))
			require.NoError(t, err)
			assert.Equal(t, colour.Lower(), result, "hue %s", hue)
		}
	}
	assert.Len(t, seen, 40)

	assert.Empty(t, Hues(Black))
	assert.Empty(t, Hues(White))
}

func TestRuleClassifier_Thresholds(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"black at blackness 40", "NCS S 4009-Y90R", "black"},
		{"white at blackness 39", "NCS S 3909-Y90R", "white"},
		{"chromaticness 10 uses hue", "NCS S 4010-Y90R", "red"},
		{"chromaticness 10 with low blackness uses hue", "NCS S 0010-B", "blue"},
		{"neutral white", "NCS S 0500-N", "white"},
		{"neutral black", "NCS S 9000-N", "black"},
		{"yellow", "NCS S 0580-Y10R", "yellow"},
		{"green", "NCS S 2060-G", "green"},
		{"without system prefix", "S 1050-Y90R", "red"},
	}

	classifier := NewRuleClassifier()
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := classifier.Classify(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}
}

func TestRuleClassifier_UnrecognizedHue(t *testing.T) {
	classifier := NewRuleClassifier()

	result, err := classifier.Classify("NCS S 1050-Q55X")
	require.ErrorIs(t, err, ErrUnrecognizedHue)
	assert.Empty(t, result)
	assert.Contains(t, err.Error(), "NCS S 1050-Q55X")

	// The neutral hue is only valid for achromatic codes.
	_, err = classifier.Classify("NCS S 1050-N")
	require.ErrorIs(t, err, ErrUnrecognizedHue)
}

func TestRuleClassifier_Malformed(t *testing.T) {
	_, err := NewRuleClassifier().Classify("NCS S XX50-Y90R")
	require.ErrorIs(t, err, ErrMalformedCode)
}
