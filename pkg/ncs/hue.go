package ncs

// hueBuckets assigns each of the 40 chromatic hue codes to the primary colour
// of its quadrant. Each bucket starts halfway between two elementary hues and
// runs up to the next halfway point, so Y50R..R40B is red.
var hueBuckets = []struct {
	colour PrimaryColour
	hues   []string
}{
	{Red, []string{"Y50R", "Y60R", "Y70R", "Y80R", "Y90R", "R", "R10B", "R20B", "R30B", "R40B"}},
	{Blue, []string{"R50B", "R60B", "R70B", "R80B", "R90B", "B", "B10G", "B20G", "B30G", "B40G"}},
	{Green, []string{"B50G", "B60G", "B70G", "B80G", "B90G", "G", "G10Y", "G20Y", "G30Y", "G40Y"}},
	{Yellow, []string{"G50Y", "G60Y", "G70Y", "G80Y", "G90Y", "Y", "Y10R", "Y20R", "Y30R", "Y40R"}},
}

// hueIndex is hueBuckets inverted, built once at package initialisation.
var hueIndex = buildHueIndex()

func buildHueIndex() map[string]PrimaryColour {
	index := make(map[string]PrimaryColour, 40)
	for _, bucket := range hueBuckets {
		for _, hue := range bucket.hues {
			index[hue] = bucket.colour
		}
	}
	return index
}

// HueBucket returns the primary colour whose bucket contains hue.
func HueBucket(hue string) (PrimaryColour, bool) {
	colour, ok := hueIndex[hue]
	return colour, ok
}

// Hues returns the ten hue codes of a chromatic primary colour, in bucket
// order. BLACK and WHITE have no hues.
func Hues(colour PrimaryColour) []string {
	for _, bucket := range hueBuckets {
		if bucket.colour == colour {
			hues := make([]string, len(bucket.hues))
			copy(hues, bucket.hues)
			return hues
		}
	}
	return nil
}
