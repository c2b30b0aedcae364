package ncs

import (
	"fmt"
	"math"
	"strings"
)

// PrimaryColour is one of the six colours a road-sign colour is normalised to.
// The declaration order is the prototype enumeration order used to break
// distance ties.
type PrimaryColour int

const (
	Red PrimaryColour = iota
	Blue
	Green
	Yellow
	Black
	White
)

var primaryColourNames = [...]string{"RED", "BLUE", "GREEN", "YELLOW", "BLACK", "WHITE"}

// PrimaryColours returns the six primary colours in enumeration order.
func PrimaryColours() []PrimaryColour {
	return []PrimaryColour{Red, Blue, Green, Yellow, Black, White}
}

// String returns the upper-case colour name, e.g. "RED".
func (c PrimaryColour) String() string {
	if c < Red || c > White {
		return fmt.Sprintf("PrimaryColour(%d)", int(c))
	}
	return primaryColourNames[c]
}

// Lower returns the lower-case colour name used by the rule-based classifier.
func (c PrimaryColour) Lower() string {
	return strings.ToLower(c.String())
}

// ParsePrimaryColour resolves a colour name case-insensitively.
func ParsePrimaryColour(name string) (PrimaryColour, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for index, candidate := range primaryColourNames {
		if candidate == upper {
			return PrimaryColour(index), true
		}
	}
	return 0, false
}

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Distance returns the Euclidean distance between two colours in RGB space.
func (c RGB) Distance(other RGB) float64 {
	dr := float64(c.R) - float64(other.R)
	dg := float64(c.G) - float64(other.G)
	db := float64(c.B) - float64(other.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Prototype pairs a primary colour with its reference point in RGB space.
type Prototype struct {
	Colour PrimaryColour
	RGB    RGB
}

var prototypes = [...]Prototype{
	{Red, RGB{255, 0, 0}},
	{Blue, RGB{0, 0, 255}},
	{Green, RGB{0, 255, 0}},
	{Yellow, RGB{255, 255, 0}},
	{Black, RGB{0, 0, 0}},
	{White, RGB{255, 255, 255}},
}

// Prototypes returns a copy of the six colour prototypes in enumeration order.
func Prototypes() []Prototype {
	out := make([]Prototype, len(prototypes))
	copy(out, prototypes[:])
	return out
}

// PrototypeOf returns the RGB reference point of a primary colour.
func PrototypeOf(colour PrimaryColour) RGB {
	return prototypes[colour].RGB
}

// Nearest returns the prototype closest to rgb and its distance. On equal
// distances the prototype earlier in enumeration order wins.
func Nearest(rgb RGB) (PrimaryColour, float64) {
	best := prototypes[0].Colour
	bestDistance := rgb.Distance(prototypes[0].RGB)
	for _, prototype := range prototypes[1:] {
		if distance := rgb.Distance(prototype.RGB); distance < bestDistance {
			best = prototype.Colour
			bestDistance = distance
		}
	}
	return best, bestDistance
}
