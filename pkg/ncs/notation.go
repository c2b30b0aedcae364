// Package ncs parses Natural Color System notation and classifies NCS codes
// into six primary colours, either by hue rules or by nearest RGB prototype.
package ncs

import (
	"fmt"
	"regexp"
	"strings"
)

// SystemPrefix is the leading token of full NCS notation, as in
// "NCS S 1050-Y90R".
const SystemPrefix = "NCS"

var separators = regexp.MustCompile(`[ -]+`)

// Code is a parsed NCS colour notation.
type Code struct {
	// Edition is the optional edition letter, usually "S".
	Edition string

	// Blackness is the percentage of black, 0-99.
	Blackness int

	// Chromaticness is the percentage of chromatic colour, 0-99.
	Chromaticness int

	// Hue is a chromatic hue code such as "Y90R", or "N" for neutral colours.
	Hue string
}

// String renders the code in the reference-file key form, e.g. "S 1050-Y90R".
func (c Code) String() string {
	nuance := fmt.Sprintf("%02d%02d-%s", c.Blackness, c.Chromaticness, c.Hue)
	if c.Edition == "" {
		return nuance
	}
	return c.Edition + " " + nuance
}

// IsBare reports whether raw is a single word without separators. Bare values
// are treated as already classified colour names.
func IsBare(raw string) bool {
	return !strings.ContainsAny(raw, " -")
}

// Parse reads an NCS code in one of the forms "NCS S 1050-Y90R",
// "S 1050-Y90R" or "1050-Y90R". The hue is returned as written; whether it
// belongs to a hue bucket is decided during classification.
func Parse(raw string) (Code, error) {
	parts := separators.Split(strings.TrimSpace(raw), -1)

	if len(parts) > 0 && strings.EqualFold(parts[0], SystemPrefix) {
		parts = parts[1:]
	}

	var code Code
	if len(parts) == 3 && isEditionLetter(parts[0]) {
		code.Edition = parts[0]
		parts = parts[1:]
	}
	if len(parts) != 2 {
		return Code{}, &CodeError{Code: raw, Err: ErrMalformedCode}
	}

	nuance := parts[0]
	if len(nuance) != 4 || !isDigits(nuance) {
		return Code{}, &CodeError{Code: raw, Err: ErrMalformedCode}
	}

	code.Blackness = twoDigits(nuance[0:2])
	code.Chromaticness = twoDigits(nuance[2:4])
	code.Hue = strings.ToUpper(parts[1])
	if code.Hue == "" {
		return Code{}, &CodeError{Code: raw, Err: ErrMalformedCode}
	}

	return code, nil
}

// LookupKey returns the lookup table key for raw: the value with its leading
// "NCS " system token removed.
func LookupKey(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > len(SystemPrefix) &&
		strings.EqualFold(trimmed[:len(SystemPrefix)], SystemPrefix) &&
		trimmed[len(SystemPrefix)] == ' ' {
		return strings.TrimSpace(trimmed[len(SystemPrefix):])
	}
	return trimmed
}

func isEditionLetter(token string) bool {
	if len(token) != 1 {
		return false
	}
	char := token[0]
	return (char >= 'A' && char <= 'Z') || (char >= 'a' && char <= 'z')
}

func isDigits(value string) bool {
	for index := 0; index < len(value); index++ {
		if value[index] < '0' || value[index] > '9' {
			return false
		}
	}
	return true
}

// twoDigits converts a pre-validated two-digit decimal string.
func twoDigits(value string) int {
	return int(value[0]-'0')*10 + int(value[1]-'0')
}
