// Package populate turns road-sign observations held in a triple store into
// RoadSign records with colours normalised to the six primary colours, and
// emits them into an ontology.
package populate

import "strings"

// NoSymbol is the symbol of a sign whose source data has no symbol property.
const NoSymbol = "NO_SYMBOL"

// Record is one road sign assembled from the triples about its subject.
// Optional fields are empty when the source has no value for them.
type Record struct {
	Subject string

	Shape        string
	BorderColour string
	GroundColour string
	SymbolColour string
	Symbol       string
	SymbolValue  string

	Image        string
	ImageCreator string
	ImageDate    string
}

// NormalizeLabel turns a free-text label into an individual name:
// spaces become underscores and letters are upper-cased.
func NormalizeLabel(value string) string {
	return strings.ToUpper(strings.ReplaceAll(value, " ", "_"))
}

var symbolValueReplacer = strings.NewReplacer(" ", "_", ",", ".", "%", "PERCENT")

// NormalizeSymbolValue normalises the text printed on a sign ("50 %" becomes
// "50_PERCENT", "3,5" becomes "3.5").
func NormalizeSymbolValue(value string) string {
	return strings.ToUpper(symbolValueReplacer.Replace(value))
}
