package ncs

import "fmt"

// Classifier maps a raw NCS colour value to a primary colour name. Values
// without separators are returned unchanged, so classifying a result again is
// a no-op.
type Classifier interface {
	Classify(raw string) (string, error)
	Name() string
}

// Approach selects a classification strategy.
type Approach string

const (
	// ApproachRules classifies by hue bucket and blackness/chromaticness
	// thresholds without RGB.
	ApproachRules Approach = "rules"

	// ApproachNearest classifies by the nearest of the six RGB prototypes,
	// resolving codes through a LookupTable.
	ApproachNearest Approach = "nearest"
)

// Approaches lists the supported strategies.
func Approaches() []Approach {
	return []Approach{ApproachRules, ApproachNearest}
}

// NewClassifier builds the classifier for approach. The nearest-prototype
// approach requires a lookup table.
func NewClassifier(approach Approach, table *LookupTable) (Classifier, error) {
	switch approach {
	case ApproachRules:
		return NewRuleClassifier(), nil
	case ApproachNearest, "":
		if table == nil {
			return nil, fmt.Errorf("%s classifier requires a lookup table", ApproachNearest)
		}
		return NewNearestClassifier(table), nil
	default:
		return nil, fmt.Errorf("unknown classifier approach %q", approach)
	}
}
