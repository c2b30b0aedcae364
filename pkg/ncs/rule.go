package ncs

const (
	// achromaticChromaticness is the chromaticness below which a colour is
	// treated as black or white.
	achromaticChromaticness = 10

	// blackBlackness is the blackness from which an achromatic colour is black.
	blackBlackness = 40
)

// RuleClassifier classifies NCS codes from their notation alone. It returns
// lower-case colour names ("red").
type RuleClassifier struct{}

// NewRuleClassifier creates a rule-based classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Name implements Classifier.
func (RuleClassifier) Name() string {
	return string(ApproachRules)
}

// Classify implements Classifier.
func (rc RuleClassifier) Classify(raw string) (string, error) {
	if IsBare(raw) {
		return raw, nil
	}

	code, err := Parse(raw)
	if err != nil {
		return "", err
	}

	colour, err := rc.ClassifyCode(code)
	if err != nil {
		return "", &CodeError{Code: raw, Err: err}
	}
	return colour.Lower(), nil
}

// ClassifyCode applies the threshold rules to a parsed code, then falls back
// to hue bucket membership.
func (RuleClassifier) ClassifyCode(code Code) (PrimaryColour, error) {
	if code.Chromaticness < achromaticChromaticness {
		if code.Blackness >= blackBlackness {
			return Black, nil
		}
		return White, nil
	}

	colour, ok := HueBucket(code.Hue)
	if !ok {
		return 0, ErrUnrecognizedHue
	}
	return colour, nil
}
