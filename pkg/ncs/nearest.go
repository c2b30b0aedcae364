package ncs

// NearestClassifier resolves NCS codes to RGB through a LookupTable and
// returns the nearest prototype's upper-case name ("RED").
type NearestClassifier struct {
	table *LookupTable
}

// NewNearestClassifier creates a classifier backed by table. The table is
// only read, so one classifier may be shared between goroutines.
func NewNearestClassifier(table *LookupTable) *NearestClassifier {
	return &NearestClassifier{table: table}
}

// Name implements Classifier.
func (nc *NearestClassifier) Name() string {
	return string(ApproachNearest)
}

// Classify implements Classifier.
func (nc *NearestClassifier) Classify(raw string) (string, error) {
	if IsBare(raw) {
		return raw, nil
	}

	colour, _, err := nc.Resolve(raw)
	if err != nil {
		return "", err
	}
	return colour.String(), nil
}

// Resolve returns the nearest prototype and the RGB value the code maps to.
func (nc *NearestClassifier) Resolve(raw string) (PrimaryColour, RGB, error) {
	rgb, ok := nc.table.Lookup(LookupKey(raw))
	if !ok {
		return 0, RGB{}, &CodeError{Code: raw, Err: ErrUnknownCode}
	}

	colour, _ := Nearest(rgb)
	return colour, rgb, nil
}
