package ncs

import (
	"errors"
	"fmt"
)

// Sentinel errors for NCS parsing, lookup table loading and classification.
var (
	// ErrMalformedCode indicates an NCS code whose nuance field is not a
	// four-digit number or whose token layout is not recognised.
	ErrMalformedCode = errors.New("malformed NCS code")

	// ErrUnrecognizedHue indicates a chromatic code whose hue is not in any
	// hue bucket.
	ErrUnrecognizedHue = errors.New("unrecognized hue")

	// ErrUnknownCode indicates an NCS code absent from the lookup table.
	ErrUnknownCode = errors.New("unknown NCS code")

	// ErrMalformedReferenceLine indicates a reference file row that cannot
	// be turned into a lookup table entry.
	ErrMalformedReferenceLine = errors.New("malformed reference line")
)

// CodeError reports a failure to parse or classify a specific NCS value.
type CodeError struct {
	Code string
	Err  error
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Code)
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

// ReferenceLineError reports a reference file row that failed to load.
// Line is 1-based.
type ReferenceLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ReferenceLineError) Error() string {
	return fmt.Sprintf("%v at line %d (%s): %q", ErrMalformedReferenceLine, e.Line, e.Reason, e.Text)
}

func (e *ReferenceLineError) Unwrap() error {
	return ErrMalformedReferenceLine
}
