package populate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedColour is returned when a classifier yields a value that
	// is not one of the six primary colours, such as an unknown bare word.
	ErrUnrecognizedColour = errors.New("unrecognized colour")

	// ErrConflictingMetadata is returned under MetadataReject when an image
	// has two different values for the same metadata property.
	ErrConflictingMetadata = errors.New("conflicting image metadata")
)

// RecordError reports why the record of a sign could not be built.
type RecordError struct {
	Subject  string
	Property string
	Value    string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("sign %s: %s %q: %v", e.Subject, e.Property, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
