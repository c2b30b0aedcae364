package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NTriplesSerializer writes one triple per line in store order.
type NTriplesSerializer struct{}

// NewNTriplesSerializer creates an N-Triples serializer.
func NewNTriplesSerializer() *NTriplesSerializer {
	return &NTriplesSerializer{}
}

// Serialize converts all triples in the store to N-Triples.
func (serializer *NTriplesSerializer) Serialize(store *TripleStore) string {
	var builder strings.Builder
	for _, triple := range store.All() {
		builder.WriteString(triple.NTriples())
		builder.WriteString("\n")
	}
	return builder.String()
}

// Serialize renders the store in format. prefixes are declared in addition
// to the defaults; an empty prefix becomes the RDF/XML default namespace.
func Serialize(ts *TripleStore, format Format, prefixes ...PrefixMapping) (string, error) {
	switch format {
	case FormatRDFXML:
		options := make([]RDFXMLOption, 0, len(prefixes))
		for _, mapping := range prefixes {
			options = append(options, WithRDFXMLPrefix(mapping.Prefix, mapping.Namespace))
		}
		return NewRDFXMLSerializer(options...).Serialize(ts), nil
	case FormatTurtle:
		options := make([]TurtleOption, 0, len(prefixes))
		for _, mapping := range prefixes {
			options = append(options, WithPrefix(namedPrefix(mapping.Prefix), mapping.Namespace))
		}
		return NewTurtleSerializer(options...).Serialize(ts), nil
	case FormatNTriples:
		return NewNTriplesSerializer().Serialize(ts), nil
	case FormatJSONLD:
		options := make([]JSONLDOption, 0, len(prefixes))
		for _, mapping := range prefixes {
			options = append(options, WithJSONLDPrefix(namedPrefix(mapping.Prefix), mapping.Namespace))
		}
		return NewJSONLDSerializer(options...).SerializeToString(ts)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// namedPrefix replaces the RDF/XML default namespace with "onto" for formats
// that have no default namespace declaration.
func namedPrefix(prefix string) string {
	if prefix == "" {
		return "onto"
	}
	return prefix
}

// WriteFile serializes the store and replaces path in one step: the output is
// written to a temporary file in the same directory and renamed over path,
// so a failed run never leaves a half-written artifact.
func WriteFile(path string, ts *TripleStore, format Format, prefixes ...PrefixMapping) error {
	content, err := Serialize(ts, format, prefixes...)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary output: %w", err)
	}
	tempPath := temp.Name()

	_, writeErr := temp.WriteString(content)
	closeErr := temp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tempPath)
		if writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", path, writeErr)
		}
		return fmt.Errorf("failed to close %s: %w", path, closeErr)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
