package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"
)

// Format identifies an RDF serialization.
type Format string

const (
	// FormatTurtle is Terse RDF Triple Language (.ttl).
	FormatTurtle Format = "turtle"

	// FormatNTriples is the line-based N-Triples format (.nt).
	FormatNTriples Format = "ntriples"

	// FormatRDFXML is RDF/XML (.rdf, .owl, .xml), the OWL default.
	FormatRDFXML Format = "rdfxml"

	// FormatJSONLD is compact JSON-LD (.jsonld). Output only.
	FormatJSONLD Format = "jsonld"
)

// Formats lists the supported serializations.
func Formats() []Format {
	return []Format{FormatRDFXML, FormatTurtle, FormatNTriples, FormatJSONLD}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return FormatTurtle, nil
	case ".nt":
		return FormatNTriples, nil
	case ".rdf", ".owl", ".xml":
		return FormatRDFXML, nil
	case ".jsonld":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("cannot infer RDF format from %q", path)
	}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, format := range Formats() {
		if string(format) == strings.ToLower(name) {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown RDF format %q", name)
}

func (f Format) decoderFormat() (rdf.Format, error) {
	switch f {
	case FormatTurtle:
		return rdf.Turtle, nil
	case FormatNTriples:
		return rdf.NTriples, nil
	case FormatRDFXML:
		return rdf.RDFXML, nil
	default:
		return 0, fmt.Errorf("cannot decode RDF format %q", f)
	}
}

// Decode reads triples from r into a new store, keeping document order.
func Decode(r io.Reader, format Format) (*TripleStore, error) {
	ts := NewTripleStore()
	if err := DecodeInto(ts, r, format); err != nil {
		return nil, err
	}
	return ts, nil
}

// DecodeInto appends the triples read from r to ts.
func DecodeInto(ts *TripleStore, r io.Reader, format Format) error {
	decoderFormat, err := format.decoderFormat()
	if err != nil {
		return err
	}

	decoder := rdf.NewTripleDecoder(r, decoderFormat)
	for {
		decoded, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", format, err)
		}

		if err := ts.AddTriple(fromRDF(decoded)); err != nil {
			return err
		}
	}
}

// LoadFile decodes one RDF file, inferring the format from its extension.
func LoadFile(path string) (*TripleStore, error) {
	ts := NewTripleStore()
	if err := loadInto(ts, path); err != nil {
		return nil, err
	}
	return ts, nil
}

// LoadFiles decodes several RDF files into one store, in the given order.
func LoadFiles(paths []string) (*TripleStore, error) {
	ts := NewTripleStore()
	for _, path := range paths {
		if err := loadInto(ts, path); err != nil {
			return nil, err
		}
	}
	return ts, nil
}

func loadInto(ts *TripleStore, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(path) // #nosec G304 - source paths come from run configuration
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	if err := DecodeInto(ts, file, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func fromRDF(decoded rdf.Triple) Triple {
	triple := Triple{
		Subject:   termValue(decoded.Subj),
		Predicate: termValue(decoded.Pred),
	}

	switch object := decoded.Obj.(type) {
	case rdf.Literal:
		triple.Object = object.String()
		triple.Kind = KindLiteral
	case rdf.Blank:
		triple.Object = blankLabel(object)
		triple.Kind = KindBlank
	default:
		triple.Object = termValue(object)
		triple.Kind = KindIRI
	}

	return triple
}

func termValue(term rdf.Term) string {
	if blank, ok := term.(rdf.Blank); ok {
		return blankLabel(blank)
	}
	return term.String()
}

// blankLabel renders a blank node as "_:label".
func blankLabel(blank rdf.Blank) string {
	label := blank.String()
	if strings.HasPrefix(label, "_:") {
		return label
	}
	return "_:" + label
}
