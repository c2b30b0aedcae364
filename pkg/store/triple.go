package store

import (
	"fmt"
	"strings"
)

// Kind describes how a triple's object should be interpreted.
type Kind int

const (
	// KindAuto infers the object kind from its text: full URIs and prefixed
	// names are resources, anything else is a literal.
	KindAuto Kind = iota

	// KindIRI marks the object as a resource reference.
	KindIRI

	// KindLiteral marks the object as a plain literal, even when it looks
	// like a URI.
	KindLiteral

	// KindBlank marks the object as a blank node label ("_:b0").
	KindBlank
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Triple represents an RDF Subject-Predicate-Object triple.
// In the road-sign domain:
//   - Subject: a sign or image IRI (e.g., "http://.../roadsign-data#sign_12")
//   - Predicate: a schema property (e.g., "rss:shape", "foaf:depicts")
//   - Object: another IRI or a literal such as "NCS S 1050-Y90R"
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	Kind      Kind
}

// NewTriple creates a new triple whose object kind is inferred.
func NewTriple(subject, predicate, object string) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// NewLiteralTriple creates a triple whose object is a literal.
func NewLiteralTriple(subject, predicate, object string) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Kind:      KindLiteral,
	}
}

// Equals checks if two triples have identical components.
func (t Triple) Equals(other Triple) bool {
	return t.Subject == other.Subject &&
		t.Predicate == other.Predicate &&
		t.Object == other.Object &&
		t.Kind == other.Kind
}

// IsLiteral reports whether the object is serialized as a literal.
func (t Triple) IsLiteral() bool {
	switch t.Kind {
	case KindLiteral:
		return true
	case KindIRI, KindBlank:
		return false
	default:
		return !isURIObject(t.Object)
	}
}

// Resolved returns the triple with KindAuto replaced by the kind it is
// interpreted as.
func (t Triple) Resolved() Triple {
	if t.Kind != KindAuto {
		return t
	}
	switch {
	case strings.HasPrefix(t.Object, "_:"):
		t.Kind = KindBlank
	case t.IsLiteral():
		t.Kind = KindLiteral
	default:
		t.Kind = KindIRI
	}
	return t
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	if t.IsLiteral() {
		return fmt.Sprintf("<%s> <%s> %q", t.Subject, t.Predicate, t.Object)
	}
	return fmt.Sprintf("<%s> <%s> <%s>", t.Subject, t.Predicate, t.Object)
}

// NTriples returns the triple in N-Triples format. Prefixed names must be
// expanded by the caller; see NTriplesSerializer.
func (t Triple) NTriples() string {
	return fmt.Sprintf("%s %s %s .", ntriplesResource(t.Subject), ntriplesResource(t.Predicate), t.ntriplesObject())
}

func (t Triple) ntriplesObject() string {
	switch {
	case t.Kind == KindBlank:
		return ntriplesResource(t.Object)
	case t.IsLiteral():
		return `"` + escapeLiteralString(t.Object) + `"`
	default:
		return ntriplesResource(t.Object)
	}
}

func ntriplesResource(value string) string {
	if strings.HasPrefix(value, "_:") {
		return value
	}
	return "<" + escapeIRI(value) + ">"
}

// IsValid returns true if all components are non-empty.
func (t Triple) IsValid() bool {
	return t.Subject != "" && t.Predicate != "" && t.Object != ""
}

// TriplePattern represents a pattern for matching triples.
// Empty strings act as wildcards that match any value.
type TriplePattern struct {
	Subject   string
	Predicate string
	Object    string
}

// NewTriplePattern creates a new pattern for querying.
// Use empty string "" for wildcards.
func NewTriplePattern(subject, predicate, object string) TriplePattern {
	return TriplePattern{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Matches checks if a triple matches this pattern.
func (p TriplePattern) Matches(t Triple) bool {
	if p.Subject != "" && p.Subject != t.Subject {
		return false
	}
	if p.Predicate != "" && p.Predicate != t.Predicate {
		return false
	}
	if p.Object != "" && p.Object != t.Object {
		return false
	}
	return true
}

// LocalName returns the part of an IRI after its namespace separator: the
// text after the last '#', or after the last '/' when there is no '#'.
// Prefixed names ("rss:shape") yield the part after the colon.
func LocalName(iri string) string {
	if index := strings.LastIndex(iri, "#"); index >= 0 {
		return iri[index+1:]
	}
	if isFullURI(iri) {
		if index := strings.LastIndex(iri, "/"); index >= 0 {
			return iri[index+1:]
		}
		return iri[strings.LastIndex(iri, ":")+1:]
	}
	if index := strings.Index(iri, ":"); index >= 0 {
		return iri[index+1:]
	}
	return iri
}
