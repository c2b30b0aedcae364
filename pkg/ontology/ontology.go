// Package ontology is the destination knowledge base: an OWL ontology held in
// a triple store, with a factory for named and auto-named individuals and
// attribute setters.
package ontology

import (
	"fmt"
	"strings"
	"sync"

	"github.com/coolbeans/roadsign/pkg/store"
)

// Classes of the road-sign ontology.
const (
	ClassRoadSign = "RoadSign"
	ClassShape    = "Shape"
	ClassColor    = "Color"
	ClassSymbol   = "Symbol"
)

// Object properties link a RoadSign to Shape, Color and Symbol individuals.
const (
	PropertyShape       = "shape"
	PropertyBorderColor = "borderColor"
	PropertyGroundColor = "groundColor"
	PropertySymbolColor = "symbolColor"
	PropertySymbol      = "symbol"
)

// Data properties hold plain literal values.
const (
	PropertySymbolValue  = "symbolValue"
	PropertyImage        = "image"
	PropertyImageCreator = "imageCreator"
	PropertyImageDate    = "imageDate"
)

// DefaultIRI is used when neither the input ontology nor the configuration
// names one.
const DefaultIRI = "http://www.semanticweb.org/roadsigns"

var (
	classes          = []string{ClassRoadSign, ClassShape, ClassColor, ClassSymbol}
	objectProperties = []string{PropertyShape, PropertyBorderColor, PropertyGroundColor, PropertySymbolColor, PropertySymbol}
	dataProperties   = []string{PropertySymbolValue, PropertyImage, PropertyImageCreator, PropertyImageDate}
)

// KnowledgeBase is an ontology under construction.
type KnowledgeBase struct {
	mu sync.Mutex

	iri       string
	namespace string
	triples   *store.TripleStore
	counters  map[string]int
}

// New creates an empty ontology identified by iri with the road-sign classes
// and properties declared.
func New(iri string) *KnowledgeBase {
	return wrap(store.NewTripleStore(), iri)
}

// Load reads an existing ontology. Its IRI is the subject of the first
// owl:Ontology declaration; fallbackIRI is used when the file has none.
func Load(path, fallbackIRI string) (*KnowledgeBase, error) {
	triples, err := store.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ontology: %w", err)
	}

	iri := fallbackIRI
	if declared := triples.Find("", store.RDFType, store.OWLOntology); len(declared) > 0 {
		iri = declared[0].Subject
	}
	if iri == "" {
		return nil, fmt.Errorf("ontology %s declares no owl:Ontology and no IRI was configured", path)
	}

	return wrap(triples, iri), nil
}

func wrap(triples *store.TripleStore, iri string) *KnowledgeBase {
	iri = strings.TrimRight(iri, "#")

	kb := &KnowledgeBase{
		iri:       iri,
		namespace: namespaceOf(iri),
		triples:   triples,
		counters:  make(map[string]int),
	}
	kb.declareSchema()
	return kb
}

// namespaceOf derives the entity namespace from an ontology IRI the way OWL
// tools do: "#" is appended unless the IRI already ends with a separator.
func namespaceOf(iri string) string {
	if strings.HasSuffix(iri, "/") {
		return iri
	}
	return iri + "#"
}

func (kb *KnowledgeBase) declareSchema() {
	kb.add(store.NewTriple(kb.iri, store.RDFType, store.OWLOntology))
	for _, class := range classes {
		kb.add(store.NewTriple(kb.namespace+class, store.RDFType, store.OWLClass))
	}
	for _, property := range objectProperties {
		kb.add(store.NewTriple(kb.namespace+property, store.RDFType, store.OWLObjectProperty))
	}
	for _, property := range dataProperties {
		kb.add(store.NewTriple(kb.namespace+property, store.RDFType, store.OWLDatatypeProperty))
	}
}

// add ignores the only AddTriple error, an empty component, which the
// callers here never produce.
func (kb *KnowledgeBase) add(triple store.Triple) {
	_ = kb.triples.AddTriple(triple)
}

// IRI returns the ontology IRI.
func (kb *KnowledgeBase) IRI() string { return kb.iri }

// Namespace returns the namespace new entities are created in.
func (kb *KnowledgeBase) Namespace() string { return kb.namespace }

// Store exposes the underlying triples.
func (kb *KnowledgeBase) Store() *store.TripleStore { return kb.triples }

// Entity returns the IRI of a class, property or individual named name.
func (kb *KnowledgeBase) Entity(name string) string { return kb.namespace + name }

// Individual returns the named individual of class called name, creating it
// on first use. Asking again for the same name yields the same individual.
func (kb *KnowledgeBase) Individual(class, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("individual of class %s needs a name", class)
	}
	if strings.ContainsAny(name, " \t\n") {
		return "", fmt.Errorf("invalid individual name %q", name)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	iri := kb.Entity(name)
	kb.add(store.NewTriple(iri, store.RDFType, store.OWLNamedIndividual))
	kb.add(store.NewTriple(iri, store.RDFType, kb.Entity(class)))
	return iri, nil
}

// NewInstance creates an individual of class with a generated name: the
// lower-cased class name followed by a counter starting at 1, skipping names
// already in use.
func (kb *KnowledgeBase) NewInstance(class string) *Instance {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	prefix := strings.ToLower(class)
	var iri string
	for {
		kb.counters[class]++
		iri = kb.Entity(fmt.Sprintf("%s%d", prefix, kb.counters[class]))
		if !kb.triples.Exists(iri, "", "") {
			break
		}
	}

	kb.add(store.NewTriple(iri, store.RDFType, store.OWLNamedIndividual))
	kb.add(store.NewTriple(iri, store.RDFType, kb.Entity(class)))
	return &Instance{kb: kb, IRI: iri}
}

// Instances lists the individuals typed with class, in creation order.
func (kb *KnowledgeBase) Instances(class string) []string {
	var iris []string
	for _, triple := range kb.triples.Find("", store.RDFType, kb.Entity(class)) {
		iris = append(iris, triple.Subject)
	}
	return iris
}

// Save writes the ontology to path in format, replacing the file in one step.
// The ontology namespace becomes the default namespace of RDF/XML output.
func (kb *KnowledgeBase) Save(path string, format store.Format) error {
	return store.WriteFile(path, kb.triples, format, store.PrefixMapping{Prefix: "", Namespace: kb.namespace})
}

// Instance is an individual whose attributes can be set.
type Instance struct {
	kb  *KnowledgeBase
	IRI string
}

// SetObjects replaces the values of an object property with the given
// individual IRIs.
func (instance *Instance) SetObjects(property string, individuals ...string) {
	instance.set(property, individuals, store.KindIRI)
}

// SetData replaces the values of a data property with literal values.
func (instance *Instance) SetData(property string, values ...string) {
	instance.set(property, values, store.KindLiteral)
}

// Values returns the current values of property.
func (instance *Instance) Values(property string) []string {
	return instance.kb.triples.Get(instance.IRI)[instance.kb.Entity(property)]
}

func (instance *Instance) set(property string, values []string, kind store.Kind) {
	predicate := instance.kb.Entity(property)

	instance.kb.mu.Lock()
	defer instance.kb.mu.Unlock()

	instance.kb.triples.Delete(instance.IRI, predicate, "")
	for _, value := range values {
		if value == "" {
			continue
		}
		instance.kb.add(store.Triple{Subject: instance.IRI, Predicate: predicate, Object: value, Kind: kind})
	}
}
