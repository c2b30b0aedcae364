package store

import (
	"encoding/json"
	"strings"
)

// JSONLDContext represents a JSON-LD @context document.
type JSONLDContext map[string]interface{}

// JSONLDSerializer converts a TripleStore into compact JSON-LD: a @context of
// prefixes and a @graph with one node object per subject.
type JSONLDSerializer struct {
	prefixMappings []PrefixMapping
	namespaceIndex map[string]string // namespace -> prefix
}

// JSONLDOption is a functional option for configuring the JSONLDSerializer.
type JSONLDOption func(*JSONLDSerializer)

// NewJSONLDSerializer creates a JSONLDSerializer with standard prefix declarations.
func NewJSONLDSerializer(options ...JSONLDOption) *JSONLDSerializer {
	serializer := &JSONLDSerializer{
		prefixMappings: defaultPrefixMappings(),
	}

	for _, option := range options {
		option(serializer)
	}

	serializer.namespaceIndex = make(map[string]string, len(serializer.prefixMappings))
	for _, mapping := range serializer.prefixMappings {
		serializer.namespaceIndex[mapping.Namespace] = mapping.Prefix
	}

	return serializer
}

// WithJSONLDPrefix adds or overrides a prefix mapping.
func WithJSONLDPrefix(prefix, namespace string) JSONLDOption {
	return func(serializer *JSONLDSerializer) {
		serializer.prefixMappings = append(serializer.prefixMappings, PrefixMapping{
			Prefix:    prefix,
			Namespace: namespace,
		})
	}
}

// BuildContext creates the JSON-LD @context document from prefix mappings.
func (serializer *JSONLDSerializer) BuildContext() JSONLDContext {
	context := make(JSONLDContext, len(serializer.prefixMappings))
	for _, mapping := range serializer.prefixMappings {
		context[mapping.Prefix] = mapping.Namespace
	}
	return context
}

// Serialize converts all triples in the store to indented JSON-LD.
func (serializer *JSONLDSerializer) Serialize(store *TripleStore) ([]byte, error) {
	subjects, subjectGroups := groupTriplesBySubject(store)

	graph := make([]map[string]interface{}, 0, len(subjects))
	for _, subject := range subjects {
		graph = append(graph, serializer.buildNode(subject, subjectGroups[subject]))
	}

	document := map[string]interface{}{
		"@context": serializer.BuildContext(),
		"@graph":   graph,
	}

	return json.MarshalIndent(document, "", "  ")
}

// SerializeToString is Serialize returning a string.
func (serializer *JSONLDSerializer) SerializeToString(store *TripleStore) (string, error) {
	data, err := serializer.Serialize(store)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (serializer *JSONLDSerializer) buildNode(subject string, triples []Triple) map[string]interface{} {
	node := map[string]interface{}{"@id": serializer.compactURI(subject)}

	predicates, byPredicate := groupByPredicateTypeFirst(triples)
	for _, predicate := range predicates {
		values := make([]interface{}, 0, len(byPredicate[predicate]))
		isType := predicate == RDFType

		for _, triple := range byPredicate[predicate] {
			switch {
			case isType:
				values = append(values, serializer.compactURI(triple.Object))
			case triple.IsLiteral():
				values = append(values, triple.Object)
			default:
				values = append(values, map[string]interface{}{"@id": serializer.compactURI(triple.Object)})
			}
		}

		key := "@type"
		if !isType {
			key = serializer.compactURI(predicate)
		}
		if len(values) == 1 {
			node[key] = values[0]
		} else {
			node[key] = values
		}
	}

	return node
}

// compactURI shortens a full IRI with the longest matching prefix.
func (serializer *JSONLDSerializer) compactURI(fullURI string) string {
	bestNamespace := ""
	for namespace := range serializer.namespaceIndex {
		if strings.HasPrefix(fullURI, namespace) && len(namespace) > len(bestNamespace) &&
			isValidLocalName(fullURI[len(namespace):]) {
			bestNamespace = namespace
		}
	}

	if bestNamespace == "" {
		return fullURI
	}
	return serializer.namespaceIndex[bestNamespace] + ":" + fullURI[len(bestNamespace):]
}
