package store

import (
	"fmt"
	"sort"
	"strings"
)

// RDFXMLSerializer converts a TripleStore into RDF/XML, the format OWL tools
// read and write by default. Subjects with a compactable rdf:type become typed
// node elements (<owl:NamedIndividual rdf:about="...">); the rest use
// rdf:Description.
type RDFXMLSerializer struct {
	prefixMappings []PrefixMapping
	prefixIndex    map[string]string // prefix -> namespace
	namespaceIndex map[string]string // namespace -> prefix
}

// RDFXMLOption is a functional option for configuring the RDFXMLSerializer.
type RDFXMLOption func(*RDFXMLSerializer)

// NewRDFXMLSerializer creates an RDFXMLSerializer with standard namespace declarations.
func NewRDFXMLSerializer(options ...RDFXMLOption) *RDFXMLSerializer {
	serializer := &RDFXMLSerializer{
		prefixMappings: defaultPrefixMappings(),
	}

	for _, option := range options {
		option(serializer)
	}

	serializer.rebuildIndexes()

	return serializer
}

// WithRDFXMLPrefix adds or overrides a namespace prefix mapping.
func WithRDFXMLPrefix(prefix, namespace string) RDFXMLOption {
	return func(serializer *RDFXMLSerializer) {
		serializer.prefixMappings = append(serializer.prefixMappings, PrefixMapping{
			Prefix:    prefix,
			Namespace: namespace,
		})
	}
}

// WithoutRDFXMLDefaultPrefixes clears default prefixes so only custom ones are
// used. The rdf prefix is always declared.
func WithoutRDFXMLDefaultPrefixes() RDFXMLOption {
	return func(serializer *RDFXMLSerializer) {
		serializer.prefixMappings = nil
	}
}

func (serializer *RDFXMLSerializer) rebuildIndexes() {
	serializer.prefixIndex = make(map[string]string, len(serializer.prefixMappings))
	serializer.namespaceIndex = make(map[string]string, len(serializer.prefixMappings))

	for _, mapping := range serializer.prefixMappings {
		serializer.prefixIndex[mapping.Prefix] = mapping.Namespace
		serializer.namespaceIndex[mapping.Namespace] = mapping.Prefix
	}

	if _, ok := serializer.prefixIndex["rdf"]; !ok {
		serializer.prefixMappings = append(serializer.prefixMappings, PrefixMapping{Prefix: "rdf", Namespace: NamespaceRDF})
		serializer.prefixIndex["rdf"] = NamespaceRDF
		serializer.namespaceIndex[NamespaceRDF] = "rdf"
	}
}

// Serialize converts all triples in the store to RDF/XML format. Subjects are
// written in order of first appearance in the store.
func (serializer *RDFXMLSerializer) Serialize(store *TripleStore) string {
	var builder strings.Builder

	subjects, subjectGroups := groupTriplesBySubject(store)

	working := serializer.clone()
	working.declareMissingNamespaces(subjectGroups)

	working.writeXMLHeader(&builder)

	for _, subject := range subjects {
		working.writeDescription(&builder, subject, subjectGroups[subject])
	}

	working.writeXMLFooter(&builder)

	return builder.String()
}

// clone copies the prefix configuration so generated prefixes do not leak
// between Serialize calls.
func (serializer *RDFXMLSerializer) clone() *RDFXMLSerializer {
	copied := &RDFXMLSerializer{
		prefixMappings: append([]PrefixMapping(nil), serializer.prefixMappings...),
	}
	copied.rebuildIndexes()
	return copied
}

// declareMissingNamespaces generates ns0, ns1, ... prefixes for predicate and
// type namespaces that have no registered prefix, so every element name is a
// valid QName.
func (serializer *RDFXMLSerializer) declareMissingNamespaces(subjectGroups map[string][]Triple) {
	var missing []string
	seen := make(map[string]bool)

	note := func(iri string) {
		namespace, localName := splitNamespace(iri)
		if namespace == "" || localName == "" || seen[namespace] {
			return
		}
		seen[namespace] = true
		if _, ok := serializer.namespaceIndex[namespace]; !ok {
			missing = append(missing, namespace)
		}
	}

	for _, triples := range subjectGroups {
		for _, triple := range triples {
			if isFullURI(triple.Predicate) {
				note(triple.Predicate)
			}
			if triple.Predicate == RDFType && !triple.IsLiteral() && isFullURI(triple.Object) {
				note(triple.Object)
			}
		}
	}

	sort.Strings(missing)
	for index, namespace := range missing {
		prefix := fmt.Sprintf("ns%d", index)
		for serializer.prefixIndex[prefix] != "" {
			index++
			prefix = fmt.Sprintf("ns%d", index)
		}
		serializer.prefixMappings = append(serializer.prefixMappings, PrefixMapping{Prefix: prefix, Namespace: namespace})
		serializer.prefixIndex[prefix] = namespace
		serializer.namespaceIndex[namespace] = prefix
	}
}

// writeXMLHeader writes the XML declaration and opening rdf:RDF element with namespace attributes.
func (serializer *RDFXMLSerializer) writeXMLHeader(builder *strings.Builder) {
	builder.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	builder.WriteString("<rdf:RDF")

	sortedPrefixes := make([]PrefixMapping, len(serializer.prefixMappings))
	copy(sortedPrefixes, serializer.prefixMappings)
	sort.Slice(sortedPrefixes, func(i, j int) bool {
		return sortedPrefixes[i].Prefix < sortedPrefixes[j].Prefix
	})

	for _, mapping := range sortedPrefixes {
		if mapping.Prefix == "" {
			fmt.Fprintf(builder, "\n    xmlns=\"%s\"", escapeXMLAttribute(mapping.Namespace))
			continue
		}
		fmt.Fprintf(builder, "\n    xmlns:%s=\"%s\"", mapping.Prefix, escapeXMLAttribute(mapping.Namespace))
	}

	builder.WriteString(">\n")
}

// writeXMLFooter writes the closing rdf:RDF element.
func (serializer *RDFXMLSerializer) writeXMLFooter(builder *strings.Builder) {
	builder.WriteString("</rdf:RDF>\n")
}

// writeDescription writes the node element block for a single subject.
func (serializer *RDFXMLSerializer) writeDescription(
	builder *strings.Builder,
	subject string,
	triples []Triple,
) {
	nodeElement := "rdf:Description"
	typedBy := -1
	for index, triple := range triples {
		if triple.Predicate == RDFType && !triple.IsLiteral() {
			if elementName, ok := serializer.qualifiedName(triple.Object); ok {
				nodeElement = elementName
				typedBy = index
			}
			break
		}
	}

	builder.WriteString("\n")
	fmt.Fprintf(builder, "  <%s %s>\n", nodeElement, serializer.subjectAttribute(subject))

	for index, triple := range triples {
		if index == typedBy {
			continue
		}
		serializer.writeProperty(builder, triple)
	}

	fmt.Fprintf(builder, "  </%s>\n", nodeElement)
}

func (serializer *RDFXMLSerializer) subjectAttribute(subject string) string {
	if nodeID, ok := strings.CutPrefix(subject, "_:"); ok {
		return fmt.Sprintf("rdf:nodeID=\"%s\"", escapeXMLAttribute(nodeID))
	}
	return fmt.Sprintf("rdf:about=\"%s\"", escapeXMLAttribute(serializer.expandToFullURI(subject)))
}

// writeProperty writes a single predicate-object pair as an XML element.
func (serializer *RDFXMLSerializer) writeProperty(builder *strings.Builder, triple Triple) {
	elementName := serializer.predicateToElementName(triple.Predicate)

	switch {
	case triple.Kind == KindBlank || (triple.Kind == KindAuto && strings.HasPrefix(triple.Object, "_:")):
		fmt.Fprintf(builder, "    <%s rdf:nodeID=\"%s\"/>\n", elementName,
			escapeXMLAttribute(strings.TrimPrefix(triple.Object, "_:")))
	case triple.IsLiteral():
		fmt.Fprintf(builder, "    <%s>%s</%s>\n", elementName, escapeXMLText(triple.Object), elementName)
	default:
		objectURI := serializer.expandToFullURI(triple.Object)
		fmt.Fprintf(builder, "    <%s rdf:resource=\"%s\"/>\n", elementName, escapeXMLAttribute(objectURI))
	}
}

// predicateToElementName converts a predicate URI or prefixed name to an XML element name.
func (serializer *RDFXMLSerializer) predicateToElementName(predicate string) string {
	if elementName, ok := serializer.qualifiedName(predicate); ok {
		return elementName
	}
	// Already a prefixed name like "rdf:type", or an IRI that cannot be split.
	return predicate
}

// qualifiedName compacts a full IRI to prefix:local, or to local when the
// namespace is the default (empty prefix) namespace.
func (serializer *RDFXMLSerializer) qualifiedName(iri string) (string, bool) {
	if !isFullURI(iri) {
		return "", false
	}
	prefix, localName, ok := serializer.splitPrefixedName(iri)
	if !ok || !isValidXMLName(localName) {
		return "", false
	}
	if prefix == "" {
		return localName, true
	}
	return prefix + ":" + localName, true
}

// expandToFullURI converts a prefixed name to its full URI form.
// If the value is already a full URI, it is returned unchanged.
func (serializer *RDFXMLSerializer) expandToFullURI(value string) string {
	if isFullURI(value) {
		return value
	}

	colonIndex := strings.Index(value, ":")
	if colonIndex <= 0 {
		return value
	}

	prefix := value[:colonIndex]
	localName := value[colonIndex+1:]

	if namespace, exists := serializer.prefixIndex[prefix]; exists {
		return namespace + localName
	}

	return value
}

// splitPrefixedName splits a full URI into a registered prefix and local name.
// Returns the prefix, local name, and whether a matching namespace was found.
func (serializer *RDFXMLSerializer) splitPrefixedName(fullURI string) (string, string, bool) {
	bestNamespace := ""
	found := false

	for namespace := range serializer.namespaceIndex {
		if strings.HasPrefix(fullURI, namespace) && len(namespace) >= len(bestNamespace) {
			if fullURI[len(namespace):] != "" {
				bestNamespace = namespace
				found = true
			}
		}
	}

	if found {
		return serializer.namespaceIndex[bestNamespace], fullURI[len(bestNamespace):], true
	}

	return "", "", false
}

// isURIObject determines whether an object value is a URI reference (as opposed to a literal).
func isURIObject(value string) bool {
	return isFullURI(value) || isPrefixedName(value) || strings.HasPrefix(value, "_:")
}

// isValidXMLName checks that a local name can be used as an XML element name.
func isValidXMLName(name string) bool {
	if name == "" {
		return false
	}
	for index, char := range name {
		isLetter := (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == '_'
		if index == 0 && !isLetter {
			return false
		}
		if !isLetter && !(char >= '0' && char <= '9') && char != '-' && char != '.' {
			return false
		}
	}
	return true
}

// escapeXMLText escapes characters that are special in XML text content.
func escapeXMLText(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeXMLAttribute escapes characters that are special in XML attribute values.
func escapeXMLAttribute(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		case '"':
			builder.WriteString("&quot;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
