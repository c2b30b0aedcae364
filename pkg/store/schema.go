// Package store provides RDF triple storage, parsing, serialization and the
// vocabulary used by road-sign data and the road-sign ontology.
package store

// Namespace URIs.
const (
	// NamespaceRSS is the road-sign schema namespace of the source catalogue.
	NamespaceRSS = "http://www.iiia.csic.es/~marco/kr/roadsign-schema#"

	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceOWL is the Web Ontology Language namespace.
	NamespaceOWL = "http://www.w3.org/2002/07/owl#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceDC is the Dublin Core elements namespace used for image metadata.
	NamespaceDC = "http://purl.org/dc/elements/1.1/"

	// NamespaceFOAF is the Friend of a Friend namespace (foaf:depicts).
	NamespaceFOAF = "http://xmlns.com/foaf/0.1/"
)

// RDF, RDFS and OWL terms as full IRIs.
const (
	// RDFType indicates the class of a resource.
	RDFType = NamespaceRDF + "type"

	// RDFSLabel provides a human-readable label.
	RDFSLabel = NamespaceRDFS + "label"

	// OWLOntology is the class of the ontology header resource.
	OWLOntology = NamespaceOWL + "Ontology"

	// OWLNamedIndividual is the type owlready2 gives every individual.
	OWLNamedIndividual = NamespaceOWL + "NamedIndividual"

	// OWLClass is the type of ontology classes.
	OWLClass = NamespaceOWL + "Class"

	// OWLObjectProperty is the type of properties between individuals.
	OWLObjectProperty = NamespaceOWL + "ObjectProperty"

	// OWLDatatypeProperty is the type of properties with literal values.
	OWLDatatypeProperty = NamespaceOWL + "DatatypeProperty"
)

// Source catalogue terms.
const (
	// RSSRoadSign is the class of road-sign subjects in the source data.
	RSSRoadSign = NamespaceRSS + "road_sign"

	// FOAFDepicts links an image to the sign it shows.
	FOAFDepicts = NamespaceFOAF + "depicts"

	// DCCreator is the creator of an image.
	DCCreator = NamespaceDC + "creator"

	// DCDate is the date of an image.
	DCDate = NamespaceDC + "date"
)

// Local names of the source properties a road sign is assembled from.
const (
	PropType         = "type"
	PropShape        = "shape"
	PropBorderColour = "border_colour"
	PropGroundColour = "ground_colour"
	PropSymbol       = "symbol"
	PropSymbolColour = "symbol_colour"
	PropSymbolValue  = "symbol_value"
	PropDepicts      = "depicts"
	PropCreator      = "creator"
	PropDate         = "date"
)
