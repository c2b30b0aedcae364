package populate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coolbeans/roadsign/pkg/ncs"
	"github.com/coolbeans/roadsign/pkg/store"
)

// ErrorPolicy decides what a failed record does to the run.
type ErrorPolicy string

const (
	// Halt aborts the run on the first failed record.
	Halt ErrorPolicy = "halt"

	// Skip drops the failed record and carries on.
	Skip ErrorPolicy = "skip"
)

// ParseErrorPolicy validates a policy name.
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch policy := ErrorPolicy(strings.ToLower(name)); policy {
	case Halt, Skip:
		return policy, nil
	default:
		return "", fmt.Errorf("unknown error policy %q (want halt or skip)", name)
	}
}

// MetadataPolicy decides which value wins when an image has several creator
// or date values.
type MetadataPolicy string

const (
	MetadataLast   MetadataPolicy = "last"
	MetadataFirst  MetadataPolicy = "first"
	MetadataReject MetadataPolicy = "reject"
)

// ParseMetadataPolicy validates a policy name.
func ParseMetadataPolicy(name string) (MetadataPolicy, error) {
	switch policy := MetadataPolicy(strings.ToLower(name)); policy {
	case MetadataLast, MetadataFirst, MetadataReject:
		return policy, nil
	default:
		return "", fmt.Errorf("unknown metadata policy %q (want last, first or reject)", name)
	}
}

// Result is the outcome of one run.
type Result struct {
	RunID   string
	Records []Record
	Skipped []*RecordError
}

// Pipeline builds road-sign records from a triple store.
type Pipeline struct {
	classifier     ncs.Classifier
	roadSignClass  string
	errorPolicy    ErrorPolicy
	metadataPolicy MetadataPolicy
	logger         *slog.Logger
	metrics        *Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRoadSignClass sets the rdf:type IRI that marks a road-sign subject.
func WithRoadSignClass(iri string) Option {
	return func(p *Pipeline) {
		p.roadSignClass = iri
	}
}

// WithErrorPolicy sets what happens to the run when a record fails.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(p *Pipeline) {
		p.errorPolicy = policy
	}
}

// WithMetadataPolicy sets how repeated image metadata is resolved.
func WithMetadataPolicy(policy MetadataPolicy) Option {
	return func(p *Pipeline) {
		p.metadataPolicy = policy
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics records run counters in metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// NewPipeline creates a pipeline that classifies colours with classifier.
// By default it halts on the first failure and keeps the last value of
// repeated image metadata.
func NewPipeline(classifier ncs.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier:     classifier,
		roadSignClass:  store.RSSRoadSign,
		errorPolicy:    Halt,
		metadataPolicy: MetadataLast,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run builds one record per road-sign subject, in the order the subjects
// were typed in the store. Under Halt the first failure is returned as a
// *RecordError and no result is produced.
func (p *Pipeline) Run(ts *store.TripleStore) (*Result, error) {
	started := time.Now()
	result := &Result{RunID: uuid.NewString()}
	logger := p.logger.With("run_id", result.RunID, "classifier", p.classifier.Name())

	for _, subject := range p.roadSigns(ts) {
		record, err := p.buildRecord(ts, subject)
		if err != nil {
			p.metrics.recordFailure(err)
			if p.errorPolicy != Skip {
				logger.Error("record failed, halting run", "subject", subject, "error", err)
				return nil, err
			}
			logger.Warn("skipping record", "subject", subject, "error", err)
			result.Skipped = append(result.Skipped, err)
			continue
		}

		logger.Debug("record built", "subject", subject, "shape", record.Shape, "image", record.Image)
		p.metrics.recordPopulated(p.classifier.Name(), record)
		result.Records = append(result.Records, record)
	}

	p.metrics.observeRun(time.Since(started))
	logger.Info("population finished",
		"records", len(result.Records),
		"skipped", len(result.Skipped),
		"duration", time.Since(started))

	return result, nil
}

// roadSigns returns each subject typed with the road-sign class once, in
// first-typed order.
func (p *Pipeline) roadSigns(ts *store.TripleStore) []string {
	var subjects []string
	seen := make(map[string]bool)

	for _, triple := range ts.Find("", "", p.roadSignClass) {
		if store.LocalName(triple.Predicate) != store.PropType || triple.IsLiteral() || seen[triple.Subject] {
			continue
		}
		seen[triple.Subject] = true
		subjects = append(subjects, triple.Subject)
	}

	return subjects
}

func (p *Pipeline) buildRecord(ts *store.TripleStore, subject string) (Record, *RecordError) {
	record := Record{Subject: subject}
	seen := make(map[string]bool)

	for _, triple := range ts.Find(subject, "", "") {
		property := store.LocalName(triple.Predicate)
		seen[property] = true
		value := objectText(triple)

		switch property {
		case store.PropShape:
			record.Shape = NormalizeLabel(value)
		case store.PropBorderColour, store.PropGroundColour, store.PropSymbolColour:
			colour, err := p.classify(value)
			if err != nil {
				return Record{}, &RecordError{Subject: subject, Property: property, Value: value, Err: err}
			}
			switch property {
			case store.PropBorderColour:
				record.BorderColour = colour
			case store.PropGroundColour:
				record.GroundColour = colour
			default:
				record.SymbolColour = colour
			}
		case store.PropSymbol:
			record.Symbol = NormalizeLabel(value)
		case store.PropSymbolValue:
			record.SymbolValue = NormalizeSymbolValue(value)
		}
	}

	if !seen[store.PropSymbol] {
		record.Symbol = NoSymbol
	}

	record.Image = depictingImage(ts, subject)
	if record.Image == "" {
		return record, nil
	}

	if err := p.attachImageMetadata(ts, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// classify maps a raw colour value to an upper-case primary colour name.
func (p *Pipeline) classify(value string) (string, error) {
	name, err := p.classifier.Classify(value)
	if err != nil {
		return "", err
	}

	colour, ok := ncs.ParsePrimaryColour(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedColour, name)
	}
	return colour.String(), nil
}

// depictingImage returns the first subject that depicts sign, or "".
func depictingImage(ts *store.TripleStore, sign string) string {
	for _, triple := range ts.Find("", "", sign) {
		if store.LocalName(triple.Predicate) == store.PropDepicts {
			return triple.Subject
		}
	}
	return ""
}

func (p *Pipeline) attachImageMetadata(ts *store.TripleStore, record *Record) *RecordError {
	for _, triple := range ts.Find(record.Image, "", "") {
		var field *string
		property := store.LocalName(triple.Predicate)
		switch property {
		case store.PropCreator:
			field = &record.ImageCreator
		case store.PropDate:
			field = &record.ImageDate
		default:
			continue
		}

		value := triple.Object
		switch {
		case *field == "" || *field == value:
			*field = value
		case p.metadataPolicy == MetadataFirst:
			// keep the value already set
		case p.metadataPolicy == MetadataReject:
			return &RecordError{
				Subject:  record.Subject,
				Property: property,
				Value:    value,
				Err:      fmt.Errorf("%w: image %s already has %q", ErrConflictingMetadata, record.Image, *field),
			}
		default:
			*field = value
		}
	}
	return nil
}

// objectText is the textual value of a property: the literal itself, or the
// local name when the source links to a resource.
func objectText(triple store.Triple) string {
	if triple.IsLiteral() {
		return triple.Object
	}
	return store.LocalName(triple.Object)
}
