package populate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coolbeans/roadsign/pkg/ncs"
)

// Metrics holds the Prometheus counters of population runs. A nil *Metrics
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	records         *prometheus.CounterVec // by status: populated, failed
	classifications *prometheus.CounterVec // by classifier and colour
	failures        *prometheus.CounterVec // by reason
	runDuration     prometheus.Gauge
	runs            prometheus.Counter
}

// NewMetrics creates the run metrics on their own registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadsign",
			Subsystem: "populate",
			Name:      "records_total",
			Help:      "Road-sign records processed, by outcome",
		}, []string{"status"}),

		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadsign",
			Subsystem: "populate",
			Name:      "classifications_total",
			Help:      "Colour values classified, by classifier and primary colour",
		}, []string{"classifier", "colour"}),

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadsign",
			Subsystem: "populate",
			Name:      "failures_total",
			Help:      "Records that could not be built, by reason",
		}, []string{"reason"}),

		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadsign",
			Subsystem: "populate",
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last completed run",
		}),

		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadsign",
			Subsystem: "populate",
			Name:      "runs_total",
			Help:      "Completed population runs",
		}),
	}

	for _, collector := range []prometheus.Collector{m.records, m.classifications, m.failures, m.runDuration, m.runs} {
		if err := m.registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register populate metrics: %w", err)
		}
	}

	return m, nil
}

// WriteTextfile writes the current values in the node_exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

// recordPopulated counts a built record and the colours it carries. Colours
// of records that fail are never counted.
func (m *Metrics) recordPopulated(classifier string, record Record) {
	if m == nil {
		return
	}
	m.records.WithLabelValues("populated").Inc()
	for _, colour := range []string{record.BorderColour, record.GroundColour, record.SymbolColour} {
		if colour != "" {
			m.classifications.WithLabelValues(classifier, strings.ToLower(colour)).Inc()
		}
	}
}

func (m *Metrics) recordFailure(err error) {
	if m == nil {
		return
	}
	m.records.WithLabelValues("failed").Inc()
	m.failures.WithLabelValues(failureReason(err)).Inc()
}

func (m *Metrics) observeRun(duration time.Duration) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.runDuration.Set(duration.Seconds())
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ncs.ErrMalformedCode):
		return "malformed_code"
	case errors.Is(err, ncs.ErrUnrecognizedHue):
		return "unrecognized_hue"
	case errors.Is(err, ncs.ErrUnknownCode):
		return "unknown_code"
	case errors.Is(err, ErrUnrecognizedColour):
		return "unrecognized_colour"
	case errors.Is(err, ErrConflictingMetadata):
		return "conflicting_metadata"
	default:
		return "other"
	}
}
