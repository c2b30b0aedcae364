package populate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/roadsign/pkg/ncs"
	"github.com/coolbeans/roadsign/pkg/store"
)

func TestMetrics_CountRun(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)

	ts := signStore(t)
	require.NoError(t, ts.AddTriple(store.NewLiteralTriple(sign2, rss(store.PropSymbolColour), "NCS S 1050-X")))

	_, err = NewPipeline(ncs.NewRuleClassifier(), WithErrorPolicy(Skip), WithMetrics(metrics)).Run(ts)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.records.WithLabelValues("populated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.records.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failures.WithLabelValues("unrecognized_hue")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.classifications.WithLabelValues("rules", "red")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.classifications.WithLabelValues("rules", "white")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs))
}

func TestMetrics_FailedRecordsAddNoClassifications(t *testing.T) {
	testCases := []struct {
		name   string
		policy ErrorPolicy
	}{
		{name: "skip", policy: Skip},
		{name: "halt", policy: Halt},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			metrics, err := NewMetrics()
			require.NoError(t, err)

			ts := store.NewTripleStore()
			require.NoError(t, ts.AddTriple(store.NewTriple(sign1, store.RDFType, store.RSSRoadSign)))
			require.NoError(t, ts.AddTriple(store.NewLiteralTriple(sign1, rss(store.PropBorderColour), "NCS S 1050-Y90R")))
			require.NoError(t, ts.AddTriple(store.NewLiteralTriple(sign1, rss(store.PropGroundColour), "NCS S 0500-N")))
			require.NoError(t, ts.AddTriple(store.NewLiteralTriple(sign1, rss(store.PropSymbolColour), "purple")))

			_, _ = NewPipeline(ncs.NewRuleClassifier(), WithErrorPolicy(testCase.policy), WithMetrics(metrics)).Run(ts)

			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.records.WithLabelValues("failed")))
			assert.Zero(t, testutil.CollectAndCount(metrics.classifications))
		})
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)

	_, err = NewPipeline(ncs.NewRuleClassifier(), WithMetrics(metrics)).Run(signStore(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roadsign.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `roadsign_populate_records_total{status="populated"} 2`)
	assert.Contains(t, string(data), "roadsign_populate_runs_total 1")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.recordPopulated("rules", Record{BorderColour: "RED"})
		metrics.recordFailure(ErrUnrecognizedColour)
		metrics.observeRun(0)
	})
	assert.NoError(t, metrics.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "unknown_code", failureReason(&RecordError{Err: &ncs.CodeError{Err: ncs.ErrUnknownCode}}))
	assert.Equal(t, "conflicting_metadata", failureReason(ErrConflictingMetadata))
	assert.Equal(t, "other", failureReason(os.ErrNotExist))
}
