package populate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/roadsign/pkg/ncs"
	"github.com/coolbeans/roadsign/pkg/store"
)

const (
	dataNS = "http://example.org/roadsign-data#"
	sign1  = dataNS + "sign_1"
	sign2  = dataNS + "sign_2"
	photo1 = "http://example.org/images/sign_1.jpg"
	photo2 = "http://example.org/images/sign_2.jpg"
)

const sampleData = `@prefix rss: <http://www.iiia.csic.es/~marco/kr/roadsign-schema#> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix dc: <http://purl.org/dc/elements/1.1/> .
@prefix data: <http://example.org/roadsign-data#> .

data:sign_1 a rss:road_sign ;
    rss:shape "Triangular" ;
    rss:border_colour "NCS S 1050-Y90R" ;
    rss:ground_colour "NCS S 0500-N" ;
    rss:symbol_colour "NCS S 1050-Y90R" .

<http://example.org/images/sign_1.jpg> foaf:depicts data:sign_1 ;
    dc:creator "Marco" ;
    dc:date "2011-05-03" .
`

func testTable() *ncs.LookupTable {
	return ncs.NewLookupTable(map[string]ncs.RGB{
		"S 1050-Y90R": {R: 223, G: 107, B: 67},
		"S 0500-N":    {R: 242, G: 242, B: 236},
		"S 2060-R80B": {R: 0, G: 84, B: 155},
		"S 9000-N":    {R: 40, G: 40, B: 40},
	})
}

func rss(property string) string {
	return store.NamespaceRSS + property
}

// signStore builds a store with sign_1 fully described and sign_2 with a
// symbol and symbol value but no image.
func signStore(t *testing.T) *store.TripleStore {
	t.Helper()

	ts := store.NewTripleStore()
	triples := []store.Triple{
		store.NewTriple(sign1, store.RDFType, store.RSSRoadSign),
		store.NewLiteralTriple(sign1, rss(store.PropShape), "Triangular"),
		store.NewLiteralTriple(sign1, rss(store.PropBorderColour), "NCS S 1050-Y90R"),
		store.NewLiteralTriple(sign1, rss(store.PropGroundColour), "NCS S 0500-N"),
		store.NewLiteralTriple(sign1, rss(store.PropSymbolColour), "NCS S 1050-Y90R"),
		store.NewTriple(photo1, store.FOAFDepicts, sign1),
		store.NewLiteralTriple(photo1, store.DCCreator, "Marco"),
		store.NewLiteralTriple(photo1, store.DCDate, "2011-05-03"),

		store.NewTriple(sign2, store.RDFType, store.RSSRoadSign),
		store.NewLiteralTriple(sign2, rss(store.PropShape), "Circular"),
		store.NewLiteralTriple(sign2, rss(store.PropBorderColour), "NCS S 1050-Y90R"),
		store.NewLiteralTriple(sign2, rss(store.PropGroundColour), "white"),
		store.NewLiteralTriple(sign2, rss(store.PropSymbol), "speed limit"),
		store.NewLiteralTriple(sign2, rss(store.PropSymbolValue), "50 km/h, 10%"),
	}
	for _, triple := range triples {
		require.NoError(t, ts.AddTriple(triple))
	}
	return ts
}

func TestPipeline_EndToEndFromTurtle(t *testing.T) {
	ts, err := store.Decode(strings.NewReader(sampleData), store.FormatTurtle)
	require.NoError(t, err)

	for _, approach := range ncs.Approaches() {
		t.Run(string(approach), func(t *testing.T) {
			classifier, err := ncs.NewClassifier(approach, testTable())
			require.NoError(t, err)

			result, err := NewPipeline(classifier).Run(ts)
			require.NoError(t, err)
			require.Len(t, result.Records, 1)

			assert.Equal(t, Record{
				Subject:      sign1,
				Shape:        "TRIANGULAR",
				BorderColour: "RED",
				GroundColour: "WHITE",
				SymbolColour: "RED",
				Symbol:       NoSymbol,
				Image:        photo1,
				ImageCreator: "Marco",
				ImageDate:    "2011-05-03",
			}, result.Records[0])
			assert.Empty(t, result.Skipped)
			assert.NotEmpty(t, result.RunID)
		})
	}
}

func TestPipeline_RecordsInDetectionOrder(t *testing.T) {
	result, err := NewPipeline(ncs.NewNearestClassifier(testTable())).Run(signStore(t))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	second := result.Records[1]
	assert.Equal(t, sign2, second.Subject)
	assert.Equal(t, "CIRCULAR", second.Shape)
	assert.Equal(t, "WHITE", second.GroundColour)
	assert.Equal(t, "SPEED_LIMIT", second.Symbol)
	assert.Equal(t, "50_KM/H._10PERCENT", second.SymbolValue)
	assert.Empty(t, second.SymbolColour)
	assert.Empty(t, second.Image)
	assert.Empty(t, second.ImageCreator)
}

func TestPipeline_CustomRoadSignClass(t *testing.T) {
	ts := store.NewTripleStore()
	require.NoError(t, ts.Add(sign1, store.RDFType, dataNS+"Sign"))
	require.NoError(t, ts.AddTriple(store.NewLiteralTriple(sign1, rss(store.PropShape), "Octagonal")))
	require.NoError(t, ts.Add(sign2, store.RDFType, store.RSSRoadSign))

	result, err := NewPipeline(ncs.NewRuleClassifier(), WithRoadSignClass(dataNS+"Sign")).Run(ts)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "OCTAGONAL", result.Records[0].Shape)
}

func TestPipeline_ResourceValuesUseLocalName(t *testing.T) {
	ts := store.NewTripleStore()
	require.NoError(t, ts.Add(sign1, store.RDFType, store.RSSRoadSign))
	require.NoError(t, ts.Add(sign1, rss(store.PropSymbol), dataNS+"arrow_left"))

	result, err := NewPipeline(ncs.NewRuleClassifier()).Run(ts)
	require.NoError(t, err)
	assert.Equal(t, "ARROW_LEFT", result.Records[0].Symbol)
}

func TestPipeline_ClassificationFailures(t *testing.T) {
	testCases := []struct {
		name       string
		classifier ncs.Classifier
		value      string
		expected   error
	}{
		{"unknown hue", ncs.NewRuleClassifier(), "NCS S 1050-X", ncs.ErrUnrecognizedHue},
		{"malformed code", ncs.NewRuleClassifier(), "NCS S 10a0-R", ncs.ErrMalformedCode},
		{"unknown code", ncs.NewNearestClassifier(testTable()), "NCS S 3030-G", ncs.ErrUnknownCode},
		{"bare non primary word", ncs.NewRuleClassifier(), "pink", ErrUnrecognizedColour},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ts := signStore(t)
			require.NoError(t, ts.AddTriple(store.NewLiteralTriple(sign2, rss(store.PropSymbolColour), testCase.value)))

			result, err := NewPipeline(testCase.classifier).Run(ts)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, testCase.expected))

			var recordErr *RecordError
			require.True(t, errors.As(err, &recordErr))
			assert.Equal(t, sign2, recordErr.Subject)
			assert.Equal(t, store.PropSymbolColour, recordErr.Property)
			assert.Equal(t, testCase.value, recordErr.Value)
			assert.Contains(t, err.Error(), testCase.value)
		})
	}
}

func TestPipeline_SkipPolicy(t *testing.T) {
	ts := signStore(t)
	require.NoError(t, ts.AddTriple(store.NewLiteralTriple(sign1, rss(store.PropGroundColour), "NCS S 1050-X")))

	result, err := NewPipeline(ncs.NewRuleClassifier(), WithErrorPolicy(Skip)).Run(ts)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, sign2, result.Records[0].Subject)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, sign1, result.Skipped[0].Subject)
	assert.ErrorIs(t, result.Skipped[0], ncs.ErrUnrecognizedHue)
}

func TestPipeline_MetadataPolicies(t *testing.T) {
	testCases := []struct {
		policy    MetadataPolicy
		creator   string
		expectErr bool
	}{
		{MetadataLast, "Ana", false},
		{MetadataFirst, "Marco", false},
		{MetadataReject, "", true},
	}

	for _, testCase := range testCases {
		t.Run(string(testCase.policy), func(t *testing.T) {
			ts := signStore(t)
			require.NoError(t, ts.AddTriple(store.NewLiteralTriple(photo1, store.DCCreator, "Ana")))

			result, err := NewPipeline(ncs.NewRuleClassifier(), WithMetadataPolicy(testCase.policy)).Run(ts)
			if testCase.expectErr {
				require.ErrorIs(t, err, ErrConflictingMetadata)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.creator, result.Records[0].ImageCreator)
			assert.Equal(t, "2011-05-03", result.Records[0].ImageDate)
		})
	}
}

func TestPipeline_FirstDepictingImageWins(t *testing.T) {
	ts := signStore(t)
	require.NoError(t, ts.Add(photo2, store.FOAFDepicts, sign1))
	require.NoError(t, ts.AddTriple(store.NewLiteralTriple(photo2, store.DCCreator, "Ana")))

	result, err := NewPipeline(ncs.NewRuleClassifier()).Run(ts)
	require.NoError(t, err)
	assert.Equal(t, photo1, result.Records[0].Image)
	assert.Equal(t, "Marco", result.Records[0].ImageCreator)
}

func TestPipeline_RunIDsDiffer(t *testing.T) {
	pipeline := NewPipeline(ncs.NewRuleClassifier())
	first, err := pipeline.Run(signStore(t))
	require.NoError(t, err)
	second, err := pipeline.Run(signStore(t))
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestParsePolicies(t *testing.T) {
	policy, err := ParseErrorPolicy("SKIP")
	require.NoError(t, err)
	assert.Equal(t, Skip, policy)
	_, err = ParseErrorPolicy("retry")
	require.Error(t, err)

	metadata, err := ParseMetadataPolicy("first")
	require.NoError(t, err)
	assert.Equal(t, MetadataFirst, metadata)
	_, err = ParseMetadataPolicy("newest")
	require.Error(t, err)
}
