package populate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/roadsign/pkg/ncs"
	"github.com/coolbeans/roadsign/pkg/ontology"
)

func TestEmit(t *testing.T) {
	result, err := NewPipeline(ncs.NewNearestClassifier(testTable())).Run(signStore(t))
	require.NoError(t, err)

	kb := ontology.New(ontology.DefaultIRI)
	require.NoError(t, Emit(kb, result.Records))

	signs := kb.Instances(ontology.ClassRoadSign)
	require.Len(t, signs, 2)
	assert.Equal(t, kb.Entity("roadsign1"), signs[0])

	properties := kb.Store().Get(signs[0])
	assert.Equal(t, []string{kb.Entity("TRIANGULAR")}, properties[kb.Entity(ontology.PropertyShape)])
	assert.Equal(t, []string{kb.Entity("RED")}, properties[kb.Entity(ontology.PropertyBorderColor)])
	assert.Equal(t, []string{kb.Entity("WHITE")}, properties[kb.Entity(ontology.PropertyGroundColor)])
	assert.Equal(t, []string{kb.Entity("RED")}, properties[kb.Entity(ontology.PropertySymbolColor)])
	assert.Equal(t, []string{kb.Entity(NoSymbol)}, properties[kb.Entity(ontology.PropertySymbol)])
	assert.Equal(t, []string{photo1}, properties[kb.Entity(ontology.PropertyImage)])
	assert.Equal(t, []string{"Marco"}, properties[kb.Entity(ontology.PropertyImageCreator)])
	assert.Equal(t, []string{"2011-05-03"}, properties[kb.Entity(ontology.PropertyImageDate)])
	assert.NotContains(t, properties, kb.Entity(ontology.PropertySymbolValue))

	second := kb.Store().Get(signs[1])
	assert.Equal(t, []string{"50_KM/H._10PERCENT"}, second[kb.Entity(ontology.PropertySymbolValue)])
	assert.NotContains(t, second, kb.Entity(ontology.PropertyImage))

	assert.ElementsMatch(t, []string{kb.Entity("RED"), kb.Entity("WHITE")}, kb.Instances(ontology.ClassColor))
	assert.ElementsMatch(t, []string{kb.Entity("TRIANGULAR"), kb.Entity("CIRCULAR")}, kb.Instances(ontology.ClassShape))
	assert.ElementsMatch(t, []string{kb.Entity(NoSymbol), kb.Entity("SPEED_LIMIT")}, kb.Instances(ontology.ClassSymbol))
}

func TestEmit_InvalidIndividualName(t *testing.T) {
	kb := ontology.New(ontology.DefaultIRI)
	err := Emit(kb, []Record{{Subject: sign1, Shape: "TWO\tPARTS"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), sign1)
}

func generatedRecords(count int) []Record {
	records := make([]Record, count)
	for index := range records {
		records[index] = Record{
			Subject:      fmt.Sprintf("http://example.org/roadsign-data#sign_%d", index),
			Shape:        "TRIANGULAR",
			BorderColour: "RED",
			GroundColour: "WHITE",
			SymbolColour: "BLACK",
			Symbol:       fmt.Sprintf("SYMBOL_%d", index%50),
			SymbolValue:  fmt.Sprintf("%d", index%120),
			Image:        fmt.Sprintf("http://example.org/images/%d.jpg", index),
			ImageCreator: "Marco",
			ImageDate:    "2011-05-03",
		}
	}
	return records
}

func TestEmit_ScalesWithRecordCount(t *testing.T) {
	const count = 5000

	kb := ontology.New(ontology.DefaultIRI)
	before := kb.Store().Count()

	started := time.Now()
	require.NoError(t, Emit(kb, generatedRecords(count)))
	elapsed := time.Since(started)

	assert.Len(t, kb.Instances(ontology.ClassRoadSign), count)
	assert.Greater(t, kb.Store().Count()-before, count*10)
	assert.Less(t, elapsed, 5*time.Second, "emitting %d records took %v", count, elapsed)
}

func BenchmarkEmit(b *testing.B) {
	records := generatedRecords(2000)
	for i := 0; i < b.N; i++ {
		if err := Emit(ontology.New(ontology.DefaultIRI), records); err != nil {
			b.Fatal(err)
		}
	}
}
