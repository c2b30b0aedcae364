package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Formats(t *testing.T) {
	ts := newSampleStore(t)
	prefix := PrefixMapping{Prefix: "", Namespace: "http://example.org/data#"}

	testCases := []struct {
		format   Format
		contains string
	}{
		{FormatRDFXML, `xmlns="http://example.org/data#"`},
		{FormatTurtle, "@prefix onto: <http://example.org/data#> ."},
		{FormatNTriples, "<http://example.org/data#sign_b> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type>"},
		{FormatJSONLD, `"onto": "http://example.org/data#"`},
	}

	for _, testCase := range testCases {
		t.Run(string(testCase.format), func(t *testing.T) {
			output, err := Serialize(ts, testCase.format, prefix)
			require.NoError(t, err)
			assert.Contains(t, output, testCase.contains)
		})
	}

	_, err := Serialize(ts, Format("yaml"))
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ontology_populated.owl")
	ts := newSampleStore(t)

	require.NoError(t, WriteFile(path, ts, FormatRDFXML))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<rss:road_sign rdf:about=\"http://example.org/data#sign_a\">")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.Error(t, WriteFile(path, ts, Format("yaml")))
	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, unchanged)
}
