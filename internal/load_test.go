package internal

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"
)

const ontologyData = `<http://example.org/ns#> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Ontology> .
<http://example.org/ns#Item> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <https://www.w3.org/ns/ldt#Template> .
<http://example.org/ns#Item> <http://www.w3.org/2000/01/rdf-schema#isDefinedBy> <http://example.org/ns#> .
<http://example.org/ns#Item> <https://www.w3.org/ns/ldt#path> "/items/{id}" .
`

func writeFile(t testing.TB, name, data string, compress bool) string {
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	if compress {
		zw := gzip.NewWriter(f)
		_, err = zw.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		return path
	}
	_, err = f.Write([]byte(data))
	require.NoError(t, err)
	return path
}

func TestLoadOntology(t *testing.T) {
	for _, c := range []struct {
		name     string
		compress bool
	}{
		{"ont.nq", false},
		{"ont.nq.gz", true},
	} {
		t.Run(c.name, func(t *testing.T) {
			path := writeFile(t, c.name, ontologyData, c.compress)
			o, err := LoadOntology(path, "", "")
			require.NoError(t, err)
			require.Equal(t, quad.IRI("http://example.org/ns#"), o.IRI)
			require.Len(t, o.Templates, 1)
		})
	}
}

func TestLoadOntologyErrors(t *testing.T) {
	_, err := LoadOntology("", "", "")
	require.Error(t, err)

	_, err = LoadOntology(filepath.Join(t.TempDir(), "missing.nq"), "", "")
	require.Error(t, err)

	empty := writeFile(t, "empty.nq", "", false)
	_, err = LoadOntology(empty, "", "")
	require.Error(t, err)

	path := writeFile(t, "ont.nq", ontologyData, false)
	_, err = LoadOntology(path, "unknown", "")
	require.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("data.jsonld.gz", "")
	require.NoError(t, err)
	require.Equal(t, "jsonld", f.Name)

	f, err = FormatFor("data.txt", "")
	require.NoError(t, err)
	require.Equal(t, "nquads", f.Name)
}
