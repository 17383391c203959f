package command

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/ldt/internal/config"
	_ "github.com/cayleygraph/ldt/voc/sp"
)

const testData = `<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
`

const ontologyData = `<http://example.org/ns#> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Ontology> .
<http://example.org/ns#Item> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <https://www.w3.org/ns/ldt#Template> .
<http://example.org/ns#Item> <http://www.w3.org/2000/01/rdf-schema#isDefinedBy> <http://example.org/ns#> .
<http://example.org/ns#Item> <https://www.w3.org/ns/ldt#path> "/items/{id}" .
`

func writeFile(t testing.TB, name, data string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func run(t testing.TB, cmd *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInsertDataSPARQL(t *testing.T) {
	path := writeFile(t, "data.nq", testData)
	out, err := run(t, NewInsertDataCmd(), path, "--graph", "http://example.org/g")
	require.NoError(t, err)
	require.Equal(t, "INSERT DATA {\n"+
		"  GRAPH <http://example.org/g> {\n"+
		"    <http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n"+
		"  }\n"+
		"}\n", out)
}

func TestInsertDataRDF(t *testing.T) {
	path := writeFile(t, "data.nq", testData)
	out, err := run(t, NewInsertDataCmd(), path, "--format", "nquads")
	require.NoError(t, err)
	quads, err := quad.ReadAll(nquads.NewReader(strings.NewReader(out), false))
	require.NoError(t, err)
	var found bool
	for _, q := range quads {
		if q.Predicate == quad.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type") &&
			q.Object == quad.IRI("http://spinrdf.org/sp#InsertData") {
			found = true
		}
	}
	require.True(t, found, "no INSERT DATA resource")
}

func TestInsertDataCompact(t *testing.T) {
	path := writeFile(t, "data.nq", testData)
	out, err := run(t, NewInsertDataCmd(), path, "--format", "jsonld", "--compact")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Contains(t, doc, "@context")
	require.Contains(t, out, "sp:InsertData")
}

func TestInsertDataErrors(t *testing.T) {
	path := writeFile(t, "data.nq", testData)
	_, err := run(t, NewInsertDataCmd(), path, "--compact")
	require.Error(t, err)
	_, err = run(t, NewInsertDataCmd(), path, "--graph", "relative")
	require.Error(t, err)
	_, err = run(t, NewInsertDataCmd(), path, "--format", "unknown")
	require.Error(t, err)
}

func TestMatch(t *testing.T) {
	viper.Set(config.KeyOntologyPath, writeFile(t, "ontology.nq", ontologyData))
	defer viper.Set(config.KeyOntologyPath, "")

	out, err := run(t, NewMatchCmd(), "http://localhost/items/7")
	require.NoError(t, err)
	var call struct {
		Template  string            `json:"template"`
		Variables map[string]string `json:"variables"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &call))
	require.Equal(t, "http://example.org/ns#Item", call.Template)
	require.Equal(t, map[string]string{"id": "7"}, call.Variables)

	_, err = run(t, NewMatchCmd(), "http://localhost/other")
	require.ErrorIs(t, err, errNoMatch)

	_, err = run(t, NewMatchCmd(), "/items/7")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, NewVersionCmd())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ldt "))
}
