package update

import (
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/ldt/model"
)

func TestSPARQL(t *testing.T) {
	typed, err := quad.ReadAll(nquads.NewReader(strings.NewReader(
		`<http://example.org/alice> <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
<http://example.org/alice> <http://example.org/ok> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .
<http://example.org/alice> <http://example.org/born> "2020-01-02T03:04:05Z"^^<http://www.w3.org/2001/XMLSchema#dateTime> .
<http://example.org/alice> <http://example.org/note> "say \"hi\""@en .
`), false))
	require.NoError(t, err)
	data := model.New(
		quad.Quad{Subject: iri("http://example.org/alice"), Predicate: iri("http://xmlns.com/foaf/0.1/name"), Object: quad.String("Alice")},
		quad.Quad{Subject: iri("http://example.org/alice"), Predicate: iri("http://xmlns.com/foaf/0.1/knows"), Object: iri("http://example.org/bob")},
	)
	cases := []struct {
		name   string
		b      *InsertDataBuilder
		expect string
	}{
		{
			name: "default graph",
			b:    FromData(data),
			expect: `INSERT DATA {
  <http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
  <http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.org/bob> .
}`,
		},
		{
			name: "named graph",
			b:    FromGraphURIData(graphIRI, data),
			expect: `INSERT DATA {
  GRAPH <http://example.org/graphs/people> {
    <http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
    <http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.org/bob> .
  }
}`,
		},
		{
			name: "typed literals",
			b:    FromQuads(typed),
			expect: `INSERT DATA {
  <http://example.org/alice> <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
  <http://example.org/alice> <http://example.org/ok> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .
  <http://example.org/alice> <http://example.org/born> "2020-01-02T03:04:05Z"^^<http://www.w3.org/2001/XMLSchema#dateTime> .
  <http://example.org/alice> <http://example.org/note> "say \"hi\""@en .
}`,
		},
		{
			name: "native values",
			b: FromData(model.New(
				quad.Quad{Subject: iri("http://example.org/alice"), Predicate: iri("http://example.org/age"), Object: quad.Int(42)},
				quad.Quad{Subject: iri("http://example.org/alice"), Predicate: iri("http://example.org/ok"), Object: quad.Bool(false)},
			)),
			expect: `INSERT DATA {
  <http://example.org/alice> <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
  <http://example.org/alice> <http://example.org/ok> "false"^^<http://www.w3.org/2001/XMLSchema#boolean> .
}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := c.b.SPARQL()
			require.NoError(t, err)
			require.Equal(t, c.expect, s)
		})
	}
}

func TestWithText(t *testing.T) {
	b := FromData(model.New(quad.Quad{
		Subject: iri("http://example.org/s"), Predicate: iri("http://example.org/p"), Object: iri("http://example.org/o"),
	})).WithText().Comment("generated")
	require.NoError(t, b.Err())

	text, ok := b.Resource().Property(iriText)
	require.True(t, ok)
	require.Equal(t, quad.String("INSERT DATA {\n  <http://example.org/s> <http://example.org/p> <http://example.org/o> .\n}"), text)

	comment, ok := b.Resource().Property(iriComment)
	require.True(t, ok)
	require.Equal(t, quad.String("generated"), comment)
}
