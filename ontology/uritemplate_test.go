package ontology

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var uriTemplateCases = []struct {
	name    string
	tmpl    string
	path    string
	vars    map[string]string
	nomatch bool
}{
	{name: "literal", tmpl: "/items", path: "/items", vars: map[string]string{}},
	{name: "no leading slash", tmpl: "items", path: "/items", vars: map[string]string{}},
	{name: "literal mismatch", tmpl: "/items", path: "/item", nomatch: true},
	{name: "var", tmpl: "/items/{id}", path: "/items/42", vars: map[string]string{"id": "42"}},
	{name: "var spans one segment", tmpl: "/items/{id}", path: "/items/4/2", nomatch: true},
	{name: "regex var", tmpl: "/files/{path: .+}", path: "/files/a/b.txt", vars: map[string]string{"path": "a/b.txt"}},
	{name: "regex var mismatch", tmpl: "/items/{id: [0-9]+}", path: "/items/abc", nomatch: true},
	{name: "regex with braces", tmpl: "/y/{year: [0-9]{4}}", path: "/y/2024", vars: map[string]string{"year": "2024"}},
	{name: "two vars", tmpl: "/{a}/x/{b}", path: "/1/x/2", vars: map[string]string{"a": "1", "b": "2"}},
	{name: "repeated var", tmpl: "/{a}/{a}", path: "/1/1", vars: map[string]string{"a": "1"}},
	{name: "repeated var differs", tmpl: "/{a}/{a}", path: "/1/2", nomatch: true},
	{name: "meta chars", tmpl: "/a.b", path: "/axb", nomatch: true},
}

func TestURITemplateMatch(t *testing.T) {
	for _, c := range uriTemplateCases {
		t.Run(c.name, func(t *testing.T) {
			ut, err := ParseURITemplate(c.tmpl)
			require.NoError(t, err)
			vars, ok := ut.Match(c.path)
			if c.nomatch {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Equal(t, c.vars, vars)
		})
	}
}

func TestURITemplateCounts(t *testing.T) {
	ut, err := ParseURITemplate("/items/{id}/{rest: .*}")
	require.NoError(t, err)
	require.Equal(t, "/items/{id}/{rest: .*}", ut.String())
	require.Equal(t, []string{"id", "rest"}, ut.Variables())
	require.Equal(t, len("/items/")+len("/"), ut.LiteralChars())
	require.Equal(t, 1, ut.RegexVariables())
}

func TestURITemplateInvalid(t *testing.T) {
	for _, tmpl := range []string{
		"/items/{id",
		"/items/id}",
		"/items/{}",
		"/items/{id: }",
		"/items/{id: [}",
		"/items/{a b}",
	} {
		_, err := ParseURITemplate(tmpl)
		require.ErrorIs(t, err, ErrInvalidTemplate, tmpl)
	}
}

func TestURITemplateCached(t *testing.T) {
	a, err := ParseURITemplate("/cached/{id}")
	require.NoError(t, err)
	b, err := ParseURITemplate("/cached/{id}")
	require.NoError(t, err)
	require.Same(t, a, b)
}
