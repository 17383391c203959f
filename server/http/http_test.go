package ldthttp

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/ldt/model"
	"github.com/cayleygraph/ldt/ontology"
	"github.com/cayleygraph/ldt/provider"
	"github.com/cayleygraph/ldt/update"
)

const ns = "http://example.org/ns#"

const testData = `<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
<http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.org/bob> .
`

func testOntology(t testing.TB) *ontology.Ontology {
	m := model.New(
		quad.MakeIRI(ns, "rdf:type", "owl:Ontology", ""),
		quad.MakeIRI(ns+"Item", "rdf:type", "ldt:Template", ""),
		quad.MakeIRI(ns+"Item", "rdfs:isDefinedBy", ns, ""),
		quad.MakeIRI(ns+"Item", "ldt:query", ns+"Describe", ""),
		quad.Make(quad.IRI(ns+"Item"), quad.IRI("ldt:path"), quad.String("/items/{id}"), nil),
	)
	o, err := ontology.Load(m, ns)
	require.NoError(t, err)
	return o
}

func newServer(t testing.TB, cfg *Config) *httptest.Server {
	mux := http.NewServeMux()
	SetupRoutes(mux, provider.New(provider.StaticOntology(testOntology(t))), cfg)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newServer(t, nil)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	srv := newServer(t, nil)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTemplateCall(t *testing.T) {
	srv := newServer(t, nil)
	resp, err := http.Get(srv.URL + "/items/42")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, contentTypeJSON, resp.Header.Get(hdrContentType))

	var out struct {
		Template  string            `json:"template"`
		Path      string            `json:"path"`
		Query     string            `json:"query"`
		Variables map[string]string `json:"variables"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, ns+"Item", out.Template)
	require.Equal(t, "/items/42", out.Path)
	require.Equal(t, ns+"Describe", out.Query)
	require.Equal(t, map[string]string{"id": "42"}, out.Variables)
}

func TestTemplateCallNotFound(t *testing.T) {
	srv := newServer(t, nil)
	resp, err := http.Get(srv.URL + "/other")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	data, _ := ioutil.ReadAll(resp.Body)
	require.Contains(t, string(data), `"error"`)
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t, nil)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/insert-data", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "http://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func postData(t testing.TB, url string, body string, hdr map[string]string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(hdrContentType, "application/n-quads")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestInsertDataSPARQL(t *testing.T) {
	srv := newServer(t, nil)
	resp := postData(t, srv.URL+"/api/v1/insert-data", testData, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, contentTypeSPARQLUpdate, resp.Header.Get(hdrContentType))
	data, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "INSERT DATA {\n"+
		"  <http://example.org/alice> <http://xmlns.com/foaf/0.1/name> \"Alice\" .\n"+
		"  <http://example.org/alice> <http://xmlns.com/foaf/0.1/knows> <http://example.org/bob> .\n"+
		"}", string(data))
}

func TestInsertDataGraph(t *testing.T) {
	srv := newServer(t, nil)
	resp := postData(t, srv.URL+"/api/v1/insert-data?graph=http://example.org/g", testData, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(data), "GRAPH <http://example.org/g> {")

	resp = postData(t, srv.URL+"/api/v1/insert-data?graph=relative", testData, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInsertDataRDF(t *testing.T) {
	srv := newServer(t, nil)
	resp := postData(t, srv.URL+"/api/v1/insert-data", testData, map[string]string{
		hdrAccept:         "application/n-quads",
		hdrAcceptEncoding: "gzip",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "gzip", resp.Header.Get(hdrContentEncoding))
	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	quads, err := quad.ReadAll(nquads.NewReader(zr, false))
	require.NoError(t, err)

	u, err := update.AsInsertData(model.New(quads...).Resource(findInsertData(t, quads)))
	require.NoError(t, err)
	triples, err := u.Triples()
	require.NoError(t, err)
	require.Len(t, triples, 2)
}

func findInsertData(t testing.TB, quads []quad.Quad) quad.Value {
	typ := quad.IRI("rdf:type").Full()
	ins := quad.IRI("sp:InsertData").Full()
	for _, q := range quads {
		if q.Predicate == typ && q.Object == ins {
			return q.Subject
		}
	}
	t.Fatal("no INSERT DATA resource")
	return nil
}

func TestInsertDataGzipBody(t *testing.T) {
	srv := newServer(t, nil)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(testData))
	zw.Close()
	resp := postData(t, srv.URL+"/api/v1/insert-data", buf.String(), map[string]string{
		hdrContentEncoding: "gzip",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInsertDataErrors(t *testing.T) {
	srv := newServer(t, nil)

	resp := postData(t, srv.URL+"/api/v1/insert-data", testData, map[string]string{hdrContentType: "text/unknown"})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postData(t, srv.URL+"/api/v1/insert-data?format=unknown", testData, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNotAcceptable, resp.StatusCode)

	resp = postData(t, srv.URL+"/api/v1/insert-data", "<a> <b> .\n", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ro := newServer(t, &Config{ReadOnly: true})
	resp = postData(t, ro.URL+"/api/v1/insert-data", testData, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInsertDataTooLarge(t *testing.T) {
	defer func(n int64) { maxDataSize = n }(maxDataSize)
	maxDataSize = int64(len(testData) - 1)

	srv := newServer(t, nil)
	resp := postData(t, srv.URL+"/api/v1/insert-data", testData, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	maxDataSize = int64(len(testData))
	resp = postData(t, srv.URL+"/api/v1/insert-data", testData, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInsertDataTypedLiterals(t *testing.T) {
	srv := newServer(t, nil)
	body := `<http://example.org/alice> <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
<http://example.org/alice> <http://example.org/ok> "true"^^<http://www.w3.org/2001/XMLSchema#boolean> .
`
	resp := postData(t, srv.URL+"/api/v1/insert-data?comment=typed", body, map[string]string{
		hdrAccept: "application/n-quads",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`)
	require.Contains(t, out, `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`)
	require.Contains(t, out, `<http://www.w3.org/2000/01/rdf-schema#comment> "typed"`)
	require.NotContains(t, out, "<xsd:")
}

func TestParseAccept(t *testing.T) {
	h := http.Header{}
	h.Set(hdrAccept, "text/plain;q=0.5, application/ld+json, application/n-quads;q=0")
	require.Equal(t, []AcceptSpec{
		{Value: "application/ld+json", Q: 1},
		{Value: "text/plain", Q: 0.5},
	}, ParseAccept(h, hdrAccept))
	require.Empty(t, ParseAccept(h, hdrAcceptEncoding))
}

func TestFormats(t *testing.T) {
	srv := newServer(t, nil)
	resp, err := http.Get(srv.URL + "/api/v1/formats")
	require.NoError(t, err)
	defer resp.Body.Close()
	var out []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	var ids []string
	for _, f := range out {
		ids = append(ids, f.ID)
	}
	require.Contains(t, ids, "nquads")
	require.Contains(t, ids, "jsonld")
}
