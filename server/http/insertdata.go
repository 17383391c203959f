package ldthttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/ldt/clog"
	"github.com/cayleygraph/ldt/update"
)

const (
	formatSPARQL            = "sparql"
	contentTypeSPARQLUpdate = "application/sparql-update"
)

// maxDataSize limits the decoded size of an insert-data request body.
var maxDataSize int64 = 16 * 1024 * 1024

// ServeInsertData converts the RDF data in the request body into an INSERT
// DATA operation. The graph parameter scopes all statements to a named graph;
// otherwise labelled statements keep their own graph.
//
// The operation is written as SPARQL unless a quad format is requested with
// the format parameter or the Accept header, in which case its SPIN RDF form
// is written.
func (api *API) ServeInsertData(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	in := getFormat(r, "", hdrContentType)
	if in == nil || in.Reader == nil {
		jsonResponse(w, http.StatusBadRequest, errors.New("format is not supported for reading data"))
		return
	}
	sparql, out := outputFormat(r)
	if !sparql && (out == nil || out.Writer == nil) {
		jsonResponse(w, http.StatusNotAcceptable, errors.New("format is not supported for writing data"))
		return
	}
	rd, err := readerFrom(r, hdrContentEncoding)
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, err)
		return
	}
	defer rd.Close()
	lr := &limitReader{r: rd, n: maxDataSize}
	qr := in.Reader(lr)
	defer qr.Close()
	quads, err := quad.ReadAll(qr)
	if lr.exceeded() || errors.Is(err, errTooLarge) {
		jsonResponse(w, http.StatusRequestEntityTooLarge, err)
		return
	} else if err != nil {
		jsonResponse(w, http.StatusBadRequest, err)
		return
	}

	if g := r.URL.Query().Get("graph"); g != "" {
		iri, err := graphIRI(g)
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, err)
			return
		}
		for i := range quads {
			quads[i].Label = iri
		}
	}
	b := update.FromQuads(quads)
	if c := r.URL.Query().Get("comment"); c != "" {
		b.Comment(c)
	}
	u, err := b.Build()
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, err)
		return
	}
	clog.Debugf("insert data: %d statements", len(quads))

	if sparql {
		text, err := u.SPARQL()
		if err != nil {
			jsonResponse(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set(hdrContentType, contentTypeSPARQLUpdate)
		wr := writerFrom(w, r, hdrAcceptEncoding)
		defer wr.Close()
		wr.Write([]byte(text))
		return
	}
	if len(out.Mime) != 0 {
		w.Header().Set(hdrContentType, out.Mime[0])
	}
	wr := writerFrom(w, r, hdrAcceptEncoding)
	defer wr.Close()
	if err := writerQuadsTo(wr, out, quad.NewReader(u.Statements())); err != nil {
		// headers are already sent
		clog.Errorf("write insert data: %v", err)
	}
}

// outputFormat reports whether SPARQL text is requested and otherwise returns
// the requested quad format, or nil if it is not registered.
func outputFormat(r *http.Request) (bool, *quad.Format) {
	if name := r.URL.Query().Get("format"); name != "" {
		if name == formatSPARQL {
			return true, nil
		}
		return false, quad.FormatByName(name)
	}
	specs := ParseAccept(r.Header, hdrAccept)
	if len(specs) == 0 {
		return true, nil
	}
	for _, s := range specs {
		switch s.Value {
		case contentTypeSPARQLUpdate, "text/plain", "*/*":
			return true, nil
		}
		if f := quad.FormatByMime(s.Value); f != nil {
			return false, f
		}
	}
	return false, nil
}

func graphIRI(s string) (quad.IRI, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid graph IRI: %v", err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("graph IRI must be absolute: %q", s)
	}
	return quad.IRI(s), nil
}

func writerQuadsTo(w io.Writer, f *quad.Format, qr quad.Reader) error {
	qw := f.Writer(w)
	_, err := quad.Copy(qw, qr)
	if cerr := qw.Close(); err == nil {
		err = cerr
	}
	return err
}

var errTooLarge = errors.New("request data is too large")

// limitReader fails once more than n bytes were read.
type limitReader struct {
	r io.Reader
	n int64
}

func (l *limitReader) exceeded() bool { return l.n < 0 }

func (l *limitReader) Read(p []byte) (int, error) {
	if l.n < 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > l.n+1 {
		p = p[:l.n+1]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, errTooLarge
	}
	return n, err
}
