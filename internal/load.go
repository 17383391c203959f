package internal

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"
	"github.com/cayleygraph/quad/voc/rdf"

	"github.com/cayleygraph/ldt/clog"
	"github.com/cayleygraph/ldt/internal/decompressor"
	"github.com/cayleygraph/ldt/model"
	"github.com/cayleygraph/ldt/ontology"
	"github.com/cayleygraph/ldt/voc/ldt"
	"github.com/cayleygraph/ldt/voc/owl"
)

const defaultFormat = "nquads"

// Open opens a local file or fetches an http(s) resource. "-" is stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	u, err := url.Parse(path)
	if err != nil || u.Scheme == "file" || u.Scheme == "" || len(u.Scheme) == 1 {
		// Don't alter relative URL path or non-URL path parameter.
		if err == nil && u.Scheme == "file" {
			// Recovery heuristic for mistyping "file://path/to/file".
			path = filepath.Join(u.Host, u.Path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open file %q: %v", path, err)
		}
		return f, nil
	}
	res, err := http.Get(path)
	if err != nil {
		return nil, fmt.Errorf("could not get resource <%s>: %v", u, err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("could not get resource <%s>: %s", u, res.Status)
	}
	return res.Body, nil
}

// FormatFor returns the named format, or detects it from the file extension.
func FormatFor(path, name string) (*quad.Format, error) {
	if name == "" {
		ext := filepath.Ext(decompressor.TrimExt(path))
		if f := quad.FormatByExt(strings.ToLower(ext)); f != nil {
			return f, nil
		}
		name = defaultFormat
	}
	f := quad.FormatByName(name)
	if f == nil {
		return nil, fmt.Errorf("unknown quad format %q", name)
	} else if f.Reader == nil {
		return nil, fmt.Errorf("decoding of %q is not supported", name)
	}
	return f, nil
}

// ReadQuads reads all quads of a possibly compressed file.
func ReadQuads(path, format string) ([]quad.Quad, error) {
	f, err := FormatFor(path, format)
	if err != nil {
		return nil, err
	}
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	r, comp, err := decompressor.Detect(rc)
	if err != nil {
		return nil, err
	}
	clog.Debugf("reading %q as %s (compression: %v)", path, f.Name, comp)
	qr := f.Reader(r)
	defer qr.Close()
	quads, err := quad.ReadAll(qr)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %v", path, err)
	}
	return quads, nil
}

// LoadModel reads a file into a new model. Graph labels are dropped.
func LoadModel(path, format string) (*model.Model, error) {
	quads, err := ReadQuads(path, format)
	if err != nil {
		return nil, err
	}
	m := model.New(quads...)
	clog.Infof("loaded %d statements from %q", m.Len(), path)
	return m, nil
}

// LoadOntology reads an ontology file. If iri is empty, the file must declare
// exactly one ontology.
func LoadOntology(path, format string, iri quad.IRI) (*ontology.Ontology, error) {
	if path == "" {
		return nil, errors.New("ontology path is not set")
	}
	m, err := LoadModel(path, format)
	if err != nil {
		return nil, err
	}
	if iri == "" {
		if iri, err = findOntology(m); err != nil {
			return nil, fmt.Errorf("%s: %v", path, err)
		}
	}
	return ontology.Load(m, iri)
}

func findOntology(m *model.Model) (quad.IRI, error) {
	var found []quad.IRI
	seen := make(map[quad.IRI]struct{})
	for _, class := range []quad.IRI{owl.Ontology, ldt.Ontology} {
		for _, q := range m.Match(nil, quad.IRI(rdf.Type), class) {
			iri, ok := q.Subject.(quad.IRI)
			if !ok {
				continue
			}
			if _, ok := seen[iri]; !ok {
				seen[iri] = struct{}{}
				found = append(found, iri)
			}
		}
	}
	switch len(found) {
	case 0:
		return "", errors.New("no ontology declared")
	case 1:
		return found[0], nil
	}
	return "", fmt.Errorf("%d ontologies declared, the ontology IRI must be set", len(found))
}
