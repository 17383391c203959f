package command

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/jsonld"
	"github.com/cayleygraph/quad/voc"
	"github.com/piprate/json-gold/ld"
	"github.com/spf13/cobra"

	"github.com/cayleygraph/ldt/clog"
)

// createOutput opens the output file; ".gz" files are compressed. The returned
// function closes the file and reports the first error of closing it.
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create file %q: %v", path, err)
	}
	if filepath.Ext(path) != ".gz" {
		return f, f.Close, nil
	}
	zw := gzip.NewWriter(f)
	return zw, func() error {
		err := zw.Close()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}, nil
}

func writeText(cmd *cobra.Command, path, text string) error {
	w, closer, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	if cerr := closer(); err == nil {
		err = cerr
	}
	return err
}

func writeJSON(cmd *cobra.Command, path string, doc interface{}) error {
	w, closer, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	err = enc.Encode(doc)
	if cerr := closer(); err == nil {
		err = cerr
	}
	return err
}

func writerQuadsTo(cmd *cobra.Command, path string, typ string, qr quad.Reader) error {
	var format *quad.Format
	if typ == "" {
		format = quad.FormatByExt(filepath.Ext(strings.TrimSuffix(path, ".gz")))
		if format == nil {
			typ = "nquads"
		}
	}
	if format == nil {
		format = quad.FormatByName(typ)
	}
	if format == nil {
		return fmt.Errorf("unsupported format: %q", typ)
	} else if format.Writer == nil {
		return fmt.Errorf("encoding in %s format is not supported", typ)
	}
	w, closer, err := createOutput(cmd, path)
	if err != nil {
		return err
	}
	qw := format.Writer(w)
	n, err := quad.Copy(qw, qr)
	if cerr := qw.Close(); err == nil {
		err = cerr
	}
	if cerr := closer(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	clog.Infof("%d statements were written", n)
	return nil
}

// prefixContext builds a JSON-LD context of the registered namespaces.
func prefixContext() map[string]interface{} {
	ctx := make(map[string]interface{})
	for _, ns := range voc.List() {
		ctx[strings.TrimSuffix(ns.Prefix, ":")] = ns.Full
	}
	return ctx
}

func quadsToDataset(quads []quad.Quad) (*ld.RDFDataset, error) {
	d := ld.NewRDFDataset()
	for _, q := range quads {
		graph := "@default"
		if iri, ok := q.Label.(quad.IRI); ok {
			graph = string(iri.Full())
		}
		s, err := jsonld.ToNode(q.Subject)
		if err != nil {
			return nil, err
		}
		p, err := jsonld.ToNode(q.Predicate)
		if err != nil {
			return nil, err
		}
		o, err := jsonld.ToNode(q.Object)
		if err != nil {
			return nil, err
		}
		d.Graphs[graph] = append(d.Graphs[graph], ld.NewQuad(s, p, o, graph))
	}
	return d, nil
}

// compactJSONLD converts quads to a JSON-LD document compacted with the
// registered namespace prefixes.
func compactJSONLD(quads []quad.Quad) (interface{}, error) {
	d, err := quadsToDataset(quads)
	if err != nil {
		return nil, err
	}
	opts := ld.NewJsonLdOptions("")
	doc, err := ld.NewJsonLdApi().FromRDF(d, opts)
	if err != nil {
		return nil, err
	}
	return ld.NewJsonLdProcessor().Compact(doc, map[string]interface{}{
		"@context": prefixContext(),
	}, opts)
}
