package ldthttp

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/cayleygraph/quad"
	_ "github.com/cayleygraph/quad/dot"
	_ "github.com/cayleygraph/quad/gml"
	_ "github.com/cayleygraph/quad/graphml"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"
	_ "github.com/cayleygraph/quad/pquads"
)

const (
	defaultFormat      = "nquads"
	hdrContentType     = "Content-Type"
	hdrContentEncoding = "Content-Encoding"
	hdrAccept          = "Accept"
	hdrAcceptEncoding  = "Accept-Encoding"
	contentTypeJSON    = "application/json"
)

func jsonResponse(w http.ResponseWriter, code int, err interface{}) {
	w.Header().Set(hdrContentType, contentTypeJSON)
	w.WriteHeader(code)
	w.Write([]byte(`{"error": `))
	var s string
	switch err := err.(type) {
	case string:
		s = err
	case error:
		s = err.Error()
	default:
		s = fmt.Sprint(err)
	}
	data, _ := json.Marshal(s)
	w.Write(data)
	w.Write([]byte(`}`))
}

// AcceptSpec is a single entry of an Accept-like header.
type AcceptSpec struct {
	Value string
	Q     float64
}

// ParseAccept parses an Accept-like header and returns its entries, most
// preferred first. Entries with q=0 are dropped.
func ParseAccept(h http.Header, name string) []AcceptSpec {
	var out []AcceptSpec
	for _, line := range h.Values(name) {
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			val, params, err := mime.ParseMediaType(part)
			if err != nil {
				// encodings are plain tokens
				val, params = strings.TrimSpace(strings.SplitN(part, ";", 2)[0]), nil
			}
			spec := AcceptSpec{Value: strings.ToLower(val), Q: 1}
			if q, ok := params["q"]; ok {
				if f, err := strconv.ParseFloat(q, 64); err == nil {
					spec.Q = f
				}
			}
			if spec.Q <= 0 || spec.Value == "" {
				continue
			}
			out = append(out, spec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Q > out[j].Q
	})
	return out
}

// getFormat returns the quad format requested with the "format" form value or
// the acceptName header. It returns nil if a format was requested but is not
// registered.
func getFormat(r *http.Request, formKey string, acceptName string) *quad.Format {
	if formKey != "" {
		if name := r.FormValue(formKey); name != "" {
			return quad.FormatByName(name)
		}
	}
	if acceptName != "" {
		specs := ParseAccept(r.Header, acceptName)
		for _, s := range specs {
			if f := quad.FormatByMime(s.Value); f != nil {
				return f
			}
		}
		if len(specs) != 0 && !anyType(specs) {
			return nil
		}
	}
	return quad.FormatByName(defaultFormat)
}

func anyType(specs []AcceptSpec) bool {
	for _, s := range specs {
		if s.Value == "*/*" {
			return true
		}
	}
	return false
}

func readerFrom(r *http.Request, acceptName string) (io.ReadCloser, error) {
	if specs := ParseAccept(r.Header, acceptName); len(specs) != 0 {
		if s := specs[0]; s.Value == "gzip" {
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				return nil, err
			}
			return zr, nil
		}
	}
	return r.Body, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func writerFrom(w http.ResponseWriter, r *http.Request, acceptName string) io.WriteCloser {
	if specs := ParseAccept(r.Header, acceptName); len(specs) != 0 {
		if s := specs[0]; s.Value == "gzip" {
			w.Header().Set(hdrContentEncoding, s.Value)
			zw := gzip.NewWriter(w)
			return zw
		}
	}
	return nopWriteCloser{Writer: w}
}

// ServeFormats lists registered quad formats.
func ServeFormats(w http.ResponseWriter, r *http.Request) {
	type Format struct {
		ID     string   `json:"id"`
		Read   bool     `json:"read,omitempty"`
		Write  bool     `json:"write,omitempty"`
		Ext    []string `json:"ext,omitempty"`
		Mime   []string `json:"mime,omitempty"`
		Binary bool     `json:"binary,omitempty"`
	}
	formats := quad.Formats()
	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Name < formats[j].Name
	})
	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		out = append(out, Format{
			ID:  f.Name,
			Ext: f.Ext, Mime: f.Mime,
			Read: f.Reader != nil, Write: f.Writer != nil,
			Binary: f.Binary,
		})
	}
	w.Header().Set(hdrContentType, contentTypeJSON)
	json.NewEncoder(w).Encode(out)
}
