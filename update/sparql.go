package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/ldt/model"
)

// ErrMalformedData is returned when the data of an update cannot be decoded
// into triples.
var ErrMalformedData = errors.New("malformed SPIN data")

// dataBlock is a run of triples of the default graph, or the triples of one named graph.
type dataBlock struct {
	graph quad.Value
	quads []quad.Quad
}

func decodeData(res *model.Resource) ([]dataBlock, error) {
	m := res.Model()
	var out []dataBlock
	for _, head := range res.Properties(iriData) {
		items, err := m.List(head).Items()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
		}
		for _, it := range items {
			r := m.Resource(it)
			if r.HasType(iriNamedGraph) {
				b, err := decodeGraph(r)
				if err != nil {
					return nil, err
				}
				out = append(out, b)
				continue
			}
			q, err := decodeTriple(r)
			if err != nil {
				return nil, err
			}
			if n := len(out); n != 0 && out[n-1].graph == nil {
				out[n-1].quads = append(out[n-1].quads, q)
			} else {
				out = append(out, dataBlock{quads: []quad.Quad{q}})
			}
		}
	}
	return out, nil
}

func decodeGraph(r *model.Resource) (dataBlock, error) {
	name, ok := r.Property(iriGraphNameNode)
	if !ok {
		return dataBlock{}, fmt.Errorf("%w: named graph %v has no sp:graphNameNode", ErrMalformedData, r)
	}
	b := dataBlock{graph: name}
	m := r.Model()
	for _, head := range r.Properties(iriElements) {
		items, err := m.List(head).Items()
		if err != nil {
			return dataBlock{}, fmt.Errorf("%w: %v", ErrMalformedData, err)
		}
		for _, it := range items {
			q, err := decodeTriple(m.Resource(it))
			if err != nil {
				return dataBlock{}, err
			}
			b.quads = append(b.quads, q)
		}
	}
	return b, nil
}

func decodeTriple(r *model.Resource) (quad.Quad, error) {
	var q quad.Quad
	for _, f := range []struct {
		p   quad.IRI
		dst *quad.Value
	}{
		{iriSubject, &q.Subject},
		{iriPredicate, &q.Predicate},
		{iriObject, &q.Object},
	} {
		vals := r.Properties(f.p)
		if len(vals) != 1 {
			return quad.Quad{}, fmt.Errorf("%w: triple %v has %d values for %v", ErrMalformedData, r, len(vals), f.p)
		}
		*f.dst = vals[0]
	}
	return q, nil
}

// term renders a value in SPARQL syntax. Native literals are written with
// their full XSD datatype.
func term(v quad.Value) string {
	switch v := model.Canonical(v).(type) {
	case quad.IRI:
		return v.String()
	case quad.TypedString:
		return v.Value.String() + "^^" + v.Type.String()
	default:
		return quad.StringOf(v)
	}
}

func writeTriples(sb *strings.Builder, indent string, quads []quad.Quad) {
	for _, q := range quads {
		sb.WriteString(indent)
		sb.WriteString(term(q.Subject))
		sb.WriteByte(' ')
		sb.WriteString(term(q.Predicate))
		sb.WriteByte(' ')
		sb.WriteString(term(q.Object))
		sb.WriteString(" .\n")
	}
}

func renderData(verb string, blocks []dataBlock) string {
	var sb strings.Builder
	sb.WriteString(verb)
	sb.WriteString(" {\n")
	for _, b := range blocks {
		if b.graph == nil {
			writeTriples(&sb, "  ", b.quads)
			continue
		}
		sb.WriteString("  GRAPH ")
		sb.WriteString(term(b.graph))
		sb.WriteString(" {\n")
		writeTriples(&sb, "    ", b.quads)
		sb.WriteString("  }\n")
	}
	sb.WriteString("}")
	return sb.String()
}
