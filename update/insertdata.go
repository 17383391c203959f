package update

import (
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/ldt/model"
)

// InsertData is an SPIN INSERT DATA operation.
type InsertData struct {
	res *model.Resource
}

var _ Update = (*InsertData)(nil)

// AsInsertData views a resource as an INSERT DATA operation. The resource must
// be typed sp:InsertData.
func AsInsertData(r *model.Resource) (*InsertData, error) {
	if r == nil {
		return nil, invalidf("InsertData resource cannot be nil")
	}
	if !r.HasType(iriInsertData) {
		return nil, invalidf("resource %v must be a SPIN INSERT DATA update", r)
	}
	return &InsertData{res: r}, nil
}

// Resource returns the resource that describes the operation.
func (u *InsertData) Resource() *model.Resource { return u.res }

// Lists returns the data lists attached with sp:data.
func (u *InsertData) Lists() []*model.List {
	m := u.res.Model()
	var out []*model.List
	for _, v := range u.res.Properties(iriData) {
		out = append(out, m.List(v))
	}
	return out
}

// Triples decodes the data of the operation. Triples of a named graph carry
// the graph name as their label.
func (u *InsertData) Triples() ([]quad.Quad, error) {
	blocks, err := decodeData(u.res)
	if err != nil {
		return nil, err
	}
	var out []quad.Quad
	for _, b := range blocks {
		for _, q := range b.quads {
			q.Label = b.graph
			out = append(out, q)
		}
	}
	return out, nil
}

// Statements returns the SPIN RDF form of the operation: every statement of
// its model, with literals in canonical form so that writers emit full XSD
// datatypes.
func (u *InsertData) Statements() []quad.Quad {
	quads := u.res.Model().Quads()
	for i, q := range quads {
		quads[i] = quad.Quad{
			Subject:   model.Canonical(q.Subject),
			Predicate: model.Canonical(q.Predicate),
			Object:    model.Canonical(q.Object),
			Label:     q.Label,
		}
	}
	return quads
}

// SPARQL renders the operation as an INSERT DATA request.
func (u *InsertData) SPARQL() (string, error) {
	blocks, err := decodeData(u.res)
	if err != nil {
		return "", err
	}
	return renderData("INSERT DATA", blocks), nil
}

// InsertDataBuilder builds an INSERT DATA operation.
//
// Builder methods return the builder itself so calls can be chained. The
// first invalid argument is recorded and reported by Err and Build; the calls
// that follow it do nothing.
type InsertDataBuilder struct {
	UpdateBuilder
	insertData *InsertData
}

// FromInsertData wraps an existing INSERT DATA operation. A nil operation
// yields a builder that reports ErrInvalidArgument.
func FromInsertData(u *InsertData) *InsertDataBuilder {
	if u == nil || u.res == nil {
		b := &InsertDataBuilder{}
		b.fail(invalidf("InsertData cannot be nil"))
		return b
	}
	return &InsertDataBuilder{
		UpdateBuilder: newUpdateBuilder(u.res),
		insertData:    u,
	}
}

// FromResource wraps a resource typed sp:InsertData.
func FromResource(r *model.Resource) (*InsertDataBuilder, error) {
	u, err := AsInsertData(r)
	if err != nil {
		return nil, err
	}
	return FromInsertData(u), nil
}

// NewInsertData creates an empty INSERT DATA operation in a new model.
func NewInsertData() *InsertDataBuilder {
	r := model.New().CreateResource().AddType(iriInsertData)
	b, err := FromResource(r)
	if err != nil {
		// the resource was typed above
		panic(err)
	}
	return b
}

// FromData creates an INSERT DATA operation with all statements of m.
func FromData(m *model.Model) *InsertDataBuilder {
	return NewInsertData().Data(m)
}

// FromGraphData creates an INSERT DATA operation with all statements of m inside graph g.
func FromGraphData(g *NamedGraph, m *model.Model) *InsertDataBuilder {
	return NewInsertData().GraphData(g, m)
}

// FromGraphURIData creates an INSERT DATA operation with all statements of m
// inside the graph named graphURI.
func FromGraphURIData(graphURI quad.IRI, m *model.Model) *InsertDataBuilder {
	return NewInsertData().GraphURIData(graphURI, m)
}

// FromQuads creates an INSERT DATA operation from quads. Quads without a label
// go to the default graph; the others are grouped into one named graph per
// label, in order of first appearance. Labels must be IRIs.
func FromQuads(quads []quad.Quad) *InsertDataBuilder {
	b := NewInsertData()
	def := model.New()
	var (
		order  []quad.IRI
		graphs = make(map[quad.IRI]*model.Model)
	)
	for _, q := range quads {
		if q.Label == nil {
			def.Add(q)
			continue
		}
		g, ok := q.Label.(quad.IRI)
		if !ok {
			b.fail(invalidf("graph name %v must be an IRI", q.Label))
			return b
		}
		g = g.Full()
		gm := graphs[g]
		if gm == nil {
			gm = model.New()
			graphs[g] = gm
			order = append(order, g)
		}
		gm.Add(q)
	}
	if def.Len() != 0 || len(order) == 0 {
		b.Data(def)
	}
	for _, g := range order {
		b.GraphURIData(g, graphs[g])
	}
	return b
}

// InsertData returns the operation under construction.
func (b *InsertDataBuilder) InsertData() *InsertData { return b.insertData }

// Build returns the operation, or the first error recorded by the builder.
func (b *InsertDataBuilder) Build() (*InsertData, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.insertData, nil
}

// SPARQL renders the operation under construction.
func (b *InsertDataBuilder) SPARQL() (string, error) {
	u, err := b.Build()
	if err != nil {
		return "", err
	}
	return u.SPARQL()
}

// DataList attaches a data list with sp:data.
func (b *InsertDataBuilder) DataList(list *model.List) *InsertDataBuilder {
	if b.err != nil {
		return b
	}
	if list == nil {
		b.fail(invalidf("INSERT DATA data list cannot be nil"))
		return b
	}
	if err := list.Err(); err != nil {
		b.fail(invalidf("INSERT DATA data list: %v", err))
		return b
	}
	b.merge(list.Model())
	b.res.AddProperty(iriData, list.Head())
	return b
}

// Data attaches all statements of m.
func (b *InsertDataBuilder) Data(m *model.Model) *InsertDataBuilder {
	if b.err != nil {
		return b
	}
	if m == nil {
		b.fail(invalidf("INSERT DATA data model cannot be nil"))
		return b
	}
	return b.DataList(b.createDataList(m))
}

// GraphDataList attaches a data list scoped to graph g.
func (b *InsertDataBuilder) GraphDataList(g *NamedGraph, list *model.List) *InsertDataBuilder {
	if b.err != nil {
		return b
	}
	if g == nil {
		b.fail(invalidf("INSERT DATA graph resource cannot be nil"))
		return b
	}
	if list == nil {
		b.fail(invalidf("INSERT DATA data list cannot be nil"))
		return b
	}
	if err := list.Err(); err != nil {
		b.fail(invalidf("INSERT DATA data list: %v", err))
		return b
	}
	b.merge(list.Model())
	b.merge(g.res.Model())
	b.Model().Add(quad.Quad{Subject: g.res.Node(), Predicate: iriElements, Object: list.Head()})
	return b.DataList(b.Model().CreateList(g.res.Node()))
}

// GraphData attaches all statements of m scoped to graph g.
func (b *InsertDataBuilder) GraphData(g *NamedGraph, m *model.Model) *InsertDataBuilder {
	if b.err != nil {
		return b
	}
	if g == nil {
		b.fail(invalidf("INSERT DATA graph resource cannot be nil"))
		return b
	}
	if m == nil {
		b.fail(invalidf("INSERT DATA data model cannot be nil"))
		return b
	}
	return b.GraphDataList(g, b.createDataList(m))
}

// GraphURIDataList attaches a data list scoped to the graph named graphURI.
func (b *InsertDataBuilder) GraphURIDataList(graphURI quad.IRI, list *model.List) *InsertDataBuilder {
	if b.err != nil {
		return b
	}
	if graphURI == "" {
		b.fail(invalidf("INSERT DATA graph URI cannot be empty"))
		return b
	}
	if list == nil {
		b.fail(invalidf("INSERT DATA data list cannot be nil"))
		return b
	}
	if err := list.Err(); err != nil {
		b.fail(invalidf("INSERT DATA data list: %v", err))
		return b
	}
	return b.GraphDataList(NewNamedGraph(b.Model(), graphURI), list)
}

// GraphURIData attaches all statements of m scoped to the graph named graphURI.
func (b *InsertDataBuilder) GraphURIData(graphURI quad.IRI, m *model.Model) *InsertDataBuilder {
	if b.err != nil {
		return b
	}
	if graphURI == "" {
		b.fail(invalidf("INSERT DATA graph URI cannot be empty"))
		return b
	}
	if m == nil {
		b.fail(invalidf("INSERT DATA data model cannot be nil"))
		return b
	}
	return b.GraphURIDataList(graphURI, b.createDataList(m))
}

// Comment adds an rdfs:comment to the operation.
func (b *InsertDataBuilder) Comment(text string) *InsertDataBuilder {
	if b.err == nil {
		b.comment(text)
	}
	return b
}

// WithText stores the SPARQL rendering of the current data as sp:text.
func (b *InsertDataBuilder) WithText() *InsertDataBuilder {
	if b.err != nil {
		return b
	}
	s, err := b.insertData.SPARQL()
	if err != nil {
		b.fail(err)
		return b
	}
	b.text(s)
	return b
}
