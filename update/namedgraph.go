package update

import (
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/ldt/model"
)

// NamedGraph is an SPIN named graph element: a set of triples scoped to a graph.
type NamedGraph struct {
	res *model.Resource
}

// NewNamedGraph creates a blank sp:NamedGraph resource named by the given IRI.
func NewNamedGraph(m *model.Model, name quad.IRI) *NamedGraph {
	r := m.CreateResource().
		AddType(iriNamedGraph).
		AddProperty(iriGraphNameNode, name)
	return &NamedGraph{res: r}
}

// AsNamedGraph views a resource as a named graph element. The resource must be
// typed sp:NamedGraph.
func AsNamedGraph(r *model.Resource) (*NamedGraph, error) {
	if r == nil {
		return nil, invalidf("NamedGraph resource cannot be nil")
	}
	if !r.HasType(iriNamedGraph) {
		return nil, invalidf("resource %v must be a SPIN NamedGraph", r)
	}
	return &NamedGraph{res: r}, nil
}

// Resource returns the resource that describes the named graph.
func (g *NamedGraph) Resource() *model.Resource { return g.res }

// GraphName returns the value of sp:graphNameNode.
func (g *NamedGraph) GraphName() (quad.Value, bool) {
	return g.res.Property(iriGraphNameNode)
}

// Elements returns the lists attached with sp:elements.
func (g *NamedGraph) Elements() []*model.List {
	m := g.res.Model()
	var out []*model.List
	for _, v := range g.res.Properties(iriElements) {
		out = append(out, m.List(v))
	}
	return out
}
