package model

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
)

// Resource is an RDF node bound to the model it is described in.
type Resource struct {
	m    *Model
	node quad.Value
}

// Resource returns a handle for a node of the model. The node does not have to
// be mentioned by any statement yet.
func (m *Model) Resource(node quad.Value) *Resource {
	if node == nil {
		return nil
	}
	return &Resource{m: m, node: normalize(node)}
}

// CreateResource returns a handle for a fresh blank node.
func (m *Model) CreateResource() *Resource {
	return &Resource{m: m, node: quad.RandomBlankNode()}
}

// Model returns the model the resource belongs to.
func (r *Resource) Model() *Model { return r.m }

// Node returns the RDF node of the resource.
func (r *Resource) Node() quad.Value { return r.node }

// IRI returns the IRI of the resource, or false for blank nodes.
func (r *Resource) IRI() (quad.IRI, bool) {
	iri, ok := r.node.(quad.IRI)
	return iri, ok
}

// IsAnon reports whether the resource is a blank node.
func (r *Resource) IsAnon() bool {
	_, ok := r.node.(quad.BNode)
	return ok
}

func (r *Resource) String() string {
	return quad.StringOf(r.node)
}

// AddProperty adds a statement with the resource as subject and returns the resource.
func (r *Resource) AddProperty(p quad.IRI, o quad.Value) *Resource {
	r.m.Add(quad.Quad{Subject: r.node, Predicate: p, Object: o})
	return r
}

// AddType adds an rdf:type statement and returns the resource.
func (r *Resource) AddType(class quad.IRI) *Resource {
	return r.AddProperty(quad.IRI(rdf.Type), class)
}

// Property returns the first value of a given property.
func (r *Resource) Property(p quad.IRI) (quad.Value, bool) {
	return r.m.Object(r.node, p)
}

// Properties returns all values of a given property.
func (r *Resource) Properties(p quad.IRI) []quad.Value {
	return r.m.Objects(r.node, p)
}

// HasProperty reports whether the resource has at least one value for a property.
func (r *Resource) HasProperty(p quad.IRI) bool {
	_, ok := r.Property(p)
	return ok
}

// HasType reports whether the resource is an instance of a given class.
func (r *Resource) HasType(class quad.IRI) bool {
	return r.m.HasType(r.node, class)
}
