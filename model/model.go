// Copyright 2024 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model implements a small in-memory RDF model: a set of triples with
// resource handles and RDF list support.
//
// A Model holds a single graph, so quad labels are dropped when statements are
// added. IRIs are always stored in their full form.
package model

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/xsd"
)

// entry is a single statement in the model log.
type entry struct {
	quad    quad.Quad
	deleted bool
}

// Model is an in-memory set of RDF statements.
//
// Statements are kept in insertion order. A Model is not safe for concurrent use.
type Model struct {
	log   []entry
	index map[[3]string]int
	// subject and object indexes point into log
	subj map[string][]int
	obj  map[string][]int
	size int
}

// New creates a model that contains the given statements.
func New(quads ...quad.Quad) *Model {
	m := &Model{
		index: make(map[[3]string]int),
		subj:  make(map[string][]int),
		obj:   make(map[string][]int),
	}
	m.AddQuads(quads)
	return m
}

func key(v quad.Value) string {
	return quad.StringOf(Canonical(v))
}

var xsdBoolean = quad.IRI(xsd.Boolean).Full()

// Canonical returns the RDF term form of v: IRIs in full form and typed
// literals, native ones included, as a quad.TypedString with a full datatype
// IRI. Booleans use the lowercase lexical form.
//
// Values that only differ in their Go representation have the same
// canonical form, so quad.Int(42) and "42"^^xsd:integer are one statement
// object.
func Canonical(v quad.Value) quad.Value {
	switch v := v.(type) {
	case quad.IRI:
		return v.Full()
	case quad.TypedString:
		return canonicalTyped(v)
	case quad.TypedStringer:
		return canonicalTyped(v.TypedString())
	}
	return v
}

func canonicalTyped(ts quad.TypedString) quad.TypedString {
	ts.Type = ts.Type.Full()
	if ts.Type == xsdBoolean {
		ts.Value = quad.String(strings.ToLower(string(ts.Value)))
	}
	return ts
}

func normalize(v quad.Value) quad.Value {
	if iri, ok := v.(quad.IRI); ok {
		return iri.Full()
	}
	return v
}

func quadKey(q quad.Quad) [3]string {
	return [3]string{key(q.Subject), key(q.Predicate), key(q.Object)}
}

func valid(q quad.Quad) bool {
	return q.Subject != nil && q.Predicate != nil && q.Object != nil
}

// Add inserts a statement. It returns false if the statement is already present
// or has a missing subject, predicate or object.
func (m *Model) Add(q quad.Quad) bool {
	if !valid(q) {
		return false
	}
	q = quad.Quad{
		Subject:   normalize(q.Subject),
		Predicate: normalize(q.Predicate),
		Object:    normalize(q.Object),
	}
	k := quadKey(q)
	if _, ok := m.index[k]; ok {
		return false
	}
	id := len(m.log)
	m.log = append(m.log, entry{quad: q})
	m.index[k] = id
	m.subj[k[0]] = append(m.subj[k[0]], id)
	m.obj[k[2]] = append(m.obj[k[2]], id)
	m.size++
	return true
}

// AddQuads inserts all statements and returns the number of statements that were new.
func (m *Model) AddQuads(quads []quad.Quad) int {
	n := 0
	for _, q := range quads {
		if m.Add(q) {
			n++
		}
	}
	return n
}

// Remove deletes a statement. It returns false if the statement was not present.
func (m *Model) Remove(q quad.Quad) bool {
	if !valid(q) {
		return false
	}
	k := quadKey(q)
	id, ok := m.index[k]
	if !ok {
		return false
	}
	delete(m.index, k)
	m.log[id].deleted = true
	m.subj[k[0]] = without(m.subj[k[0]], id)
	m.obj[k[2]] = without(m.obj[k[2]], id)
	m.size--
	return true
}

func without(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// Contains reports whether the statement is present in the model.
func (m *Model) Contains(q quad.Quad) bool {
	if !valid(q) {
		return false
	}
	_, ok := m.index[quadKey(q)]
	return ok
}

// Len returns the number of statements in the model.
func (m *Model) Len() int {
	return m.size
}

// Quads returns all statements in insertion order.
func (m *Model) Quads() []quad.Quad {
	out := make([]quad.Quad, 0, m.size)
	for _, e := range m.log {
		if !e.deleted {
			out = append(out, e.quad)
		}
	}
	return out
}

// Match returns statements that match the given values in insertion order.
// A nil value matches anything.
func (m *Model) Match(s, p, o quad.Value) []quad.Quad {
	var ids []int
	switch {
	case s != nil:
		ids = m.subj[key(s)]
	case o != nil:
		ids = m.obj[key(o)]
	default:
		return m.filter(m.Quads(), p)
	}
	var pk, objk string
	if p != nil {
		pk = key(p)
	}
	if o != nil {
		objk = key(o)
	}
	var out []quad.Quad
	for _, id := range ids {
		q := m.log[id].quad
		if p != nil && key(q.Predicate) != pk {
			continue
		}
		if o != nil && key(q.Object) != objk {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (m *Model) filter(quads []quad.Quad, p quad.Value) []quad.Quad {
	if p == nil {
		return quads
	}
	pk := key(p)
	out := quads[:0]
	for _, q := range quads {
		if key(q.Predicate) == pk {
			out = append(out, q)
		}
	}
	return out
}

// Objects returns all objects of statements with a given subject and predicate.
func (m *Model) Objects(s, p quad.Value) []quad.Value {
	var out []quad.Value
	for _, q := range m.Match(s, p, nil) {
		out = append(out, q.Object)
	}
	return out
}

// Object returns the first object of a given subject and predicate.
func (m *Model) Object(s, p quad.Value) (quad.Value, bool) {
	quads := m.Match(s, p, nil)
	if len(quads) == 0 {
		return nil, false
	}
	return quads[0].Object, true
}

// Subjects returns all subjects of statements with a given predicate and object.
func (m *Model) Subjects(p, o quad.Value) []quad.Value {
	var out []quad.Value
	for _, q := range m.Match(nil, p, o) {
		out = append(out, q.Subject)
	}
	return out
}

// HasType reports whether the node has an rdf:type statement for a given class.
func (m *Model) HasType(node quad.Value, class quad.IRI) bool {
	if node == nil {
		return false
	}
	return m.Contains(quad.Quad{Subject: node, Predicate: quad.IRI(rdf.Type), Object: class})
}

// WriteQuad implements quad.Writer. Duplicate statements are ignored.
func (m *Model) WriteQuad(q quad.Quad) error {
	m.Add(q)
	return nil
}

// WriteQuads implements quad.Writer. Duplicate statements are ignored and are
// still counted as written.
func (m *Model) WriteQuads(buf []quad.Quad) (int, error) {
	m.AddQuads(buf)
	return len(buf), nil
}

// Reader returns a reader over a snapshot of the model statements.
func (m *Model) Reader() quad.Reader {
	return quad.NewReader(m.Quads())
}

// Load copies all statements from a quad reader into the model.
func (m *Model) Load(r quad.Reader) (int, error) {
	return quad.Copy(m, r)
}
