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

// Package update builds SPARQL update operations in SPIN RDF syntax.
//
// SPIN encodes SPARQL syntax as triples: an INSERT DATA operation is a
// resource typed sp:InsertData whose sp:data property points to an RDF list of
// triples. Each triple is a resource with sp:subject, sp:predicate and
// sp:object. Triples scoped to a named graph are wrapped into an sp:NamedGraph
// resource with sp:graphNameNode and sp:elements.
//
// See http://spinrdf.org/sp.html.
package update

import (
	"errors"
	"fmt"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/cayleygraph/ldt/model"
	"github.com/cayleygraph/ldt/voc/sp"
)

// ErrInvalidArgument is returned for nil resources, graphs, models or data
// lists, and for resources of an unexpected SPIN type.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

var (
	iriData          = quad.IRI(sp.Data).Full()
	iriElements      = quad.IRI(sp.Elements).Full()
	iriGraphNameNode = quad.IRI(sp.GraphNameNode).Full()
	iriSubject       = quad.IRI(sp.Subject).Full()
	iriPredicate     = quad.IRI(sp.Predicate).Full()
	iriObject        = quad.IRI(sp.Object).Full()
	iriText          = quad.IRI(sp.Text).Full()
	iriInsertData    = quad.IRI(sp.InsertData).Full()
	iriNamedGraph    = quad.IRI(sp.NamedGraph).Full()
	iriComment       = quad.IRI(rdfs.Comment).Full()
)

// Update is a SPIN update operation.
type Update interface {
	// Resource returns the RDF resource that describes the operation.
	Resource() *model.Resource
	// SPARQL renders the operation in SPARQL syntax.
	SPARQL() (string, error)
}

// UpdateBuilder holds what every update builder shares: the resource under
// construction and the first error recorded by a builder method.
type UpdateBuilder struct {
	res *model.Resource
	err error
}

func newUpdateBuilder(res *model.Resource) UpdateBuilder {
	return UpdateBuilder{res: res}
}

// Resource returns the resource under construction.
func (b *UpdateBuilder) Resource() *model.Resource { return b.res }

// Model returns the model the update is described in.
func (b *UpdateBuilder) Model() *model.Model {
	if b.res == nil {
		return nil
	}
	return b.res.Model()
}

// Err returns the first error recorded by a builder method.
func (b *UpdateBuilder) Err() error { return b.err }

// fail records the first error; later errors are dropped.
func (b *UpdateBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// merge copies the statements of a model that resources from outside of the
// update model are described in.
func (b *UpdateBuilder) merge(src *model.Model) {
	if src != nil && src != b.Model() {
		b.Model().AddQuads(src.Quads())
	}
}

func (b *UpdateBuilder) comment(text string) {
	b.res.AddProperty(iriComment, quad.String(text))
}

func (b *UpdateBuilder) text(sparql string) {
	b.res.AddProperty(iriText, quad.String(sparql))
}

// createDataList converts every statement of m into an SPIN triple resource of
// the builder model and returns the list of them.
func (b *UpdateBuilder) createDataList(m *model.Model) *model.List {
	dst := b.Model()
	items := make([]quad.Value, 0, m.Len())
	for _, q := range m.Quads() {
		t := dst.CreateResource().
			AddProperty(iriSubject, q.Subject).
			AddProperty(iriPredicate, q.Predicate).
			AddProperty(iriObject, q.Object)
		items = append(items, t.Node())
	}
	return dst.CreateList(items...)
}
