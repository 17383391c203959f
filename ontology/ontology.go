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

// Package ontology reads Linked Data Templates declared in an ontology and
// matches request URIs against them.
//
// A template is a resource typed ldt:Template with an ldt:path URI template,
// declared in an ontology with rdfs:isDefinedBy:
//
//	<#Item> a ldt:Template ;
//	    ldt:path "/items/{id}" ;
//	    ldt:priority 1 ;
//	    rdfs:isDefinedBy <#> .
package ontology

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/cayleygraph/ldt/clog"
	"github.com/cayleygraph/ldt/model"
	"github.com/cayleygraph/ldt/voc/ldt"
	"github.com/cayleygraph/ldt/voc/owl"
)

// ErrNotOntology is returned by Load when the requested resource is not typed
// owl:Ontology or ldt:Ontology.
var ErrNotOntology = errors.New("resource is not an ontology")

var (
	iriOWLOntology = quad.IRI(owl.Ontology).Full()
	iriLDTOntology = quad.IRI(ldt.Ontology).Full()
	iriImports     = quad.IRI(owl.Imports).Full()
	iriTemplate    = quad.IRI(ldt.Template).Full()
	iriPath        = quad.IRI(ldt.Path).Full()
	iriPriority    = quad.IRI(ldt.Priority).Full()
	iriQuery       = quad.IRI(ldt.Query).Full()
	iriUpdate      = quad.IRI(ldt.Update).Full()
	iriExtends     = quad.IRI(ldt.Extends).Full()
	iriDefinedBy   = quad.IRI(rdfs.IsDefinedBy).Full()
)

// Ontology is a set of templates together with the ontologies it imports.
type Ontology struct {
	IRI       quad.IRI
	Templates []*Template
	Imports   []*Ontology

	model *model.Model
}

// Template is a URI template bound to a SPARQL query and update.
type Template struct {
	IRI quad.Value
	// Path is the URI template; it is empty for abstract templates.
	Path     string
	Priority float64
	Query    quad.Value
	Update   quad.Value
	// Extends lists the direct super-templates.
	Extends []quad.Value
	// Ontology is the ontology that declares the template.
	Ontology *Ontology

	uriTemplate *URITemplate
}

// URITemplate returns the compiled path, or nil for abstract templates.
func (t *Template) URITemplate() *URITemplate { return t.uriTemplate }

func (t *Template) String() string {
	return fmt.Sprintf("%v(%q)", t.IRI, t.Path)
}

// Model returns the model the ontology was read from.
func (o *Ontology) Model() *model.Model { return o.model }

// Template returns a template declared in the ontology itself.
func (o *Ontology) Template(iri quad.Value) *Template {
	k := quad.StringOf(normalize(iri))
	for _, t := range o.Templates {
		if quad.StringOf(t.IRI) == k {
			return t
		}
	}
	return nil
}

func normalize(v quad.Value) quad.Value {
	if iri, ok := v.(quad.IRI); ok {
		return iri.Full()
	}
	return v
}

// Load reads an ontology, its templates and the ontologies it imports from a
// model. Imports that are not described in the model are skipped.
func Load(m *model.Model, iri quad.IRI) (*Ontology, error) {
	l := &loader{m: m, seen: make(map[quad.IRI]*Ontology)}
	return l.load(iri.Full())
}

type loader struct {
	m    *model.Model
	seen map[quad.IRI]*Ontology
}

func isOntology(m *model.Model, iri quad.IRI) bool {
	return m.HasType(iri, iriOWLOntology) || m.HasType(iri, iriLDTOntology)
}

func (l *loader) load(iri quad.IRI) (*Ontology, error) {
	if o, ok := l.seen[iri]; ok {
		return o, nil
	}
	if !isOntology(l.m, iri) {
		return nil, fmt.Errorf("%w: %v", ErrNotOntology, iri)
	}
	o := &Ontology{IRI: iri, model: l.m}
	l.seen[iri] = o
	for _, node := range l.m.Subjects(iriDefinedBy, iri) {
		if !l.m.HasType(node, iriTemplate) {
			continue
		}
		t, err := loadTemplate(l.m, node)
		if err != nil {
			return nil, err
		}
		t.Ontology = o
		o.Templates = append(o.Templates, t)
	}
	for _, v := range l.m.Objects(iri, iriImports) {
		imp, ok := v.(quad.IRI)
		if !ok || !isOntology(l.m, imp) {
			clog.Warningf("ontology %v: skipping import %v that is not described in the model", iri, v)
			continue
		}
		imported, err := l.load(imp)
		if err != nil {
			return nil, err
		}
		o.Imports = append(o.Imports, imported)
	}
	clog.Debugf("loaded ontology %v: %d templates, %d imports", iri, len(o.Templates), len(o.Imports))
	return o, nil
}

func loadTemplate(m *model.Model, node quad.Value) (*Template, error) {
	t := &Template{
		IRI:     node,
		Extends: m.Objects(node, iriExtends),
	}
	if v, ok := inherited(m, node, iriPath); ok {
		t.Path = literal(v)
	}
	if v, ok := inherited(m, node, iriPriority); ok {
		p, err := number(v)
		if err != nil {
			return nil, fmt.Errorf("template %v: bad ldt:priority: %v", node, err)
		}
		t.Priority = p
	}
	t.Query, _ = inherited(m, node, iriQuery)
	t.Update, _ = inherited(m, node, iriUpdate)
	if t.Path != "" {
		ut, err := ParseURITemplate(t.Path)
		if err != nil {
			return nil, fmt.Errorf("template %v: %w", node, err)
		}
		t.uriTemplate = ut
	}
	return t, nil
}

// inherited returns the value of a property declared on the template or,
// breadth first, on one of its super-templates.
func inherited(m *model.Model, node, p quad.Value) (quad.Value, bool) {
	seen := make(map[string]struct{})
	queue := []quad.Value{node}
	for len(queue) != 0 {
		cur := queue[0]
		queue = queue[1:]
		k := quad.StringOf(cur)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		if v, ok := m.Object(cur, p); ok {
			return v, true
		}
		queue = append(queue, m.Objects(cur, iriExtends)...)
	}
	return nil, false
}

func literal(v quad.Value) string {
	switch v := v.(type) {
	case quad.String:
		return string(v)
	case quad.TypedString:
		return string(v.Value)
	case quad.LangString:
		return string(v.Value)
	case quad.IRI:
		return string(v)
	}
	return quad.StringOf(v)
}

func number(v quad.Value) (float64, error) {
	switch v := v.(type) {
	case quad.Int:
		return float64(v), nil
	case quad.Float:
		return float64(v), nil
	}
	return strconv.ParseFloat(literal(v), 64)
}
