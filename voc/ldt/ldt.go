// Package ldt contains constants of the Linked Data Templates vocabulary (LDT).
package ldt

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `https://www.w3.org/ns/ldt#`
	Prefix = `ldt:`
)

const (
	// Types

	// A URI template bound to a SPARQL query and update.
	Template = Prefix + `Template`
	// An ontology that declares templates.
	Ontology = Prefix + `Ontology`

	// Properties

	// The URI template (JAX-RS path syntax) matched against request URIs.
	Path = Prefix + `path`
	// Precedence of a template when several of them match the same URI.
	Priority = Prefix + `priority`
	// SPARQL query used to describe resources that match the template.
	Query = Prefix + `query`
	// SPARQL update used to modify resources that match the template.
	Update = Prefix + `update`
	// The super-template that this template inherits from.
	Extends = Prefix + `extends`
)
