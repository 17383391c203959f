// Package sp contains constants of the SPIN SPARQL Syntax vocabulary (SP).
//
// See http://spinrdf.org/sp.html for the vocabulary itself.
package sp

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://spinrdf.org/sp#`
	Prefix = `sp:`
)

const (
	// Types

	// Super class of all SPARQL UPDATE operations.
	Update = Prefix + `Update`
	// An Update operation that inserts ground triples into a graph.
	InsertData = Prefix + `InsertData`
	// An Update operation that removes ground triples from a graph.
	DeleteData = Prefix + `DeleteData`
	// A named graph element inside of a data block or a query pattern.
	NamedGraph = Prefix + `NamedGraph`
	// A triple pattern used in a query or a data block.
	TriplePattern = Prefix + `TriplePattern`

	// Properties

	// The RDF list of triples (or named graph elements) of an INSERT DATA or DELETE DATA operation.
	Data = Prefix + `data`
	// The name of a named graph element; either a URI or a variable.
	GraphNameNode = Prefix + `graphNameNode`
	// Points to an RDF list of elements, for example the triples of a named graph.
	Elements = Prefix + `elements`
	// The subject of a triple.
	Subject = Prefix + `subject`
	// The predicate of a triple.
	Predicate = Prefix + `predicate`
	// The object of a triple.
	Object = Prefix + `object`
	// The textual SPARQL representation of a query or update.
	Text = Prefix + `text`
)
