// Package owl contains the constants of the OWL 2 vocabulary used to declare ontologies.
package owl

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl:`
)

const (
	// The class of ontologies.
	Ontology = Prefix + `Ontology`
	// The property that is used for importing other ontologies into a given ontology.
	Imports = Prefix + `imports`
	// The annotation property that provides version information for an ontology or another OWL construct.
	VersionInfo = Prefix + `versionInfo`
)
