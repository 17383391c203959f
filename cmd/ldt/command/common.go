package command

import (
	"github.com/cayleygraph/quad"
	"github.com/spf13/viper"

	"github.com/cayleygraph/ldt/clog"
	"github.com/cayleygraph/ldt/internal"
	"github.com/cayleygraph/ldt/internal/config"
	"github.com/cayleygraph/ldt/ontology"
)

const defaultAddress = "http://localhost:64210/"

func loadConfig() (*config.Config, error) {
	return config.FromViper(viper.GetViper())
}

func openOntology(cfg *config.Config) (*ontology.Ontology, error) {
	o, err := internal.LoadOntology(cfg.OntologyPath, cfg.OntologyFormat, quad.IRI(cfg.OntologyIRI))
	if err != nil {
		return nil, err
	}
	clog.Infof("using ontology %v: %d templates, %d imports", o.IRI, len(o.Templates), len(o.Imports))
	return o, nil
}
