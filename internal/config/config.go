// Copyright 2014 The Cayley Authors. All rights reserved.
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

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyOntologyPath   = "ontology.path"
	KeyOntologyIRI    = "ontology.iri"
	KeyOntologyFormat = "ontology.format"
	KeyHTTPBase       = "http.base"
	KeyHTTPHost       = "http.host"
	KeyHTTPTimeout    = "http.timeout"
	KeyHTTPReadOnly   = "http.read_only"
)

// Config is the typed view of the ldt configuration.
type Config struct {
	OntologyPath   string
	OntologyIRI    string
	OntologyFormat string
	// BaseURI fixes the base URI of template calls; nil derives it from requests.
	BaseURI  *url.URL
	Host     string
	Timeout  time.Duration
	ReadOnly bool
}

type config struct {
	OntologyPath   string   `json:"ontology_path"`
	OntologyIRI    string   `json:"ontology_iri,omitempty"`
	OntologyFormat string   `json:"ontology_format,omitempty"`
	BaseURI        string   `json:"base,omitempty"`
	Host           string   `json:"host"`
	Timeout        duration `json:"timeout"`
	ReadOnly       bool     `json:"read_only"`
}

func (c *Config) MarshalJSON() ([]byte, error) {
	t := config{
		OntologyPath:   c.OntologyPath,
		OntologyIRI:    c.OntologyIRI,
		OntologyFormat: c.OntologyFormat,
		Host:           c.Host,
		Timeout:        duration(c.Timeout),
		ReadOnly:       c.ReadOnly,
	}
	if c.BaseURI != nil {
		t.BaseURI = c.BaseURI.String()
	}
	return json.Marshal(t)
}

// FromViper reads the configuration keys from v.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		OntologyPath:   v.GetString(KeyOntologyPath),
		OntologyIRI:    v.GetString(KeyOntologyIRI),
		OntologyFormat: v.GetString(KeyOntologyFormat),
		Host:           v.GetString(KeyHTTPHost),
		ReadOnly:       v.GetBool(KeyHTTPReadOnly),
	}
	if s := v.GetString(KeyHTTPBase); s != "" {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", KeyHTTPBase, err)
		} else if !u.IsAbs() {
			return nil, fmt.Errorf("%s must be an absolute URI: %q", KeyHTTPBase, s)
		}
		c.BaseURI = u
	}
	if s := v.GetString(KeyHTTPTimeout); s != "" {
		var d duration
		if err := d.parse(s); err != nil {
			return nil, fmt.Errorf("invalid %s: %v", KeyHTTPTimeout, err)
		}
		c.Timeout = time.Duration(d)
	}
	return c, nil
}

// duration is a time.Duration that is parsed from a duration string or a
// number of seconds.
type duration time.Duration

// parse reads a duration according to the following scheme:
//   - If the text is empty the duration is zero.
//   - If the text is parsable as a time.Duration, the parsed value is kept.
//   - If the text is parsable as a number, that number of seconds is kept.
func (d *duration) parse(text string) error {
	if text == "" {
		*d = 0
		return nil
	}
	t, err := time.ParseDuration(text)
	if err == nil {
		*d = duration(t)
		return nil
	}
	// ParseFloat also handles e-notation for integers.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("cannot parse %q as duration", text)
	}
	*d = duration(time.Duration(f * float64(time.Second)))
	return nil
}

func (d *duration) UnmarshalJSON(data []byte) error {
	text := string(data)
	if s, err := strconv.Unquote(text); err == nil {
		text = s
	}
	return d.parse(text)
}

func (d duration) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", time.Duration(d))), nil
}
