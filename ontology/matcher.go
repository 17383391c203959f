package ontology

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/ldt/clog"
)

// TemplateCall is the result of matching a request URI against the templates
// of an ontology. It is created for a single request.
type TemplateCall struct {
	Template *Template
	// URI is the absolute request URI without query and fragment.
	URI *url.URL
	// Base is the base URI the path was resolved against.
	Base *url.URL
	// Path is the decoded request path relative to the base URI, with a
	// leading slash.
	Path string
	// Variables holds the values of the template variables.
	Variables map[string]string
}

// Variable returns the value of a template variable.
func (c *TemplateCall) Variable(name string) (string, bool) {
	v, ok := c.Variables[name]
	return v, ok
}

func (c *TemplateCall) String() string {
	return fmt.Sprintf("%v -> %v", c.URI, c.Template)
}

type templateCallJSON struct {
	Template  string            `json:"template"`
	Ontology  string            `json:"ontology,omitempty"`
	URI       string            `json:"uri"`
	Base      string            `json:"base"`
	Path      string            `json:"path"`
	Variables map[string]string `json:"variables"`
	Query     string            `json:"query,omitempty"`
	Update    string            `json:"update,omitempty"`
	Priority  float64           `json:"priority"`
}

func (c *TemplateCall) MarshalJSON() ([]byte, error) {
	out := templateCallJSON{
		Path:      c.Path,
		Variables: c.Variables,
	}
	if out.Variables == nil {
		out.Variables = map[string]string{}
	}
	if c.URI != nil {
		out.URI = c.URI.String()
	}
	if c.Base != nil {
		out.Base = c.Base.String()
	}
	if t := c.Template; t != nil {
		out.Template = valueString(t.IRI)
		out.Query = valueString(t.Query)
		out.Update = valueString(t.Update)
		out.Priority = t.Priority
		if t.Ontology != nil {
			out.Ontology = string(t.Ontology.IRI)
		}
	}
	return json.Marshal(out)
}

func valueString(v quad.Value) string {
	if v == nil {
		return ""
	}
	return literal(v)
}

// Matcher matches request URIs against the templates of an ontology and the
// ontologies it imports.
type Matcher struct {
	ont *Ontology
}

// NewMatcher creates a matcher for an ontology.
func NewMatcher(o *Ontology) *Matcher {
	return &Matcher{ont: o}
}

// Ontology returns the ontology the matcher was created for.
func (m *Matcher) Ontology() *Ontology { return m.ont }

type candidate struct {
	t     *Template
	vars  map[string]string
	depth int
}

// Match resolves absolutePath against baseURI and returns the call of the best
// matching template. It returns nil when the path lies outside of the base URI
// or no template matches.
//
// Templates are ordered by import depth (templates of the ontology itself
// first), then by higher ldt:priority, more literal characters, more
// variables, more regex variables and finally by template IRI.
func (m *Matcher) Match(absolutePath, baseURI *url.URL) (*TemplateCall, error) {
	if m.ont == nil {
		return nil, fmt.Errorf("template matcher: ontology cannot be nil")
	}
	if absolutePath == nil || baseURI == nil {
		return nil, fmt.Errorf("template matcher: absolute path and base URI are required")
	}
	rel, ok := relativize(absolutePath, baseURI)
	if !ok {
		clog.Debugf("%v is not relative to base %v", absolutePath, baseURI)
		return nil, nil
	}
	var cands []candidate
	seen := make(map[*Ontology]struct{})
	level := []*Ontology{m.ont}
	for depth := 0; len(level) != 0; depth++ {
		var next []*Ontology
		for _, o := range level {
			if _, ok := seen[o]; ok {
				continue
			}
			seen[o] = struct{}{}
			for _, t := range o.Templates {
				if t.uriTemplate == nil {
					continue
				}
				if vars, ok := t.uriTemplate.Match(rel); ok {
					cands = append(cands, candidate{t: t, vars: vars, depth: depth})
				}
			}
			next = append(next, o.Imports...)
		}
		level = next
	}
	if len(cands) == 0 {
		clog.Debugf("no template matches %q in %v", rel, m.ont.IRI)
		return nil, nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return precedes(cands[i], cands[j])
	})
	best := cands[0]
	clog.Debugf("%q matched %v", rel, best.t)
	for name, v := range best.vars {
		best.vars[name] = unescape(v)
	}
	return &TemplateCall{
		Template:  best.t,
		URI:       stripQuery(absolutePath),
		Base:      baseURI,
		Path:      unescape(rel),
		Variables: best.vars,
	}, nil
}

func precedes(a, b candidate) bool {
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	if a.t.Priority != b.t.Priority {
		return a.t.Priority > b.t.Priority
	}
	ua, ub := a.t.uriTemplate, b.t.uriTemplate
	if ua.LiteralChars() != ub.LiteralChars() {
		return ua.LiteralChars() > ub.LiteralChars()
	}
	if na, nb := len(ua.names), len(ub.names); na != nb {
		return na > nb
	}
	if ua.RegexVariables() != ub.RegexVariables() {
		return ua.RegexVariables() > ub.RegexVariables()
	}
	return quad.StringOf(a.t.IRI) < quad.StringOf(b.t.IRI)
}

// relativize returns the escaped path of u relative to base, with a leading
// slash. Templates match the escaped path, so an encoded slash stays inside
// its segment.
func relativize(u, base *url.URL) (string, bool) {
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return "", false
	}
	bp := base.EscapedPath()
	if !strings.HasSuffix(bp, "/") {
		bp += "/"
	}
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if p+"/" == bp {
		return "/", true
	}
	if !strings.HasPrefix(p, bp) {
		return "", false
	}
	return "/" + strings.TrimPrefix(p, bp), true
}

func unescape(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}

func stripQuery(u *url.URL) *url.URL {
	c := *u
	c.RawQuery = ""
	c.ForceQuery = false
	c.Fragment = ""
	c.RawFragment = ""
	return &c
}
