package ontology

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cayleygraph/ldt/internal/lru"
)

// ErrInvalidTemplate is returned for URI templates that cannot be parsed.
var ErrInvalidTemplate = errors.New("invalid URI template")

// defaultVarPattern matches a single path segment.
const defaultVarPattern = `[^/]+`

var varName = regexp.MustCompile(`^[\w][\w.-]*$`)

// URITemplate is a compiled path template in JAX-RS syntax: literal text mixed
// with {name} or {name: regex} variables.
type URITemplate struct {
	raw     string
	re      *regexp.Regexp
	groups  map[int]string // regexp group index -> variable name
	names   []string
	literal int
	regexes int
}

// compiled templates shared by all matchers
var compiled = lru.New(1024)

// ParseURITemplate compiles a path template. A leading slash is added when
// missing, so "items/{id}" and "/items/{id}" are the same template.
func ParseURITemplate(path string) (*URITemplate, error) {
	v, err := compiled.GetOrCreate(path, func() (interface{}, error) {
		return parseURITemplate(path)
	})
	if err != nil {
		return nil, err
	}
	return v.(*URITemplate), nil
}

func parseURITemplate(path string) (*URITemplate, error) {
	norm := path
	if !strings.HasPrefix(norm, "/") {
		norm = "/" + norm
	}
	t := &URITemplate{raw: norm, groups: make(map[int]string)}
	var re strings.Builder
	byGroup := make(map[string]string)
	re.WriteString("^")
	for i := 0; i < len(norm); {
		c := norm[i]
		switch c {
		case '}':
			return nil, fmt.Errorf("%w: unexpected '}' at %d in %q", ErrInvalidTemplate, i, path)
		case '{':
			end, err := closingBrace(norm, i)
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrInvalidTemplate, err, path)
			}
			name, pattern, err := splitVar(norm[i+1 : end])
			if err != nil {
				return nil, fmt.Errorf("%w: %v in %q", ErrInvalidTemplate, err, path)
			}
			if pattern != defaultVarPattern {
				t.regexes++
			}
			group := fmt.Sprintf("ldtvar%d", len(t.names))
			byGroup[group] = name
			re.WriteString("(?P<" + group + ">" + pattern + ")")
			t.names = append(t.names, name)
			i = end + 1
		default:
			j := i
			for j < len(norm) && norm[j] != '{' && norm[j] != '}' {
				j++
			}
			t.literal += j - i
			re.WriteString(regexp.QuoteMeta(norm[i:j]))
			i = j
		}
	}
	re.WriteString("$")
	r, err := regexp.Compile(re.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v in %q", ErrInvalidTemplate, err, path)
	}
	t.re = r
	for i, n := range r.SubexpNames() {
		if name, ok := byGroup[n]; ok {
			t.groups[i] = name
		}
	}
	return t, nil
}

// closingBrace finds the brace that closes the variable opened at start.
// Braces inside a variable regex must be balanced.
func closingBrace(s string, start int) (int, error) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unclosed variable at %d", start)
}

func splitVar(body string) (name, pattern string, err error) {
	name, pattern = body, defaultVarPattern
	if i := strings.IndexByte(body, ':'); i >= 0 {
		name = body[:i]
		pattern = strings.TrimSpace(body[i+1:])
		if pattern == "" {
			return "", "", fmt.Errorf("empty regex for variable %q", strings.TrimSpace(name))
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return "", "", err
		}
	}
	name = strings.TrimSpace(name)
	if !varName.MatchString(name) {
		return "", "", fmt.Errorf("bad variable name %q", name)
	}
	return name, pattern, nil
}

// String returns the normalized template.
func (t *URITemplate) String() string { return t.raw }

// Variables returns variable names in the order they appear in the template.
func (t *URITemplate) Variables() []string {
	return append([]string(nil), t.names...)
}

// LiteralChars returns the number of literal characters of the template.
func (t *URITemplate) LiteralChars() int { return t.literal }

// RegexVariables returns the number of variables with an explicit regex.
func (t *URITemplate) RegexVariables() int { return t.regexes }

// Match matches a path and returns the values of the template variables. A
// variable that appears more than once must match the same value everywhere.
func (t *URITemplate) Match(path string) (map[string]string, bool) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	sub := t.re.FindStringSubmatch(path)
	if sub == nil {
		return nil, false
	}
	vars := make(map[string]string, len(t.names))
	for i, name := range t.groups {
		if prev, ok := vars[name]; ok && prev != sub[i] {
			return nil, false
		}
		vars[name] = sub[i]
	}
	return vars, true
}
