package model

import (
	"errors"
	"fmt"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
)

// ErrMalformedList is returned when an RDF list has a missing rdf:first or
// rdf:rest, more than one value for either of them, or a cycle.
var ErrMalformedList = errors.New("malformed RDF list")

var (
	iriFirst = quad.IRI(rdf.First).Full()
	iriRest  = quad.IRI(rdf.Rest).Full()
	iriNil   = quad.IRI(rdf.Nil).Full()
)

// Nil is the empty RDF list.
func Nil() quad.IRI { return iriNil }

// List is an RDF collection (rdf:first/rdf:rest cells ending with rdf:nil).
type List struct {
	m    *Model
	head quad.Value
	err  error
}

// CreateList builds a new list of items. An empty list is rdf:nil itself.
func (m *Model) CreateList(items ...quad.Value) *List {
	var head quad.Value = iriNil
	for i := len(items) - 1; i >= 0; i-- {
		cell := quad.RandomBlankNode()
		m.Add(quad.Quad{Subject: cell, Predicate: iriFirst, Object: items[i]})
		m.Add(quad.Quad{Subject: cell, Predicate: iriRest, Object: head})
		head = cell
	}
	return &List{m: m, head: head}
}

// List returns a handle for a list that starts at a given node.
func (m *Model) List(head quad.Value) *List {
	if head == nil {
		return nil
	}
	return &List{m: m, head: normalize(head)}
}

// Model returns the model the list is stored in.
func (l *List) Model() *Model { return l.m }

// Head returns the first cell of the list, or rdf:nil for an empty list.
func (l *List) Head() quad.Value { return l.head }

// IsEmpty reports whether the list is rdf:nil.
func (l *List) IsEmpty() bool {
	return key(l.head) == key(iriNil)
}

// cells walks the list and returns its cells in order.
func (l *List) cells() ([]quad.Value, error) {
	if l.err != nil {
		return nil, l.err
	}
	var out []quad.Value
	seen := make(map[string]struct{})
	cur := l.head
	for key(cur) != key(iriNil) {
		k := key(cur)
		if _, ok := seen[k]; ok {
			return nil, fmt.Errorf("%w: cycle at %v", ErrMalformedList, cur)
		}
		seen[k] = struct{}{}
		rest := l.m.Objects(cur, iriRest)
		if len(rest) != 1 {
			return nil, fmt.Errorf("%w: %v has %d rdf:rest values", ErrMalformedList, cur, len(rest))
		}
		out = append(out, cur)
		cur = rest[0]
	}
	return out, nil
}

// Items returns the members of the list in order.
func (l *List) Items() ([]quad.Value, error) {
	cells, err := l.cells()
	if err != nil {
		return nil, err
	}
	out := make([]quad.Value, 0, len(cells))
	for _, c := range cells {
		first := l.m.Objects(c, iriFirst)
		if len(first) != 1 {
			return nil, fmt.Errorf("%w: %v has %d rdf:first values", ErrMalformedList, c, len(first))
		}
		out = append(out, first[0])
	}
	return out, nil
}

// Len returns the number of members of the list.
func (l *List) Len() (int, error) {
	cells, err := l.cells()
	return len(cells), err
}

// With appends a value to the end of the list and returns the list.
// Appending to an empty list moves its head to the new cell.
func (l *List) With(v quad.Value) *List {
	cells, err := l.cells()
	if err != nil {
		l.err = err
		return l
	}
	cell := quad.RandomBlankNode()
	l.m.Add(quad.Quad{Subject: cell, Predicate: iriFirst, Object: v})
	l.m.Add(quad.Quad{Subject: cell, Predicate: iriRest, Object: iriNil})
	if len(cells) == 0 {
		l.head = cell
		return l
	}
	last := cells[len(cells)-1]
	l.m.Remove(quad.Quad{Subject: last, Predicate: iriRest, Object: iriNil})
	l.m.Add(quad.Quad{Subject: last, Predicate: iriRest, Object: cell})
	return l
}

// Err returns the error recorded by With, if any.
func (l *List) Err() error { return l.err }
