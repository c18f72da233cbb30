// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package factory

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/graph"
	"github.com/ShikaSD/injekt-sub000/key"
)

// Field is a member of a component implementation caching the value of a
// scoped binding or an instance.
type Field struct {
	Name  string
	Key   key.Key
	Node  binding.Node
	Index int
}

func (f *Field) String() string { return f.Name }

// Members is the append-only table of the fields of one component. Each
// key has at most one field.
type Members struct {
	component string

	fields []*Field
	byKey  map[key.ID]*Field
	names  map[string]struct{}
	order  []*Field
}

func newMembers(component string) *Members {
	return &Members{
		component: component,
		byKey:     make(map[key.ID]*Field),
		names:     make(map[string]struct{}),
	}
}

// Add returns the field of n's key, adding it if needed.
func (m *Members) Add(n binding.Node) *Field {
	if f, ok := m.byKey[n.Key().ID()]; ok {
		return f
	}
	f := &Field{
		Name:  m.uniqueName(fieldName(n.Key())),
		Key:   n.Key(),
		Node:  n,
		Index: len(m.fields),
	}
	m.fields = append(m.fields, f)
	m.byKey[f.Key.ID()] = f
	return f
}

// Field returns the field of k.
func (m *Members) Field(k key.Key) (*Field, bool) {
	f, ok := m.byKey[k.ID()]
	return f, ok
}

// Fields returns the fields in the order they were added.
func (m *Members) Fields() []*Field {
	out := make([]*Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Len returns the number of fields.
func (m *Members) Len() int { return len(m.fields) }

// Initialization returns the order computed by Order.
func (m *Members) Initialization() []*Field {
	out := make([]*Field, len(m.order))
	copy(out, m.order)
	return out
}

// Order computes the field initialization order of the component of g.
// Each pass initializes every pending field whose producer only needs
// fields already initialized or owned by an ancestor; a field's needs
// follow direct edges through uncached bindings and stop at Provider, Lazy
// and other deferred edges. It returns the number of passes.
func (m *Members) Order(g *graph.Graph) (int, error) {
	needs := make(map[*Field][]*Field, len(m.fields))
	for _, f := range m.fields {
		deps, err := m.needs(g, f.Node, make(map[key.ID]struct{}))
		if err != nil {
			return 0, err
		}
		needs[f] = deps
	}

	m.order = m.order[:0]
	initialized := make(map[*Field]bool, len(m.fields))
	pending := m.Fields()
	passes := 0
	for len(pending) > 0 {
		passes++
		var next []*Field
		for _, f := range pending {
			ready := true
			for _, d := range needs[f] {
				if !initialized[d] {
					ready = false
					break
				}
			}
			if ready {
				m.order = append(m.order, f)
			} else {
				next = append(next, f)
			}
		}
		if len(next) == len(pending) {
			keys := make([]key.Key, len(next))
			for i, f := range next {
				keys[i] = f.Key
			}
			return passes, &binding.UnresolvableInitializationOrderError{
				Component: m.component,
				Pending:   keys,
			}
		}
		// Fields readied in this pass become visible to the next one only.
		for _, f := range m.order {
			initialized[f] = true
		}
		pending = next
	}
	return passes, nil
}

// needs returns the local fields n's producer reads when it runs.
func (m *Members) needs(g *graph.Graph, n binding.Node, seen map[key.ID]struct{}) ([]*Field, error) {
	if n.DeferredDependencies() {
		return nil, nil
	}
	var out []*Field
	for _, dep := range n.Dependencies() {
		dn, err := g.Binding(dep.BindingKey())
		if err != nil {
			return nil, err
		}
		if dn.Owner() != g.ID() {
			continue
		}
		if f, ok := m.byKey[dn.Key().ID()]; ok {
			out = append(out, f)
			continue
		}
		if _, ok := seen[dn.Key().ID()]; ok {
			continue
		}
		seen[dn.Key().ID()] = struct{}{}
		more, err := m.needs(g, dn, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, more...)
	}
	return out, nil
}

func (m *Members) uniqueName(name string) string {
	candidate := name
	for i := 2; ; i++ {
		if _, ok := m.names[candidate]; !ok {
			m.names[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s%d", name, i)
	}
}

// fieldName derives an identifier from k: "@named:primary app.DB" becomes
// "namedPrimaryAppDB".
func fieldName(k key.Key) string {
	var b strings.Builder
	upper := false
	for _, r := range k.String() {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = b.Len() > 0
			continue
		}
		if b.Len() == 0 {
			r = unicode.ToLower(r)
		} else if upper {
			r = unicode.ToUpper(r)
		}
		upper = false
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "field"
	}
	return b.String()
}
