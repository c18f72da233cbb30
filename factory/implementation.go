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
	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/graph"
)

// Implementation is the generated implementation of one component: its
// graph, its cached fields and the expressions producing its keys.
type Implementation struct {
	graph  *graph.Graph
	arena  *Arena
	parent *Implementation

	members     *Members
	expressions *Expressions
}

// NewImplementation returns the implementation of g and stores it in
// arena. The parent's implementation must already be in the arena.
func NewImplementation(arena *Arena, g *graph.Graph) *Implementation {
	impl := &Implementation{
		graph:   g,
		arena:   arena,
		members: newMembers(g.Name()),
	}
	if p := g.Parent(); p != nil {
		impl.parent = arena.Get(p.ID())
	}
	impl.expressions = newExpressions(impl)
	arena.Set(impl)
	return impl
}

// ID returns the arena index of the component.
func (impl *Implementation) ID() binding.ComponentID { return impl.graph.ID() }

// Name returns the component name.
func (impl *Implementation) Name() string { return impl.graph.Name() }

// Graph returns the resolved graph of the component.
func (impl *Implementation) Graph() *graph.Graph { return impl.graph }

// Parent returns the parent implementation, nil for the root.
func (impl *Implementation) Parent() *Implementation { return impl.parent }

// Members returns the cached fields of the component.
func (impl *Implementation) Members() *Members { return impl.members }

// Expressions returns the expression renderer of the component.
func (impl *Implementation) Expressions() *Expressions { return impl.expressions }

// Arena returns the arena impl belongs to.
func (impl *Implementation) Arena() *Arena { return impl.arena }

// AssignFields gives every cached node the walks reached in this component
// a field. It must run after all graphs of the tree were walked, since
// walks of descendants add nodes to their ancestors.
func (impl *Implementation) AssignFields() {
	for _, n := range impl.graph.Nodes() {
		if binding.Cached(n) {
			impl.members.Add(n)
		}
	}
}

// ancestor returns the implementation owning id among impl and its
// ancestors, and the number of parent hops to it.
func (impl *Implementation) ancestor(id binding.ComponentID) (*Implementation, int) {
	hops := 0
	for a := impl; a != nil; a = a.parent {
		if a.ID() == id {
			return a, hops
		}
		hops++
	}
	return nil, -1
}
