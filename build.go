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

package injekt

import (
	"fmt"

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/factory"
	"github.com/ShikaSD/injekt-sub000/graph"
	"github.com/ShikaSD/injekt-sub000/injektevent"
	"go.uber.org/multierr"
)

// node is a component of the declaration tree with its arena index.
type node struct {
	id        binding.ComponentID
	component *decl.Component
	parent    *node
	children  map[*decl.Component]binding.ComponentID
}

// Build resolves the component tree rooted at root.
//
// Resolution runs in phases: every component gets an arena index, graphs
// are created parent before child, every graph is walked from its entry
// points, cached fields are assigned and their initialization is ordered.
// Walks of descendants may hand keys to their ancestors, so fields are
// only assigned once all walks completed.
func Build(root *decl.Component, opts ...Option) (_ *Plan, err error) {
	o := buildOptions{logger: injektevent.NopLogger}
	for _, opt := range opts {
		opt.apply(&o)
	}
	logger := o.logger

	name := "<nil>"
	if root != nil {
		name = root.Name
	}
	var components int
	defer func() {
		logger.LogEvent(&injektevent.Built{Root: name, Components: components, Err: err})
	}()

	if root == nil {
		return nil, &decl.InvalidDeclarationError{Reason: "no root component"}
	}

	catalog, err := decl.NewCatalog(o.classes...)
	if err != nil {
		return nil, err
	}

	nodes, err := index(root)
	if err != nil {
		return nil, err
	}
	components = len(nodes)

	graphs := make([]*graph.Graph, len(nodes))
	for _, n := range nodes {
		var parent *graph.Graph
		if n.parent != nil {
			parent = graphs[n.parent.id]
			if parent == nil {
				// The parent's declarations were rejected.
				continue
			}
		}
		g, gerr := graph.New(graph.Config{
			ID:        n.id,
			Component: n.component,
			Parent:    parent,
			Catalog:   catalog,
			Children:  n.children,
			Logger:    logger,
		})
		if gerr != nil {
			err = multierr.Append(err, gerr)
			continue
		}
		graphs[n.id] = g
	}
	if err != nil {
		return nil, err
	}

	for _, g := range graphs {
		err = multierr.Append(err, g.Walk())
	}
	if err != nil {
		return nil, err
	}

	arena := factory.NewArena(len(graphs))
	for _, g := range graphs {
		factory.NewImplementation(arena, g)
	}
	for _, impl := range arena.All() {
		impl.AssignFields()
	}
	for _, impl := range arena.All() {
		passes, oerr := impl.Members().Order(impl.Graph())
		fields := impl.Members().Initialization()
		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = f.Key.String()
		}
		logger.LogEvent(&injektevent.FieldsOrdered{
			Component: impl.Name(),
			Fields:    names,
			Passes:    passes,
			Err:       oerr,
		})
		err = multierr.Append(err, oerr)
	}
	if err != nil {
		return nil, err
	}

	return &Plan{arena: arena, logger: logger}, nil
}

// index assigns arena indexes to the component tree in depth first
// pre-order, so parents always precede their children.
func index(root *decl.Component) ([]*node, error) {
	var nodes []*node
	var visit func(c *decl.Component, parent *node, at decl.Site) error
	visit = func(c *decl.Component, parent *node, at decl.Site) error {
		for a := parent; a != nil; a = a.parent {
			if a.component == c {
				return &decl.InvalidDeclarationError{
					Reason: fmt.Sprintf("component %v is its own descendant", c),
					At:     at,
				}
			}
		}
		n := &node{
			id:        binding.ComponentID(len(nodes)),
			component: c,
			parent:    parent,
			children:  make(map[*decl.Component]binding.ComponentID),
		}
		nodes = append(nodes, n)
		for _, s := range c.Flatten() {
			cf, ok := s.(*decl.ChildFactoryStatement)
			if !ok {
				continue
			}
			if cf.Child == nil {
				return &decl.InvalidDeclarationError{Reason: "child factory without a component", At: cf.At}
			}
			if _, ok := n.children[cf.Child]; ok {
				// graph.New reports the duplicate factory.
				continue
			}
			n.children[cf.Child] = binding.ComponentID(len(nodes))
			if err := visit(cf.Child, n, cf.At); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root, nil, decl.Site{}); err != nil {
		return nil, err
	}
	return nodes, nil
}
