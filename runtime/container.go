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

// Package runtime executes built component plans. It compiles the
// expressions of every component into closures and instantiates
// containers: scoped fields are created at most once per container, even
// under concurrent first access.
package runtime

import (
	"fmt"
	"sort"

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/factory"
	"github.com/ShikaSD/injekt-sub000/injektevent"
)

// Program is the executable form of a component tree.
type Program struct {
	arena  *factory.Arena
	units  []*unit
	logger injektevent.Logger
}

type unit struct {
	impl *factory.Implementation

	// fields holds the initializer of each field, by index.
	fields []fn
	// eager lists the fields set when a container is created, in
	// initialization order. Scoped fields are filled on first read.
	eager     []int
	accessors map[string]fn
}

// Compile compiles all components of arena. Every producer, accessor and
// member setter must carry an implementation.
func Compile(arena *factory.Arena, logger injektevent.Logger) (*Program, error) {
	if logger == nil {
		logger = injektevent.NopLogger
	}
	p := &Program{arena: arena, logger: logger}
	cp := newCompiler()
	for _, impl := range arena.All() {
		u, err := cp.compileUnit(impl)
		if err != nil {
			return nil, fmt.Errorf("compiling component %s: %w", impl.Name(), err)
		}
		p.units = append(p.units, u)
	}
	return p, nil
}

func (cp *compiler) compileUnit(impl *factory.Implementation) (*unit, error) {
	fields := impl.Members().Fields()
	u := &unit{
		impl:      impl,
		fields:    make([]fn, len(fields)),
		accessors: make(map[string]fn),
	}
	for _, f := range fields {
		x, err := impl.Expressions().Initializer(f)
		if err != nil {
			return nil, err
		}
		if u.fields[f.Index], err = cp.compile(x); err != nil {
			return nil, fmt.Errorf("field %v: %w", f.Key, err)
		}
	}
	for _, f := range impl.Members().Initialization() {
		if _, ok := f.Node.(*binding.Instance); ok {
			u.eager = append(u.eager, f.Index)
		}
	}
	for _, a := range impl.Graph().Accessors() {
		x, err := impl.Expressions().Render(a.Request)
		if err != nil {
			return nil, fmt.Errorf("accessor %s: %w", a.Name, err)
		}
		if u.accessors[a.Name], err = cp.compile(x); err != nil {
			return nil, fmt.Errorf("accessor %s: %w", a.Name, err)
		}
	}
	return u, nil
}

// New instantiates the root component with its constructor parameters.
func (p *Program) New(args ...any) (*Container, error) {
	return p.newContainer(p.arena.Root().ID(), nil, args)
}

func (p *Program) newContainer(id binding.ComponentID, parent *Container, args []any) (*Container, error) {
	u := p.units[id]
	if want := len(u.impl.Graph().Params()); len(args) != want {
		err := fmt.Errorf("component %s takes %d parameters, got %d", u.impl.Name(), want, len(args))
		p.logger.LogEvent(&injektevent.Instantiated{Component: u.impl.Name(), Err: err})
		return nil, err
	}

	c := &Container{
		program: p,
		unit:    u,
		parent:  parent,
		params:  append([]any(nil), args...),
		cells:   make([]cell, len(u.fields)),
	}
	for _, i := range u.eager {
		c.cells[i].set(u.fields[i](c, nil))
	}
	p.logger.LogEvent(&injektevent.Instantiated{Component: u.impl.Name(), Fields: len(u.fields)})
	return c, nil
}

// Container is an instance of a component. It is safe for concurrent use.
type Container struct {
	program *Program
	unit    *unit
	parent  *Container
	params  []any
	cells   []cell
}

// Component returns the name of the component c instantiates.
func (c *Container) Component() string { return c.unit.impl.Name() }

// Parent returns the container c was created from, nil for the root.
func (c *Container) Parent() *Container { return c.parent }

// Get evaluates the accessor called name.
func (c *Container) Get(name string) (any, error) {
	f, ok := c.unit.accessors[name]
	if !ok {
		return nil, fmt.Errorf("component %s has no accessor %q", c.Component(), name)
	}
	return f(c, nil), nil
}

// MustGet is like Get but panics on error.
func (c *Container) MustGet(name string) any {
	v, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Accessors returns the names of c's accessors, sorted.
func (c *Container) Accessors() []string {
	names := make([]string, 0, len(c.unit.accessors))
	for name := range c.unit.accessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Container) field(i int) any {
	return c.cells[i].get(
		func() any { return c.unit.fields[i](c, nil) },
		func() string {
			return fmt.Sprintf("scoped %v of %s", c.unit.impl.Members().Fields()[i].Key, c.Component())
		},
	)
}
