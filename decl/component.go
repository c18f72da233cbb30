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

package decl

import (
	"fmt"

	"github.com/ShikaSD/injekt-sub000/internal/injektreflect"
	"github.com/ShikaSD/injekt-sub000/key"
)

// Component is a node of the component tree: a named, typed list of
// statements. Children are reached through ChildFactory statements.
type Component struct {
	Name       string
	Type       key.Type
	Statements []Statement
}

// NewComponent returns a component of type t.
func NewComponent(name string, t key.Type, stmts ...Statement) *Component {
	return &Component{Name: name, Type: t, Statements: stmts}
}

// Key returns the key of the component's own type.
func (c *Component) Key() key.Key { return key.New(c.Type) }

// Flatten returns the component's statements with Include statements
// expanded in place.
func (c *Component) Flatten() []Statement {
	return flatten(c.Statements)
}

func flatten(stmts []Statement) []Statement {
	out := make([]Statement, 0, len(stmts))
	for _, s := range stmts {
		if inc, ok := s.(*IncludeStatement); ok {
			out = append(out, flatten(inc.Module.Statements)...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Params returns the component's constructor parameters in declaration
// order: BindsInstance keys and dependency component keys.
func (c *Component) Params() []key.Key {
	var params []key.Key
	for _, s := range c.Flatten() {
		switch s := s.(type) {
		case *BindsInstanceStatement:
			params = append(params, s.Key)
		case *DependencyStatement:
			params = append(params, s.Key)
		}
	}
	return params
}

// FactoryKey returns the key of a factory function creating c from its
// constructor parameters.
func (c *Component) FactoryKey() key.Key {
	params := c.Params()
	types := make([]key.Type, len(params))
	for i, p := range params {
		types[i] = p.Type()
	}
	return key.New(key.Func(c.Type, types...))
}

func (c *Component) String() string {
	return fmt.Sprintf("%s(%v)", c.Name, c.Type)
}

// Module is a named, reusable group of statements.
type Module struct {
	Name       string
	Statements []Statement
}

// NewModule returns a module named name.
func NewModule(name string, stmts ...Statement) Module {
	return Module{Name: name, Statements: stmts}
}

// Member is an injectable member of a class, set after construction.
type Member struct {
	Name    string
	Request key.Request
	Set     func(target, value any)
}

// Class is a type whose declaration carries its own injection metadata: a
// constructor-shaped producer, its parameters and an optional scope.
//
// An unscoped class is constructed wherever it is requested. A scoped class
// is owned by the nearest component declaring the same scope.
type Class struct {
	Type     key.Type
	Scope    string
	Producer Producer
	Params   []Param
	Members  []Member
	At       Site
}

// Injectable declares a class of type t.
func Injectable(t key.Type, scope string, p Producer, params ...Param) Class {
	return Class{Type: t, Scope: scope, Producer: p, Params: params, At: injektreflect.Caller()}
}

// WithMembers returns a copy of c with the given injectable members.
func (c Class) WithMembers(members ...Member) Class {
	c.Members = append(append([]Member(nil), c.Members...), members...)
	return c
}

// Key returns the key the class is resolvable under: its own type, or the
// assisted factory type when any parameter is assisted.
func (c Class) Key() key.Key {
	return AssistedKey(key.New(c.Type), c.Params)
}

// Assisted reports whether any parameter of c is assisted.
func (c Class) Assisted() bool {
	for _, p := range c.Params {
		if p.Assisted {
			return true
		}
	}
	return false
}

// Catalog indexes classes by type.
type Catalog struct {
	classes map[string]Class
	order   []string
}

// NewCatalog indexes classes, rejecting two classes of the same type.
func NewCatalog(classes ...Class) (*Catalog, error) {
	c := &Catalog{classes: make(map[string]Class, len(classes))}
	for _, cl := range classes {
		id := cl.Type.String()
		if prev, ok := c.classes[id]; ok {
			return nil, &InvalidDeclarationError{
				Reason: fmt.Sprintf("class %v declared twice (first at %v)", cl.Type, prev.At),
				At:     cl.At,
			}
		}
		c.classes[id] = cl
		c.order = append(c.order, id)
	}
	return c, nil
}

// Lookup returns the class of type t.
func (c *Catalog) Lookup(t key.Type) (Class, bool) {
	if c == nil {
		return Class{}, false
	}
	cl, ok := c.classes[t.String()]
	return cl, ok
}

// Classes returns the indexed classes in declaration order.
func (c *Catalog) Classes() []Class {
	if c == nil {
		return nil
	}
	out := make([]Class, len(c.order))
	for i, id := range c.order {
		out[i] = c.classes[id]
	}
	return out
}

// InvalidDeclarationError reports a malformed statement.
type InvalidDeclarationError struct {
	Reason string
	At     Site
}

func (e *InvalidDeclarationError) Error() string {
	return fmt.Sprintf("invalid declaration at %v: %s", e.At, e.Reason)
}
