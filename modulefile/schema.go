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

package modulefile

import "gopkg.in/yaml.v3"

// File is the YAML document describing a component tree.
//
//	root: App
//	classes:
//	  - type: app.Session
//	    scope: request
//	    producer: NewSession
//	    params: [app.DB]
//	modules:
//	  - name: storage
//	    bindings:
//	      - {key: app.DB, kind: scoped, producer: OpenDB, params: [app.Config]}
//	components:
//	  - name: App
//	    type: app.App
//	    scope: app
//	    include: [storage]
//	    bindsInstance: [app.Config]
//	    children: [Request]
//	    accessors:
//	      - {name: NewRequest, request: "func() app.Request"}
type File struct {
	Root       string      `yaml:"root"`
	Classes    []Class     `yaml:"classes"`
	Modules    []Module    `yaml:"modules"`
	Components []Component `yaml:"components"`
}

// Class is an annotated class.
type Class struct {
	Type     string   `yaml:"type"`
	Scope    string   `yaml:"scope"`
	Producer string   `yaml:"producer"`
	Params   []string `yaml:"params"`
	Members  []Member `yaml:"members"`

	Line int `yaml:"-"`
}

// Member is an injectable member of a class.
type Member struct {
	Name    string `yaml:"name"`
	Request string `yaml:"request"`
}

// Statements are the declarations shared by modules and components.
type Statements struct {
	Bindings      []Binding    `yaml:"bindings"`
	Instances     []Instance   `yaml:"instances"`
	BindsInstance []Scalar     `yaml:"bindsInstance"`
	Aliases       []Alias      `yaml:"aliases"`
	Maps          []Map        `yaml:"maps"`
	Sets          []Set        `yaml:"sets"`
	Dependencies  []Dependency `yaml:"dependencies"`
	Include       []Scalar     `yaml:"include"`
}

// Module is a reusable group of statements.
type Module struct {
	Name       string `yaml:"name"`
	Statements `yaml:",inline"`
}

// Component is a component of the tree.
type Component struct {
	Name       string     `yaml:"name"`
	Type       string     `yaml:"type"`
	Scope      string     `yaml:"scope"`
	Children   []string   `yaml:"children"`
	Accessors  []Accessor `yaml:"accessors"`
	Statements `yaml:",inline"`

	Line int `yaml:"-"`
}

// Binding binds a key to a named producer.
type Binding struct {
	Key      string   `yaml:"key"`
	Kind     string   `yaml:"kind"`
	Producer string   `yaml:"producer"`
	Params   []string `yaml:"params"`

	Line int `yaml:"-"`
}

// Instance binds a key to a literal value.
type Instance struct {
	Key   string      `yaml:"key"`
	Value interface{} `yaml:"value"`

	Line int `yaml:"-"`
}

// Alias makes requests for Alias resolve to Original.
type Alias struct {
	Original string `yaml:"original"`
	Alias    string `yaml:"alias"`

	Line int `yaml:"-"`
}

// Map declares a multibound map.
type Map struct {
	Key     string     `yaml:"key"`
	Entries []MapEntry `yaml:"entries"`

	Line int `yaml:"-"`
}

// MapEntry contributes Element under Key.
type MapEntry struct {
	Key     interface{} `yaml:"key"`
	Element string      `yaml:"element"`

	Line int `yaml:"-"`
}

// Set declares a multibound set.
type Set struct {
	Key      string   `yaml:"key"`
	Elements []Scalar `yaml:"elements"`

	Line int `yaml:"-"`
}

// Dependency declares a dependency component.
type Dependency struct {
	Key       string               `yaml:"key"`
	Accessors []DependencyAccessor `yaml:"accessors"`

	Line int `yaml:"-"`
}

// DependencyAccessor is an accessor of a dependency component.
type DependencyAccessor struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

// Accessor is an entry point of a component.
type Accessor struct {
	Name    string `yaml:"name"`
	Request string `yaml:"request"`

	Line int `yaml:"-"`
}

// Scalar is a string value together with the line it appears on.
type Scalar struct {
	Value string
	Line  int
}

func (s *Scalar) UnmarshalYAML(n *yaml.Node) error {
	s.Line = n.Line
	return n.Decode(&s.Value)
}

// The UnmarshalYAML methods below record the line each declaration starts
// at.

func (c *Class) UnmarshalYAML(n *yaml.Node) error {
	type plain Class
	c.Line = n.Line
	return n.Decode((*plain)(c))
}

func (c *Component) UnmarshalYAML(n *yaml.Node) error {
	type plain Component
	c.Line = n.Line
	return n.Decode((*plain)(c))
}

func (b *Binding) UnmarshalYAML(n *yaml.Node) error {
	type plain Binding
	b.Line = n.Line
	return n.Decode((*plain)(b))
}

func (i *Instance) UnmarshalYAML(n *yaml.Node) error {
	type plain Instance
	i.Line = n.Line
	return n.Decode((*plain)(i))
}

func (a *Alias) UnmarshalYAML(n *yaml.Node) error {
	type plain Alias
	a.Line = n.Line
	return n.Decode((*plain)(a))
}

func (m *Map) UnmarshalYAML(n *yaml.Node) error {
	type plain Map
	m.Line = n.Line
	return n.Decode((*plain)(m))
}

func (e *MapEntry) UnmarshalYAML(n *yaml.Node) error {
	type plain MapEntry
	e.Line = n.Line
	return n.Decode((*plain)(e))
}

func (s *Set) UnmarshalYAML(n *yaml.Node) error {
	type plain Set
	s.Line = n.Line
	return n.Decode((*plain)(s))
}

func (d *Dependency) UnmarshalYAML(n *yaml.Node) error {
	type plain Dependency
	d.Line = n.Line
	return n.Decode((*plain)(d))
}

func (a *Accessor) UnmarshalYAML(n *yaml.Node) error {
	type plain Accessor
	a.Line = n.Line
	return n.Decode((*plain)(a))
}
