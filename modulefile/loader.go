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

// Package modulefile loads component trees from YAML.
//
// Producers are referenced by name. A tree loaded without implementations
// can be built and inspected; to instantiate it, supply the implementation
// of every producer with WithProducers.
package modulefile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/key"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tree is a loaded component tree.
type Tree struct {
	Root *decl.Component
	// Components indexes every component reachable from Root by name.
	Components map[string]*decl.Component
	Classes    []decl.Class
}

// Option configures loading.
type Option interface {
	apply(*loader)
}

type producersOption map[string]decl.Func

func (o producersOption) apply(l *loader) {
	for name, fn := range o {
		l.producers[name] = fn
	}
}

// WithProducers supplies producer implementations by name. Accessors of
// dependency components are looked up as "<component type>.<accessor>".
func WithProducers(producers map[string]decl.Func) Option {
	return producersOption(producers)
}

// LoadFile reads and loads the YAML file at path.
func LoadFile(path string, opts ...Option) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read module file %s", path)
	}
	return Parse(data, path, opts...)
}

// Parse loads a component tree from YAML data. name identifies the data in
// declaration sites and errors.
func Parse(data []byte, name string, opts ...Option) (*Tree, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrapf(err, "failed to parse module file %s", name)
	}

	l := &loader{
		file:       name,
		producers:  make(map[string]decl.Func),
		modules:    make(map[string]*Module),
		components: make(map[string]*Component),
		built:      make(map[string]*decl.Component),
		inProgress: make(map[string]bool),
	}
	for _, opt := range opts {
		opt.apply(l)
	}
	return l.load(&f)
}

type loader struct {
	file      string
	producers map[string]decl.Func

	modules    map[string]*Module
	components map[string]*Component
	built      map[string]*decl.Component
	inProgress map[string]bool
}

func (l *loader) site(what string, line int) decl.Site {
	return decl.Site{Function: what, File: l.file, Line: line}
}

func (l *loader) errorf(line int, format string, args ...interface{}) error {
	return errors.Errorf("%s:%d: %s", l.file, line, fmt.Sprintf(format, args...))
}

func (l *loader) load(f *File) (*Tree, error) {
	for i := range f.Modules {
		m := &f.Modules[i]
		if _, ok := l.modules[m.Name]; ok {
			return nil, errors.Errorf("%s: module %q declared twice", l.file, m.Name)
		}
		l.modules[m.Name] = m
	}
	for i := range f.Components {
		c := &f.Components[i]
		if _, ok := l.components[c.Name]; ok {
			return nil, l.errorf(c.Line, "component %q declared twice", c.Name)
		}
		l.components[c.Name] = c
	}

	classes := make([]decl.Class, 0, len(f.Classes))
	for _, c := range f.Classes {
		cl, err := l.class(c)
		if err != nil {
			return nil, err
		}
		classes = append(classes, cl)
	}

	rootName := f.Root
	if rootName == "" && len(f.Components) > 0 {
		rootName = f.Components[0].Name
	}
	root, err := l.component(rootName, 0)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root, Components: l.built, Classes: classes}, nil
}

func (l *loader) producer(name string) decl.Producer {
	return decl.Produce(name, l.producers[name])
}

func (l *loader) class(c Class) (decl.Class, error) {
	t, err := key.ParseType(c.Type)
	if err != nil {
		return decl.Class{}, errors.Wrapf(err, "%s:%d", l.file, c.Line)
	}
	params, err := l.params(c.Params, c.Line)
	if err != nil {
		return decl.Class{}, err
	}
	cl := decl.Class{
		Type:     t,
		Scope:    c.Scope,
		Producer: l.producer(c.Producer),
		Params:   params,
		At:       l.site("class "+c.Type, c.Line),
	}
	for _, m := range c.Members {
		r, err := ParseRequest(m.Request)
		if err != nil {
			return decl.Class{}, errors.Wrapf(err, "%s:%d: member %s", l.file, c.Line, m.Name)
		}
		cl.Members = append(cl.Members, decl.Member{Name: m.Name, Request: r})
	}
	return cl, nil
}

func (l *loader) params(specs []string, line int) ([]decl.Param, error) {
	params := make([]decl.Param, 0, len(specs))
	for _, s := range specs {
		p, err := ParseParam(s)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, line)
		}
		params = append(params, p)
	}
	return params, nil
}

func (l *loader) component(name string, line int) (*decl.Component, error) {
	if c, ok := l.built[name]; ok {
		return c, nil
	}
	c, ok := l.components[name]
	if !ok {
		return nil, l.errorf(line, "unknown component %q", name)
	}
	if l.inProgress[name] {
		return nil, l.errorf(c.Line, "component %q is its own descendant", name)
	}
	l.inProgress[name] = true
	defer delete(l.inProgress, name)

	t, err := key.ParseType(c.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "%s:%d: component %s", l.file, c.Line, name)
	}

	var stmts []decl.Statement
	if c.Scope != "" {
		stmts = append(stmts, &decl.ScopeStatement{Tag: c.Scope, At: l.site("component "+name, c.Line)})
	}
	more, err := l.statements(c.Statements, "component "+name, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, more...)

	for _, childName := range c.Children {
		child, err := l.component(childName, c.Line)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, &decl.ChildFactoryStatement{
			Child: child,
			At:    l.site("component "+name, c.Line),
		})
	}

	for _, a := range c.Accessors {
		r, err := ParseRequest(a.Request)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: accessor %s", l.file, a.Line, a.Name)
		}
		stmts = append(stmts, &decl.AccessorStatement{
			Name:    a.Name,
			Request: r,
			At:      l.site("accessor "+a.Name, a.Line),
		})
	}

	comp := decl.NewComponent(name, t, stmts...)
	l.built[name] = comp
	return comp, nil
}

// statements converts s. Included modules are expanded into Include
// statements; including stops at modules already being expanded.
func (l *loader) statements(s Statements, owner string, including map[string]bool) ([]decl.Statement, error) {
	var out []decl.Statement

	for _, inc := range s.Include {
		name := inc.Value
		m, ok := l.modules[name]
		if !ok {
			return nil, l.errorf(inc.Line, "%s includes unknown module %q", owner, name)
		}
		if including[name] {
			return nil, l.errorf(inc.Line, "module %q includes itself", name)
		}
		including[name] = true
		inner, err := l.statements(m.Statements, "module "+name, including)
		delete(including, name)
		if err != nil {
			return nil, err
		}
		out = append(out, &decl.IncludeStatement{
			Module: decl.NewModule(name, inner...),
			At:     l.site(owner, inc.Line),
		})
	}

	for _, b := range s.Bindings {
		k, err := ParseKey(b.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, b.Line)
		}
		var kind decl.Kind
		switch b.Kind {
		case "", "transient":
			kind = decl.Transient
		case "scoped":
			kind = decl.ScopedKind
		default:
			return nil, l.errorf(b.Line, "unknown binding kind %q", b.Kind)
		}
		params, err := l.params(b.Params, b.Line)
		if err != nil {
			return nil, err
		}
		out = append(out, &decl.BindStatement{
			Key:      k,
			Kind:     kind,
			Producer: l.producer(b.Producer),
			Params:   params,
			At:       l.site(owner, b.Line),
		})
	}

	for _, i := range s.Instances {
		k, err := ParseKey(i.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, i.Line)
		}
		out = append(out, &decl.InstanceStatement{Key: k, Value: i.Value, At: l.site(owner, i.Line)})
	}

	for _, ks := range s.BindsInstance {
		k, err := ParseKey(ks.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, ks.Line)
		}
		out = append(out, &decl.BindsInstanceStatement{Key: k, At: l.site(owner, ks.Line)})
	}

	for _, a := range s.Aliases {
		original, err := ParseKey(a.Original)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, a.Line)
		}
		alias, err := ParseKey(a.Alias)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, a.Line)
		}
		out = append(out, &decl.AliasStatement{Original: original, Alias: alias, At: l.site(owner, a.Line)})
	}

	for _, m := range s.Maps {
		k, err := ParseKey(m.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, m.Line)
		}
		stmt := &decl.MapStatement{Key: k, At: l.site(owner, m.Line)}
		for _, e := range m.Entries {
			r, err := ParseRequest(e.Element)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", l.file, e.Line)
			}
			stmt.Entries = append(stmt.Entries, decl.MapEntry{
				EntryKey: e.Key,
				Element:  r,
				At:       l.site(owner, e.Line),
			})
		}
		out = append(out, stmt)
	}

	for _, set := range s.Sets {
		k, err := ParseKey(set.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, set.Line)
		}
		stmt := &decl.SetStatement{Key: k, At: l.site(owner, set.Line)}
		for _, e := range set.Elements {
			r, err := ParseRequest(e.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", l.file, e.Line)
			}
			stmt.Elements = append(stmt.Elements, decl.SetElement{Element: r, At: l.site(owner, e.Line)})
		}
		out = append(out, stmt)
	}

	for _, d := range s.Dependencies {
		k, err := ParseKey(d.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", l.file, d.Line)
		}
		stmt := &decl.DependencyStatement{Key: k, At: l.site(owner, d.Line)}
		for _, a := range d.Accessors {
			ak, err := ParseKey(a.Key)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d: accessor %s", l.file, d.Line, a.Name)
			}
			acc := decl.DependencyAccessor{Name: a.Name, Key: ak}
			if fn, ok := l.producers[k.Type().String()+"."+a.Name]; ok {
				acc.Get = func(component any) any { return fn(component) }
			}
			stmt.Accessors = append(stmt.Accessors, acc)
		}
		out = append(out, stmt)
	}

	return out, nil
}
