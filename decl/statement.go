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
	"github.com/ShikaSD/injekt-sub000/internal/injektreflect"
	"github.com/ShikaSD/injekt-sub000/key"
)

// Statement is one normalized declaration of a component. The set of
// statement types is closed; switch over them with a type switch.
type Statement interface {
	Site() Site

	statement()
}

func (*ScopeStatement) statement()         {}
func (*BindStatement) statement()          {}
func (*InstanceStatement) statement()      {}
func (*BindsInstanceStatement) statement() {}
func (*AliasStatement) statement()         {}
func (*MapStatement) statement()           {}
func (*SetStatement) statement()           {}
func (*DependencyStatement) statement()    {}
func (*ChildFactoryStatement) statement()  {}
func (*AccessorStatement) statement()      {}
func (*IncludeStatement) statement()       {}

// ScopeStatement declares the scope tag of the component.
type ScopeStatement struct {
	Tag string
	At  Site
}

// BindStatement binds Key to a producer. When any parameter is assisted the
// binding is registered under AssistedKey(Key, Params).
type BindStatement struct {
	Key      key.Key
	Kind     Kind
	Producer Producer
	Params   []Param
	At       Site
}

// InstanceStatement binds Key to a value captured at declaration time.
type InstanceStatement struct {
	Key   key.Key
	Value any
	At    Site
}

// BindsInstanceStatement declares a constructor parameter of the component:
// the value for Key is supplied when the component is instantiated.
type BindsInstanceStatement struct {
	Key key.Key
	At  Site
}

// AliasStatement makes requests for Alias resolve to Original.
type AliasStatement struct {
	Original key.Key
	Alias    key.Key
	At       Site
}

// MapEntry is a single contribution to a multibound map.
type MapEntry struct {
	EntryKey any
	Element  key.Request
	At       Site
}

// MapStatement declares a multibound map and this component's entries.
type MapStatement struct {
	Key     key.Key
	Entries []MapEntry
	At      Site
}

// SetElement is a single contribution to a multibound set.
type SetElement struct {
	Element key.Request
	At      Site
}

// SetStatement declares a multibound set and this component's elements.
type SetStatement struct {
	Key      key.Key
	Elements []SetElement
	At       Site
}

// DependencyAccessor is one accessor exposed by a dependency component.
type DependencyAccessor struct {
	Name string
	Key  key.Key

	// Get reads the accessor from the dependency component instance.
	Get func(component any) any
}

// DependencyStatement declares a sibling component the component composes
// with. The component instance is a constructor parameter and each accessor
// satisfies its key.
type DependencyStatement struct {
	Key       key.Key
	Accessors []DependencyAccessor
	At        Site
}

// ChildFactoryStatement exposes a factory for a child component. The
// factory's parameters are the child's BindsInstance keys.
type ChildFactoryStatement struct {
	Child *Component
	At    Site
}

// AccessorStatement declares a public entry point of the component.
type AccessorStatement struct {
	Name    string
	Request key.Request
	At      Site
}

// IncludeStatement inlines the statements of a module.
type IncludeStatement struct {
	Module Module
	At     Site
}

func (s *ScopeStatement) Site() Site         { return s.At }
func (s *BindStatement) Site() Site          { return s.At }
func (s *InstanceStatement) Site() Site      { return s.At }
func (s *BindsInstanceStatement) Site() Site { return s.At }
func (s *AliasStatement) Site() Site         { return s.At }
func (s *MapStatement) Site() Site           { return s.At }
func (s *SetStatement) Site() Site           { return s.At }
func (s *DependencyStatement) Site() Site    { return s.At }
func (s *ChildFactoryStatement) Site() Site  { return s.At }
func (s *AccessorStatement) Site() Site      { return s.At }
func (s *IncludeStatement) Site() Site       { return s.At }

// BindingKey returns the key the statement is registered under.
func (s *BindStatement) BindingKey() key.Key { return AssistedKey(s.Key, s.Params) }

// Scope declares the component's scope tag.
func Scope(tag string) Statement {
	return &ScopeStatement{Tag: tag, At: injektreflect.Caller()}
}

// Bind binds k with the given kind.
func Bind(k key.Key, kind Kind, p Producer, params ...Param) Statement {
	return &BindStatement{Key: k, Kind: kind, Producer: p, Params: params, At: injektreflect.Caller()}
}

// Provide binds k to a producer invoked on every request.
func Provide(k key.Key, p Producer, params ...Param) Statement {
	return &BindStatement{Key: k, Kind: Transient, Producer: p, Params: params, At: injektreflect.Caller()}
}

// Scoped binds k to a producer invoked at most once per component instance.
func Scoped(k key.Key, p Producer, params ...Param) Statement {
	return &BindStatement{Key: k, Kind: ScopedKind, Producer: p, Params: params, At: injektreflect.Caller()}
}

// Instance binds k to v.
func Instance(k key.Key, v any) Statement {
	return &InstanceStatement{Key: k, Value: v, At: injektreflect.Caller()}
}

// BindsInstance declares k as a constructor parameter of the component.
func BindsInstance(k key.Key) Statement {
	return &BindsInstanceStatement{Key: k, At: injektreflect.Caller()}
}

// Alias makes requests for alias resolve to original.
func Alias(original, alias key.Key) Statement {
	return &AliasStatement{Original: original, Alias: alias, At: injektreflect.Caller()}
}

// Map declares the multibound map k with the given entries.
func Map(k key.Key, entries ...MapEntry) Statement {
	return &MapStatement{Key: k, Entries: entries, At: injektreflect.Caller()}
}

// Put contributes element to a map under entryKey.
func Put(entryKey any, element key.Request) MapEntry {
	return MapEntry{EntryKey: entryKey, Element: element, At: injektreflect.Caller()}
}

// Set declares the multibound set k with the given elements.
func Set(k key.Key, elements ...SetElement) Statement {
	return &SetStatement{Key: k, Elements: elements, At: injektreflect.Caller()}
}

// Add contributes element to a set.
func Add(element key.Request) SetElement {
	return SetElement{Element: element, At: injektreflect.Caller()}
}

// Dependency declares a sibling dependency component of type k.
func Dependency(k key.Key, accessors ...DependencyAccessor) Statement {
	return &DependencyStatement{Key: k, Accessors: accessors, At: injektreflect.Caller()}
}

// Access describes an accessor of a dependency component.
func Access(name string, k key.Key, get func(component any) any) DependencyAccessor {
	return DependencyAccessor{Name: name, Key: k, Get: get}
}

// ChildFactory exposes a factory creating child.
func ChildFactory(child *Component) Statement {
	return &ChildFactoryStatement{Child: child, At: injektreflect.Caller()}
}

// Accessor declares a public entry point named name.
func Accessor(name string, r key.Request) Statement {
	return &AccessorStatement{Name: name, Request: r, At: injektreflect.Caller()}
}

// Include inlines the statements of m.
func Include(m Module) Statement {
	return &IncludeStatement{Module: m, At: injektreflect.Caller()}
}
