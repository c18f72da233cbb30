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

// Package binding defines the resolved description of how each key's value
// is produced, and the errors resolution reports.
package binding

import (
	"fmt"

	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/key"
)

// ComponentID is the arena index of the component owning a node.
type ComponentID int

// NoComponent is the ComponentID of nothing.
const NoComponent ComponentID = -1

// Node describes how to satisfy one key. The set of node types is closed.
type Node interface {
	// Key is the key the node satisfies.
	Key() key.Key
	// Owner is the component producing the value.
	Owner() ComponentID
	// Dependencies are the requests the node's producer consumes.
	Dependencies() []key.Request
	// DeferredDependencies reports whether the dependencies are consumed
	// only when a function the node produces is invoked, after the graph
	// is built. Such edges break dependency cycles.
	DeferredDependencies() bool
	// Site is the declaration that introduced the node.
	Site() decl.Site
	// Kind names the node variant.
	Kind() string

	node()
}

type base struct {
	key   key.Key
	owner ComponentID
	site  decl.Site
}

func (b base) Key() key.Key                { return b.key }
func (b base) Owner() ComponentID          { return b.owner }
func (b base) Site() decl.Site             { return b.site }
func (b base) Dependencies() []key.Request { return nil }
func (b base) DeferredDependencies() bool  { return false }

func (*Provision) node()             {}
func (*AssistedProvision) node()     {}
func (*Instance) node()              {}
func (*Delegate) node()              {}
func (*Dependency) node()            {}
func (*MapBinding) node()            {}
func (*SetBinding) node()            {}
func (*ChildFactory) node()          {}
func (*FactoryImplementation) node() {}
func (*Provider) node()              {}
func (*Lazy) node()                  {}
func (*MembersInjector) node()       {}

// Provision produces its key by calling Producer with its resolved
// parameters.
type Provision struct {
	base

	Producer decl.Producer
	Params   []decl.Param
	Scoped   bool

	// Members are injected into the produced value before it is returned.
	Members []decl.Member
}

// NewProvision returns a Provision node.
func NewProvision(k key.Key, owner ComponentID, at decl.Site, p decl.Producer, params []decl.Param, scoped bool) *Provision {
	return &Provision{base: base{k, owner, at}, Producer: p, Params: params, Scoped: scoped}
}

func (n *Provision) Dependencies() []key.Request {
	deps := paramRequests(n.Params, false)
	for _, m := range n.Members {
		deps = append(deps, m.Request)
	}
	return deps
}

func (n *Provision) Kind() string {
	if n.Scoped {
		return "scoped"
	}
	return "provision"
}

// AssistedProvision produces a function over the assisted parameters that
// calls Producer with those arguments and the resolved given parameters.
type AssistedProvision struct {
	base

	Target   key.Key
	Producer decl.Producer
	Params   []decl.Param
}

// NewAssistedProvision returns an AssistedProvision node bound under the
// assisted factory key of target.
func NewAssistedProvision(target key.Key, owner ComponentID, at decl.Site, p decl.Producer, params []decl.Param) *AssistedProvision {
	return &AssistedProvision{
		base:     base{decl.AssistedKey(target, params), owner, at},
		Target:   target,
		Producer: p,
		Params:   params,
	}
}

// Dependencies returns the given (non-assisted) parameters.
func (n *AssistedProvision) Dependencies() []key.Request { return paramRequests(n.Params, true) }

func (n *AssistedProvision) DeferredDependencies() bool { return true }

func (n *AssistedProvision) Kind() string { return "assisted" }

// Instance holds a value captured at construction time: either Value, when
// Captured, or the component's constructor parameter number Param.
type Instance struct {
	base

	Value    any
	Captured bool
	Param    int
}

// NewCapturedInstance returns an Instance holding v.
func NewCapturedInstance(k key.Key, owner ComponentID, at decl.Site, v any) *Instance {
	return &Instance{base: base{k, owner, at}, Value: v, Captured: true, Param: -1}
}

// NewParamInstance returns an Instance read from constructor parameter i.
func NewParamInstance(k key.Key, owner ComponentID, at decl.Site, i int) *Instance {
	return &Instance{base: base{k, owner, at}, Param: i}
}

func (n *Instance) Kind() string { return "instance" }

// Delegate redirects its key to Original.
type Delegate struct {
	base

	Original key.Key
}

// NewDelegate returns a Delegate node.
func NewDelegate(k key.Key, owner ComponentID, at decl.Site, original key.Key) *Delegate {
	return &Delegate{base: base{k, owner, at}, Original: original}
}

func (n *Delegate) Dependencies() []key.Request { return []key.Request{key.InstanceOf(n.Original)} }

func (n *Delegate) Kind() string { return "alias" }

// Dependency forwards to an accessor of a sibling dependency component.
type Dependency struct {
	base

	Component key.Key
	Accessor  decl.DependencyAccessor
}

// NewDependency returns a Dependency node.
func NewDependency(owner ComponentID, at decl.Site, component key.Key, acc decl.DependencyAccessor) *Dependency {
	return &Dependency{base: base{acc.Key, owner, at}, Component: component, Accessor: acc}
}

func (n *Dependency) Dependencies() []key.Request { return []key.Request{key.InstanceOf(n.Component)} }

func (n *Dependency) Kind() string { return "dependency" }

// MapEntry is a merged entry of a multibound map.
type MapEntry struct {
	EntryKey any
	Element  key.Request
	Owner    ComponentID
	At       decl.Site
}

// MapBinding produces a multibound map. Flavor selects the view: the
// values themselves, or Provider / Lazy functions producing them.
type MapBinding struct {
	base

	Collection key.Key
	Flavor     key.Flavor
	Entries    []MapEntry
}

// NewMapBinding returns the flavor view of a merged map.
func NewMapBinding(owner ComponentID, at decl.Site, collection key.Key, f key.Flavor, entries []MapEntry) *MapBinding {
	return &MapBinding{
		base:       base{key.CollectionView(collection, f), owner, at},
		Collection: collection,
		Flavor:     f,
		Entries:    entries,
	}
}

func (n *MapBinding) Dependencies() []key.Request {
	out := make([]key.Request, len(n.Entries))
	for i, e := range n.Entries {
		out[i] = viewRequest(e.Element, n.Flavor)
	}
	return out
}

func (n *MapBinding) Kind() string { return "map" }

// SetElement is a merged element of a multibound set.
type SetElement struct {
	Element key.Request
	Owner   ComponentID
	At      decl.Site
}

// SetBinding produces a multibound set, in contribution order.
type SetBinding struct {
	base

	Collection key.Key
	Flavor     key.Flavor
	Elements   []SetElement
}

// NewSetBinding returns the flavor view of a merged set.
func NewSetBinding(owner ComponentID, at decl.Site, collection key.Key, f key.Flavor, elements []SetElement) *SetBinding {
	return &SetBinding{
		base:       base{key.CollectionView(collection, f), owner, at},
		Collection: collection,
		Flavor:     f,
		Elements:   elements,
	}
}

func (n *SetBinding) Dependencies() []key.Request {
	out := make([]key.Request, len(n.Elements))
	for i, e := range n.Elements {
		out[i] = viewRequest(e.Element, n.Flavor)
	}
	return out
}

func (n *SetBinding) Kind() string { return "set" }

// ChildFactory produces a function instantiating the child component,
// threading the current component as its parent.
type ChildFactory struct {
	base

	Child  ComponentID
	Params []key.Key
}

// NewChildFactory returns a ChildFactory node.
func NewChildFactory(k key.Key, owner ComponentID, at decl.Site, child ComponentID, params []key.Key) *ChildFactory {
	return &ChildFactory{base: base{k, owner, at}, Child: child, Params: params}
}

func (n *ChildFactory) Kind() string { return "child-factory" }

// FactoryImplementation satisfies requests for the component itself.
type FactoryImplementation struct {
	base
}

// NewFactoryImplementation returns the self-reference node of owner.
func NewFactoryImplementation(k key.Key, owner ComponentID, at decl.Site) *FactoryImplementation {
	return &FactoryImplementation{base: base{k, owner, at}}
}

func (n *FactoryImplementation) Kind() string { return "self" }

type wrapper struct {
	base

	Inner key.Key
}

func (w wrapper) Dependencies() []key.Request { return []key.Request{key.InstanceOf(w.Inner)} }
func (w wrapper) DeferredDependencies() bool  { return true }

// Provider produces a function returning a value of Inner on every call.
type Provider struct{ wrapper }

// Lazy produces a function returning the same value of Inner on every call,
// computed on the first one.
type Lazy struct{ wrapper }

// NewProvider returns a Provider node over inner.
func NewProvider(owner ComponentID, inner key.Key) *Provider {
	return &Provider{wrapper{base: base{key.ProviderOf(inner).BindingKey(), owner, decl.Site{}}, Inner: inner}}
}

// NewLazy returns a Lazy node over inner.
func NewLazy(owner ComponentID, inner key.Key) *Lazy {
	return &Lazy{wrapper{base: base{key.LazyOf(inner).BindingKey(), owner, decl.Site{}}, Inner: inner}}
}

func (n *Provider) Kind() string { return "provider" }
func (n *Lazy) Kind() string     { return "lazy" }

// MembersInjector produces a function injecting Members into an existing
// value of Target.
type MembersInjector struct {
	base

	Target  key.Type
	Members []decl.Member
}

// NewMembersInjector returns a MembersInjector node.
func NewMembersInjector(k key.Key, owner ComponentID, at decl.Site, target key.Type, members []decl.Member) *MembersInjector {
	return &MembersInjector{base: base{k, owner, at}, Target: target, Members: members}
}

func (n *MembersInjector) Dependencies() []key.Request {
	out := make([]key.Request, len(n.Members))
	for i, m := range n.Members {
		out[i] = m.Request
	}
	return out
}

func (n *MembersInjector) DeferredDependencies() bool { return true }

func (n *MembersInjector) Kind() string { return "members-injector" }

// Cached reports whether n's value is stored in a field of its owner.
func Cached(n Node) bool {
	switch n := n.(type) {
	case *Provision:
		return n.Scoped
	case *Instance:
		return true
	}
	return false
}

// Describe formats n for error messages and logs.
func Describe(n Node) string {
	return fmt.Sprintf("%s %v (component #%d, declared at %v)", n.Kind(), n.Key(), n.Owner(), n.Site())
}

func paramRequests(params []decl.Param, skipAssisted bool) []key.Request {
	out := make([]key.Request, 0, len(params))
	for _, p := range params {
		if skipAssisted && p.Assisted {
			continue
		}
		out = append(out, p.Request)
	}
	return out
}

func viewRequest(r key.Request, f key.Flavor) key.Request {
	if r.Flavor != key.Instance || !f.Deferred() {
		return r
	}
	return key.Request{Key: r.Key, Flavor: f}
}
