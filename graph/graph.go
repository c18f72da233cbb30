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

package graph

import (
	"fmt"

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/injektevent"
	"github.com/ShikaSD/injekt-sub000/key"
	"go.uber.org/multierr"
)

// Config describes the component a Graph is built for.
type Config struct {
	// ID is the arena index of the component.
	ID        binding.ComponentID
	Component *decl.Component
	// Parent is the graph of the parent component, nil for the root.
	Parent  *Graph
	Catalog *decl.Catalog
	// Children holds the arena indexes of the components the component
	// declares child factories for.
	Children map[*decl.Component]binding.ComponentID
	Logger   injektevent.Logger
}

// Graph holds the bindings of one component: the nodes its own declarations
// and the annotated classes produce, and those it inherits from its
// ancestors.
type Graph struct {
	id        binding.ComponentID
	component *decl.Component
	parent    *Graph
	catalog   *decl.Catalog
	logger    injektevent.Logger

	scope   string
	scopeAt decl.Site

	locals       map[key.ID]binding.Node
	collections  map[key.ID]*Collection
	dependencies map[key.ID]binding.Node
	children     map[key.ID]*binding.ChildFactory
	self         *binding.FactoryImplementation
	accessors    []*decl.AccessorStatement
	params       []key.Key

	chain    []Resolver
	bindings map[key.ID]binding.Node

	status map[key.ID]status
	order  []binding.Node
}

type status int

const (
	unvisited status = iota
	done
	failed
)

// New collects the declarations of cfg.Component into a graph. The
// parent's graph must already exist. Multibound collections are finalized
// here, merged with the nearest ancestor's.
func New(cfg Config) (*Graph, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = injektevent.NopLogger
	}
	g := &Graph{
		id:           cfg.ID,
		component:    cfg.Component,
		parent:       cfg.Parent,
		catalog:      cfg.Catalog,
		logger:       logger,
		locals:       make(map[key.ID]binding.Node),
		collections:  make(map[key.ID]*Collection),
		dependencies: make(map[key.ID]binding.Node),
		children:     make(map[key.ID]*binding.ChildFactory),
		bindings:     make(map[key.ID]binding.Node),
		status:       make(map[key.ID]status),
		params:       cfg.Component.Params(),
	}
	g.self = binding.NewFactoryImplementation(cfg.Component.Key(), g.id, decl.Site{})
	g.chain = g.resolvers()

	err := g.collect(cfg.Children)
	g.logger.LogEvent(&injektevent.GraphBuilt{
		Component: g.Name(),
		Scope:     g.scope,
		Parent:    g.parentName(),
		Err:       err,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) collect(childIDs map[*decl.Component]binding.ComponentID) error {
	paramIndex := make(map[key.ID]int, len(g.params))
	for i, p := range g.params {
		if _, ok := paramIndex[p.ID()]; !ok {
			paramIndex[p.ID()] = i
		}
	}

	var (
		errs     error
		builders []*CollectionBuilder
		byKey    = make(map[key.ID]*CollectionBuilder)
	)

	builder := func(k key.Key, isSet bool, at decl.Site) (*CollectionBuilder, error) {
		t := k.Type()
		if isSet && !t.IsSet() || !isSet && !t.IsMap() {
			return nil, &decl.InvalidDeclarationError{
				Reason: fmt.Sprintf("%v is not a %s type", k, map[bool]string{true: "set", false: "map"}[isSet]),
				At:     at,
			}
		}
		if b, ok := byKey[k.ID()]; ok {
			if b.isSet != isSet {
				return nil, &decl.InvalidDeclarationError{
					Reason: fmt.Sprintf("%v is declared both as a map and as a set", k),
					At:     at,
				}
			}
			return b, nil
		}
		b := newCollectionBuilder(k, isSet, g.id, at)
		byKey[k.ID()] = b
		builders = append(builders, b)
		return b, nil
	}

	for _, s := range g.component.Flatten() {
		switch s := s.(type) {
		case *decl.ScopeStatement:
			errs = multierr.Append(errs, g.declareScope(s))

		case *decl.BindStatement:
			n, err := g.bindNode(s)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			errs = multierr.Append(errs, g.addTo(g.locals, n))

		case *decl.InstanceStatement:
			errs = multierr.Append(errs, g.addTo(g.locals,
				binding.NewCapturedInstance(s.Key, g.id, s.At, s.Value)))

		case *decl.BindsInstanceStatement:
			errs = multierr.Append(errs, g.addTo(g.locals,
				binding.NewParamInstance(s.Key, g.id, s.At, paramIndex[s.Key.ID()])))

		case *decl.AliasStatement:
			if s.Alias.Equal(s.Original) {
				errs = multierr.Append(errs, &decl.InvalidDeclarationError{
					Reason: fmt.Sprintf("%v is aliased to itself", s.Alias),
					At:     s.At,
				})
				continue
			}
			errs = multierr.Append(errs, g.addTo(g.locals,
				binding.NewDelegate(s.Alias, g.id, s.At, s.Original)))

		case *decl.MapStatement:
			b, err := builder(s.Key, false, s.At)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			for _, e := range s.Entries {
				b.put(e)
			}

		case *decl.SetStatement:
			b, err := builder(s.Key, true, s.At)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			for _, e := range s.Elements {
				b.add(e)
			}

		case *decl.DependencyStatement:
			errs = multierr.Append(errs, g.addTo(g.dependencies,
				binding.NewParamInstance(s.Key, g.id, s.At, paramIndex[s.Key.ID()])))
			for _, acc := range s.Accessors {
				errs = multierr.Append(errs, g.addTo(g.dependencies,
					binding.NewDependency(g.id, s.At, s.Key, acc)))
			}

		case *decl.ChildFactoryStatement:
			id, ok := childIDs[s.Child]
			if !ok {
				errs = multierr.Append(errs, &decl.InvalidDeclarationError{
					Reason: fmt.Sprintf("child component %v is not part of the component tree", s.Child),
					At:     s.At,
				})
				continue
			}
			n := binding.NewChildFactory(s.Child.FactoryKey(), g.id, s.At, id, s.Child.Params())
			if prev, ok := g.children[n.Key().ID()]; ok {
				errs = multierr.Append(errs, &binding.DuplicateBindingError{
					Key:       n.Key(),
					Component: g.Name(),
					First:     prev.Site(),
					Second:    s.At,
				})
				continue
			}
			g.children[n.Key().ID()] = n

		case *decl.AccessorStatement:
			g.accessors = append(g.accessors, s)
		}
	}

	for _, b := range builders {
		var inherited *Collection
		if g.parent != nil {
			inherited = g.parent.Collection(b.key)
		}
		c, err := b.Finalize(inherited, g.Name())
		ev := &injektevent.MultibindingMerged{
			Component:  g.Name(),
			Collection: b.key.String(),
			Err:        err,
		}
		if inherited != nil {
			ev.Inherited = inherited.Len()
		}
		if c != nil {
			ev.Local = c.Len() - ev.Inherited
		}
		g.logger.LogEvent(ev)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		g.collections[b.key.ID()] = c
	}

	return errs
}

func (g *Graph) declareScope(s *decl.ScopeStatement) error {
	if g.scope != "" {
		return &binding.DuplicateScopeError{
			Scope:     s.Tag,
			Component: g.Name(),
			Declarer:  g.Name(),
			At:        s.At,
		}
	}
	for a := g.parent; a != nil; a = a.parent {
		if a.scope == s.Tag {
			return &binding.DuplicateScopeError{
				Scope:     s.Tag,
				Component: g.Name(),
				Declarer:  a.Name(),
				At:        s.At,
			}
		}
	}
	g.scope, g.scopeAt = s.Tag, s.At
	return nil
}

func (g *Graph) bindNode(s *decl.BindStatement) (binding.Node, error) {
	assisted := false
	for _, p := range s.Params {
		assisted = assisted || p.Assisted
	}
	switch {
	case s.Kind == decl.InstanceKind:
		return nil, &decl.InvalidDeclarationError{
			Reason: fmt.Sprintf("%v: instance bindings take a value, not a producer", s.Key),
			At:     s.At,
		}
	case assisted && s.Kind == decl.ScopedKind:
		return nil, &decl.InvalidDeclarationError{
			Reason: fmt.Sprintf("%v: assisted bindings cannot be scoped", s.Key),
			At:     s.At,
		}
	case assisted:
		return binding.NewAssistedProvision(s.Key, g.id, s.At, s.Producer, s.Params), nil
	}
	return binding.NewProvision(s.Key, g.id, s.At, s.Producer, s.Params, s.Kind == decl.ScopedKind), nil
}

func (g *Graph) addTo(m map[key.ID]binding.Node, n binding.Node) error {
	id := n.Key().ID()
	if prev, ok := m[id]; ok {
		return &binding.DuplicateBindingError{
			Key:       n.Key(),
			Component: g.Name(),
			First:     prev.Site(),
			Second:    n.Site(),
		}
	}
	m[id] = n
	return nil
}

// ID returns the arena index of the graph's component.
func (g *Graph) ID() binding.ComponentID { return g.id }

// Name returns the name of the graph's component.
func (g *Graph) Name() string { return g.component.Name }

// Component returns the declarations the graph was built from.
func (g *Graph) Component() *decl.Component { return g.component }

// Scope returns the scope tag the component declares, or "".
func (g *Graph) Scope() string { return g.scope }

// Parent returns the parent graph, nil for the root.
func (g *Graph) Parent() *Graph { return g.parent }

// Params returns the component's constructor parameters.
func (g *Graph) Params() []key.Key { return g.params }

// Accessors returns the component's entry points in declaration order.
func (g *Graph) Accessors() []*decl.AccessorStatement { return g.accessors }

// Ancestor returns the graph with the given arena index among g and its
// ancestors, nil if there is none.
func (g *Graph) Ancestor(id binding.ComponentID) *Graph {
	for a := g; a != nil; a = a.parent {
		if a.id == id {
			return a
		}
	}
	return nil
}

// Depth returns the number of parent hops from g to its ancestor id, -1 if
// id is not an ancestor.
func (g *Graph) Depth(id binding.ComponentID) int {
	hops := 0
	for a := g; a != nil; a = a.parent {
		if a.id == id {
			return hops
		}
		hops++
	}
	return -1
}

// Collection returns the finalized collection for the plain map or set key
// k as g sees it: g's own, or the nearest ancestor's. It is nil when no
// component up the chain declares k.
func (g *Graph) Collection(k key.Key) *Collection {
	for a := g; a != nil; a = a.parent {
		if c, ok := a.collections[k.ID()]; ok {
			return c
		}
	}
	return nil
}

// Nodes returns the nodes owned by g that walks reached, dependencies
// before dependents.
func (g *Graph) Nodes() []binding.Node {
	out := make([]binding.Node, len(g.order))
	copy(out, g.order)
	return out
}

// Binding returns the node satisfying k in g. Results are memoized; the
// same key always yields the same node.
func (g *Graph) Binding(k key.Key) (binding.Node, error) {
	n, err := g.lookup(k)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &binding.UnresolvedBindingError{Key: k, Component: g.Name()}
	}
	return n, nil
}

// lookup runs the resolver chain, then the parent fallback. A nil node
// with a nil error means no component up the chain binds k.
func (g *Graph) lookup(k key.Key) (binding.Node, error) {
	if n, ok := g.bindings[k.ID()]; ok {
		return n, nil
	}

	var candidates []binding.Candidate
	for _, r := range g.chain {
		nodes, err := r.Resolve(k)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			candidates = append(candidates, binding.Candidate{Resolver: r.Name(), Node: n})
		}
	}

	var (
		n        binding.Node
		resolver string
	)
	switch len(candidates) {
	case 0:
		if g.parent == nil {
			return nil, nil
		}
		pn, err := g.parent.lookup(k)
		if err != nil || pn == nil {
			return nil, err
		}
		n, resolver = pn, "parent"
	case 1:
		n, resolver = candidates[0].Node, candidates[0].Resolver
	default:
		return nil, &binding.AmbiguousBindingError{Key: k, Component: g.Name(), Candidates: candidates}
	}

	g.bindings[k.ID()] = n
	owner := ""
	if o := g.Ancestor(n.Owner()); o != nil {
		owner = o.Name()
	}
	g.logger.LogEvent(&injektevent.BindingResolved{
		Component: g.Name(),
		Key:       k.String(),
		Kind:      n.Kind(),
		Resolver:  resolver,
		Owner:     owner,
	})
	return n, nil
}

// Walk resolves the transitive closure of the component's entry points:
// its accessors, its assisted factories and the factories of its children. Errors of independent
// entry points are reported together.
func (g *Graph) Walk() error {
	var (
		errs  error
		roots int
	)
	for _, a := range g.accessors {
		roots++
		errs = multierr.Append(errs, g.require(a.Request.BindingKey(), a.At))
	}
	for _, s := range g.component.Flatten() {
		switch s := s.(type) {
		case *decl.ChildFactoryStatement:
			roots++
			errs = multierr.Append(errs, g.require(s.Child.FactoryKey(), s.At))
		case *decl.BindStatement:
			if k := s.BindingKey(); !k.Equal(s.Key) {
				roots++
				errs = multierr.Append(errs, g.require(k, s.At))
			}
		}
	}

	g.logger.LogEvent(&injektevent.Walked{
		Component: g.Name(),
		Roots:     roots,
		Nodes:     len(g.order),
		Err:       errs,
	})
	return errs
}

// require walks k and everything it depends on, in g's scope.
func (g *Graph) require(k key.Key, at decl.Site) error {
	w := &walker{g: g, onStack: make(map[key.ID]int)}
	w.run(k, at)
	return w.errs
}

// walker is a depth first traversal over the direct dependency edges of
// one graph. Edges out of nodes with deferred dependencies are not
// followed in place; their targets are queued and walked as new roots, so a
// cycle is reported exactly when it consists of direct edges only.
type walker struct {
	g *Graph

	stack   []frame
	onStack map[key.ID]int
	queue   []frame
	errs    error
}

type frame struct {
	key key.Key
	at  decl.Site
}

func (w *walker) run(root key.Key, at decl.Site) bool {
	ok := w.visit(root, at)
	for len(w.queue) > 0 {
		f := w.queue[0]
		w.queue = w.queue[1:]
		w.visit(f.key, f.at)
	}
	return ok
}

func (w *walker) visit(k key.Key, at decl.Site) bool {
	g := w.g
	id := k.ID()

	switch g.status[id] {
	case done:
		return true
	case failed:
		return false
	}

	if i, ok := w.onStack[id]; ok {
		cycle := make([]key.Key, 0, len(w.stack)-i+1)
		for _, f := range w.stack[i:] {
			cycle = append(cycle, f.key)
		}
		w.errs = multierr.Append(w.errs, &binding.CyclicBindingError{
			Component: g.Name(),
			Cycle:     append(cycle, k),
		})
		return false
	}

	n, err := g.lookup(k)
	if err == nil && n == nil {
		err = &binding.UnresolvedBindingError{
			Key:       k,
			Component: g.Name(),
			Path:      w.path(),
			At:        at,
		}
	}
	if err != nil {
		g.status[id] = failed
		w.errs = multierr.Append(w.errs, err)
		return false
	}

	if n.Owner() != g.id {
		owner := g.Ancestor(n.Owner())
		ow := &walker{g: owner, onStack: make(map[key.ID]int)}
		ok := ow.run(n.Key(), at)
		w.errs = multierr.Append(w.errs, ow.errs)
		g.mark(id, ok)
		return ok
	}

	w.onStack[id] = len(w.stack)
	w.stack = append(w.stack, frame{key: k, at: at})

	ok := true
	for _, dep := range n.Dependencies() {
		bk := dep.BindingKey()
		if n.DeferredDependencies() {
			w.queue = append(w.queue, frame{key: bk, at: n.Site()})
			continue
		}
		if !w.visit(bk, n.Site()) {
			ok = false
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
	delete(w.onStack, id)

	g.mark(id, ok)
	if ok {
		g.order = append(g.order, n)
	}
	return ok
}

func (w *walker) path() []key.Key {
	out := make([]key.Key, len(w.stack))
	for i, f := range w.stack {
		out[i] = f.key
	}
	return out
}

func (g *Graph) mark(id key.ID, ok bool) {
	if ok {
		g.status[id] = done
	} else {
		g.status[id] = failed
	}
}

func (g *Graph) parentName() string {
	if g.parent == nil {
		return ""
	}
	return g.parent.Name()
}
