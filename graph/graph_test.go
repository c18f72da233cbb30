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
	"errors"
	"testing"

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/internal/injektlog"
	"github.com/ShikaSD/injekt-sub000/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var (
	dbKey      = key.Of("app.DB")
	configKey  = key.Of("app.Config")
	serviceKey = key.Of("app.Service")
	handlerKey = key.Of("app.Handler")
	sessionKey = key.Of("app.Session")
)

func producer(name string) decl.Producer { return decl.Produce(name, nil) }

type tree struct {
	t       *testing.T
	catalog *decl.Catalog
	spy     *injektlog.Spy
	next    binding.ComponentID
}

func newTree(t *testing.T, classes ...decl.Class) *tree {
	catalog, err := decl.NewCatalog(classes...)
	require.NoError(t, err)
	return &tree{t: t, catalog: catalog, spy: new(injektlog.Spy)}
}

// build creates the graph of c and, recursively, of the children it
// declares, returning them in creation order.
func (tr *tree) build(c *decl.Component, parent *Graph) ([]*Graph, error) {
	id := tr.next
	tr.next++
	return tr.buildAt(id, c, parent)
}

func (tr *tree) buildAt(id binding.ComponentID, c *decl.Component, parent *Graph) ([]*Graph, error) {
	var kids []*decl.Component
	childIDs := make(map[*decl.Component]binding.ComponentID)
	for _, s := range c.Flatten() {
		if s, ok := s.(*decl.ChildFactoryStatement); ok {
			kids = append(kids, s.Child)
			childIDs[s.Child] = tr.next
			tr.next++
		}
	}

	g, err := New(Config{
		ID:        id,
		Component: c,
		Parent:    parent,
		Catalog:   tr.catalog,
		Children:  childIDs,
		Logger:    tr.spy,
	})
	if err != nil {
		return nil, err
	}

	graphs := []*Graph{g}
	for _, kid := range kids {
		sub, err := tr.buildAt(childIDs[kid], kid, g)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, sub...)
	}
	return graphs, nil
}

func (tr *tree) mustBuild(c *decl.Component) []*Graph {
	graphs, err := tr.build(c, nil)
	require.NoError(tr.t, err)
	return graphs
}

func walkAll(graphs []*Graph) error {
	var errs error
	for _, g := range graphs {
		errs = multierr.Append(errs, g.Walk())
	}
	return errs
}

func TestResolverPrecedence(t *testing.T) {
	t.Parallel()

	t.Run("local binding", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(dbKey, producer("newDB")),
		))[0]

		n, err := g.Binding(dbKey)
		require.NoError(t, err)
		assert.Equal(t, "provision", n.Kind())

		again, err := g.Binding(dbKey)
		require.NoError(t, err)
		assert.Same(t, n, again, "bindings must be memoized")
	})

	t.Run("local and class are ambiguous", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t, decl.Injectable(dbKey.Type(), "", producer("NewDB")))
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(dbKey, producer("newDB")),
		))[0]

		_, err := g.Binding(dbKey)
		var ambiguous *binding.AmbiguousBindingError
		require.ErrorAs(t, err, &ambiguous)
		require.Len(t, ambiguous.Candidates, 2)
		assert.Equal(t, "local", ambiguous.Candidates[0].Resolver)
		assert.Equal(t, "class", ambiguous.Candidates[1].Resolver)
	})

	t.Run("local and dependency accessor are ambiguous", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Instance(configKey, "cfg"),
			decl.Dependency(key.Of("infra.Platform"),
				decl.Access("Config", configKey, func(any) any { return nil })),
		))[0]

		_, err := g.Binding(configKey)
		var ambiguous *binding.AmbiguousBindingError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "dependency", ambiguous.Candidates[1].Resolver)
	})

	t.Run("qualified key does not resolve to a class", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t, decl.Injectable(dbKey.Type(), "", producer("NewDB")))
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App")))[0]

		_, err := g.Binding(dbKey.WithQualifiers("replica"))
		var unresolved *binding.UnresolvedBindingError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "App", unresolved.Component)
	})

	t.Run("self and child factory", func(t *testing.T) {
		t.Parallel()

		child := decl.NewComponent("Request", key.Named("app.Request"),
			decl.BindsInstance(sessionKey))
		tr := newTree(t)
		graphs := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.ChildFactory(child)))

		self, err := graphs[0].Binding(key.Of("app.App"))
		require.NoError(t, err)
		assert.Equal(t, "self", self.Kind())

		f, err := graphs[0].Binding(child.FactoryKey())
		require.NoError(t, err)
		require.IsType(t, &binding.ChildFactory{}, f)
		assert.Equal(t, graphs[1].ID(), f.(*binding.ChildFactory).Child)
		assert.Equal(t, "func(app.Session) app.Request", f.Key().String())
	})
}

func TestParentFallback(t *testing.T) {
	t.Parallel()

	child := decl.NewComponent("Request", key.Named("app.Request"),
		decl.Scope("request"),
		decl.Provide(handlerKey, producer("newHandler"), decl.Dep(dbKey)),
	)
	tr := newTree(t)
	graphs := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.Scope("app"),
		decl.Scoped(dbKey, producer("newDB")),
		decl.ChildFactory(child),
	))
	app, req := graphs[0], graphs[1]

	n, err := req.Binding(dbKey)
	require.NoError(t, err)
	assert.Equal(t, app.ID(), n.Owner())

	fromApp, err := app.Binding(dbKey)
	require.NoError(t, err)
	assert.Same(t, fromApp, n, "child must see the parent's node")

	_, err = app.Binding(handlerKey)
	assert.Error(t, err, "parent must not see child bindings")
}

func TestScopedClassOwnership(t *testing.T) {
	t.Parallel()

	tr := newTree(t,
		decl.Injectable(dbKey.Type(), "app", producer("NewDB")),
		decl.Injectable(sessionKey.Type(), "request", producer("NewSession"), decl.Dep(dbKey)),
		decl.Injectable(handlerKey.Type(), "", producer("NewHandler"), decl.Dep(sessionKey)),
	)
	leaf := decl.NewComponent("Leaf", key.Named("app.Leaf"),
		decl.Accessor("Handler", key.InstanceOf(handlerKey)))
	req := decl.NewComponent("Request", key.Named("app.Request"),
		decl.Scope("request"),
		decl.ChildFactory(leaf))
	graphs := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.Scope("app"),
		decl.ChildFactory(req)))
	require.Len(t, graphs, 3)
	require.NoError(t, walkAll(graphs))

	leafGraph := graphs[2]
	db, err := leafGraph.Binding(dbKey)
	require.NoError(t, err)
	assert.Equal(t, graphs[0].ID(), db.Owner())

	session, err := leafGraph.Binding(sessionKey)
	require.NoError(t, err)
	assert.Equal(t, graphs[1].ID(), session.Owner())
	assert.True(t, binding.Cached(session))

	handler, err := leafGraph.Binding(handlerKey)
	require.NoError(t, err)
	assert.Equal(t, leafGraph.ID(), handler.Owner(), "unscoped classes are constructed where requested")

	assert.Contains(t, graphs[0].Nodes(), db)
	assert.Contains(t, graphs[1].Nodes(), session)
}

func TestScopedClassWithoutMatchingComponent(t *testing.T) {
	t.Parallel()

	tr := newTree(t, decl.Injectable(dbKey.Type(), "singleton", producer("NewDB")))
	graphs := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.Scope("app"),
		decl.Accessor("DB", key.InstanceOf(dbKey))))

	var unresolved *binding.UnresolvedBindingError
	require.ErrorAs(t, walkAll(graphs), &unresolved)
	assert.Equal(t, dbKey, unresolved.Key)
}

func TestWalkCycles(t *testing.T) {
	t.Parallel()

	aKey, bKey, cKey := key.Of("x.A"), key.Of("x.B"), key.Of("x.C")

	t.Run("direct cycle", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(aKey, producer("newA"), decl.Dep(bKey)),
			decl.Provide(bKey, producer("newB"), decl.Dep(cKey)),
			decl.Provide(cKey, producer("newC"), decl.Dep(aKey)),
			decl.Accessor("A", key.InstanceOf(aKey)),
			decl.Accessor("B", key.InstanceOf(bKey)),
		))[0]

		err := g.Walk()
		var cyclic *binding.CyclicBindingError
		require.ErrorAs(t, err, &cyclic)
		assert.Equal(t, []key.Key{aKey, bKey, cKey, aKey}, cyclic.Cycle)
		assert.Len(t, multierr.Errors(err), 1, "cycle must be reported once")
	})

	t.Run("provider breaks the cycle", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(aKey, producer("newA"), decl.Dep(bKey)),
			decl.Provide(bKey, producer("newB"), decl.DepProvider(aKey)),
			decl.Accessor("A", key.InstanceOf(aKey)),
		))[0]

		require.NoError(t, g.Walk())
		kinds := make([]string, 0)
		for _, n := range g.Nodes() {
			kinds = append(kinds, n.Kind()+" "+n.Key().String())
		}
		assert.Equal(t, []string{
			"provider @Provider func() x.A",
			"provision x.B",
			"provision x.A",
		}, kinds)
	})

	t.Run("lazy breaks the cycle", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(aKey, producer("newA"), decl.DepLazy(bKey)),
			decl.Provide(bKey, producer("newB"), decl.Dep(aKey)),
			decl.Accessor("B", key.InstanceOf(bKey)),
		))[0]

		assert.NoError(t, g.Walk())
	})

	t.Run("direct cycle behind a provider", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(aKey, producer("newA"), decl.DepProvider(bKey)),
			decl.Provide(bKey, producer("newB"), decl.Dep(cKey)),
			decl.Provide(cKey, producer("newC"), decl.Dep(bKey)),
			decl.Accessor("A", key.InstanceOf(aKey)),
		))[0]

		var cyclic *binding.CyclicBindingError
		require.ErrorAs(t, g.Walk(), &cyclic)
		assert.Equal(t, []key.Key{bKey, cKey, bKey}, cyclic.Cycle)
	})

	t.Run("self cycle", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(aKey, producer("newA"), decl.Dep(aKey)),
			decl.Accessor("A", key.InstanceOf(aKey)),
		))[0]

		var cyclic *binding.CyclicBindingError
		require.ErrorAs(t, g.Walk(), &cyclic)
		assert.Equal(t, []key.Key{aKey, aKey}, cyclic.Cycle)
	})
}

func TestWalkUnresolved(t *testing.T) {
	t.Parallel()

	tr := newTree(t)
	g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.Provide(serviceKey, producer("newService"), decl.Dep(handlerKey)),
		decl.Provide(handlerKey, producer("newHandler"), decl.Dep(dbKey)),
		decl.Accessor("Service", key.InstanceOf(serviceKey)),
		decl.Accessor("Config", key.InstanceOf(configKey)),
	))[0]

	errs := multierr.Errors(g.Walk())
	require.Len(t, errs, 2, "independent entry points report independently")

	var unresolved *binding.UnresolvedBindingError
	require.ErrorAs(t, errs[0], &unresolved)
	assert.Equal(t, dbKey, unresolved.Key)
	assert.Equal(t, []key.Key{serviceKey, handlerKey}, unresolved.Path)
	assert.Contains(t, unresolved.Error(), "requested by app.Service -> app.Handler")

	require.ErrorAs(t, errs[1], &unresolved)
	assert.Equal(t, configKey, unresolved.Key)
}

func TestWalkReportsSharedFailureOnce(t *testing.T) {
	t.Parallel()

	tr := newTree(t)
	g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.Provide(serviceKey, producer("newService"), decl.Dep(dbKey)),
		decl.Provide(handlerKey, producer("newHandler"), decl.Dep(dbKey)),
		decl.Accessor("Service", key.InstanceOf(serviceKey)),
		decl.Accessor("Handler", key.InstanceOf(handlerKey)),
	))[0]

	assert.Len(t, multierr.Errors(g.Walk()), 1)
}

func TestDeclarationErrors(t *testing.T) {
	t.Parallel()

	t.Run("duplicate scope in chain", func(t *testing.T) {
		t.Parallel()

		child := decl.NewComponent("Request", key.Named("app.Request"), decl.Scope("app"))
		tr := newTree(t)
		_, err := tr.build(decl.NewComponent("App", key.Named("app.App"),
			decl.Scope("app"),
			decl.ChildFactory(child)), nil)

		var dup *binding.DuplicateScopeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "app", dup.Scope)
		assert.Equal(t, "Request", dup.Component)
		assert.Equal(t, "App", dup.Declarer)
	})

	t.Run("duplicate local binding", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		_, err := tr.build(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(dbKey, producer("newDB")),
			decl.Include(decl.NewModule("db", decl.Scoped(dbKey, producer("openDB")))),
		), nil)

		var dup *binding.DuplicateBindingError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, dbKey, dup.Key)
	})

	t.Run("child may shadow parent", func(t *testing.T) {
		t.Parallel()

		child := decl.NewComponent("Request", key.Named("app.Request"),
			decl.Provide(dbKey, producer("newTxDB")))
		tr := newTree(t)
		graphs := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Provide(dbKey, producer("newDB")),
			decl.ChildFactory(child)))

		n, err := graphs[1].Binding(dbKey)
		require.NoError(t, err)
		assert.Equal(t, "newTxDB", n.(*binding.Provision).Producer.Name)
	})

	t.Run("invalid statements", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		_, err := tr.build(decl.NewComponent("App", key.Named("app.App"),
			decl.Bind(dbKey, decl.InstanceKind, producer("newDB")),
			decl.Scoped(handlerKey, producer("newHandler"), decl.Assisted(key.Of("string"))),
			decl.Map(serviceKey),
			decl.Alias(configKey, configKey),
		), nil)

		errs := multierr.Errors(err)
		require.Len(t, errs, 4)
		for _, err := range errs {
			var invalid *decl.InvalidDeclarationError
			assert.True(t, errors.As(err, &invalid), "unexpected error %v", err)
		}
	})
}

func TestMultibindings(t *testing.T) {
	t.Parallel()

	handlers := key.New(key.Map(key.Named("string"), handlerKey.Type()))
	commands := key.New(key.Set(key.Named("app.Command")))
	get, post := key.Of("app.Get"), key.Of("app.Post")

	t.Run("merge parent first", func(t *testing.T) {
		t.Parallel()

		child := decl.NewComponent("Request", key.Named("app.Request"),
			decl.Map(handlers, decl.Put("post", key.InstanceOf(post))))
		tr := newTree(t)
		graphs := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Map(handlers, decl.Put("get", key.InstanceOf(get))),
			decl.ChildFactory(child)))

		c := graphs[1].Collection(handlers)
		require.NotNil(t, c)
		require.Equal(t, 2, c.Len())
		assert.Equal(t, "get", c.Entries[0].EntryKey)
		assert.Equal(t, graphs[0].ID(), c.Entries[0].Owner)
		assert.Equal(t, "post", c.Entries[1].EntryKey)

		assert.Equal(t, 1, graphs[0].Collection(handlers).Len(), "parent must not see child entries")
	})

	t.Run("views share entries", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Set(commands, decl.Add(key.InstanceOf(get)), decl.Add(key.InstanceOf(post)))))[0]

		plain, err := g.Binding(commands)
		require.NoError(t, err)
		providers, err := g.Binding(key.CollectionView(commands, key.Provider))
		require.NoError(t, err)
		assert.Equal(t, "@Provider set[func() app.Command]", providers.Key().String())

		assert.Equal(t, plain.(*binding.SetBinding).Elements, providers.(*binding.SetBinding).Elements)
		assert.Equal(t, []key.Request{key.ProviderOf(get), key.ProviderOf(post)}, providers.Dependencies())
	})

	t.Run("empty declaration", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"), decl.Set(commands)))[0]

		n, err := g.Binding(commands)
		require.NoError(t, err)
		assert.Empty(t, n.Dependencies())
	})

	t.Run("undeclared in child uses parent's", func(t *testing.T) {
		t.Parallel()

		child := decl.NewComponent("Request", key.Named("app.Request"))
		tr := newTree(t)
		graphs := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Set(commands, decl.Add(key.InstanceOf(get))),
			decl.ChildFactory(child)))

		n, err := graphs[1].Binding(commands)
		require.NoError(t, err)
		assert.Equal(t, graphs[0].ID(), n.Owner())
	})

	t.Run("duplicate across levels", func(t *testing.T) {
		t.Parallel()

		child := decl.NewComponent("Request", key.Named("app.Request"),
			decl.Map(handlers, decl.Put("get", key.InstanceOf(post))))
		tr := newTree(t)
		_, err := tr.build(decl.NewComponent("App", key.Named("app.App"),
			decl.Map(handlers, decl.Put("get", key.InstanceOf(get))),
			decl.ChildFactory(child)), nil)

		var dup *binding.DuplicateMultibindingEntryError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, `"get"`, dup.Entry)
		assert.Equal(t, "Request", dup.Component)
	})

	t.Run("duplicate set element in one component", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		_, err := tr.build(decl.NewComponent("App", key.Named("app.App"),
			decl.Set(commands, decl.Add(key.InstanceOf(get))),
			decl.Include(decl.NewModule("more", decl.Set(commands, decl.Add(key.InstanceOf(get))))),
		), nil)

		var dup *binding.DuplicateMultibindingEntryError
		require.ErrorAs(t, err, &dup)
		assert.True(t, dup.IsSet)
	})

	t.Run("entry keys of different types are distinct", func(t *testing.T) {
		t.Parallel()

		byCode := key.New(key.Map(key.Named("any"), handlerKey.Type()))
		tr := newTree(t)
		g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
			decl.Map(byCode,
				decl.Put(1, key.InstanceOf(get)),
				decl.Put(int64(1), key.InstanceOf(post))),
		))[0]

		c := g.Collection(byCode)
		require.NotNil(t, c)
		require.Equal(t, 2, c.Len())
		assert.Equal(t, 1, c.Entries[0].EntryKey)
		assert.Equal(t, int64(1), c.Entries[1].EntryKey)
	})

	t.Run("same entry key in one component", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		_, err := tr.build(decl.NewComponent("App", key.Named("app.App"),
			decl.Map(handlers,
				decl.Put("get", key.InstanceOf(get)),
				decl.Put("get", key.InstanceOf(post))),
		), nil)

		var dup *binding.DuplicateMultibindingEntryError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, `"get"`, dup.Entry)
	})

	t.Run("entry key must be comparable", func(t *testing.T) {
		t.Parallel()

		tr := newTree(t)
		_, err := tr.build(decl.NewComponent("App", key.Named("app.App"),
			decl.Map(handlers, decl.Put([]string{"get"}, key.InstanceOf(get))),
		), nil)

		var invalid *decl.InvalidDeclarationError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Reason, "not comparable")
	})
}

func TestAssistedAndMembers(t *testing.T) {
	t.Parallel()

	userID := key.Of("app.UserID")
	tr := newTree(t,
		decl.Injectable(sessionKey.Type(), "", producer("NewSession"),
			decl.Dep(dbKey), decl.Assisted(userID)),
		decl.Injectable(handlerKey.Type(), "", producer("NewHandler")).WithMembers(
			decl.Member{Name: "DB", Request: key.InstanceOf(dbKey)}),
	)
	g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.Scoped(dbKey, producer("newDB")),
		decl.Provide(serviceKey, producer("newService"), decl.Dep(configKey), decl.Assisted(key.Of("int"))),
	))[0]

	_, err := g.Binding(sessionKey)
	assert.Error(t, err, "assisted class must only resolve under its factory key")

	factory, err := g.Binding(key.New(key.Func(sessionKey.Type(), userID.Type())))
	require.NoError(t, err)
	require.IsType(t, &binding.AssistedProvision{}, factory)
	assert.True(t, factory.DeferredDependencies())
	assert.Equal(t, []key.Request{key.InstanceOf(dbKey)}, factory.Dependencies())

	local, err := g.Binding(key.New(key.Func(serviceKey.Type(), key.Named("int"))))
	require.NoError(t, err)
	assert.Equal(t, "assisted", local.Kind())

	injector, err := g.Binding(key.New(key.MembersInjector(handlerKey.Type())))
	require.NoError(t, err)
	assert.Equal(t, "members-injector", injector.Kind())
	assert.Equal(t, []key.Request{key.InstanceOf(dbKey)}, injector.Dependencies())

	handler, err := g.Binding(handlerKey)
	require.NoError(t, err)
	assert.Equal(t, []key.Request{key.InstanceOf(dbKey)}, handler.Dependencies())
}

func TestDependencyComponent(t *testing.T) {
	t.Parallel()

	platform := key.Of("infra.Platform")
	tr := newTree(t)
	g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.BindsInstance(configKey),
		decl.Dependency(platform, decl.Access("DB", dbKey, func(any) any { return nil })),
		decl.Accessor("DB", key.InstanceOf(dbKey)),
	))[0]

	require.NoError(t, g.Walk())
	assert.Equal(t, []key.Key{configKey, platform}, g.Params())

	n, err := g.Binding(dbKey)
	require.NoError(t, err)
	assert.Equal(t, []key.Request{key.InstanceOf(platform)}, n.Dependencies())

	comp, err := g.Binding(platform)
	require.NoError(t, err)
	require.IsType(t, &binding.Instance{}, comp)
	assert.Equal(t, 1, comp.(*binding.Instance).Param)
}

func TestGraphEvents(t *testing.T) {
	t.Parallel()

	tr := newTree(t)
	g := tr.mustBuild(decl.NewComponent("App", key.Named("app.App"),
		decl.Scope("app"),
		decl.Set(key.New(key.Set(key.Named("app.Command")))),
		decl.Instance(configKey, "cfg"),
		decl.Accessor("Config", key.InstanceOf(configKey)),
	))[0]
	require.NoError(t, g.Walk())

	assert.Equal(t, []string{
		"MultibindingMerged",
		"GraphBuilt",
		"BindingResolved",
		"Walked",
	}, tr.spy.EventTypes())
}
