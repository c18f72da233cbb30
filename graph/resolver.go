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
	"github.com/ShikaSD/injekt-sub000/key"
)

// Resolver produces the binding nodes one source of bindings offers for a
// key. An empty result means the source has nothing for the key; an error
// means the source's declarations for the key are malformed.
type Resolver interface {
	Name() string
	Resolve(k key.Key) ([]binding.Node, error)
}

// resolvers returns the chain of g in precedence order. The parent fallback
// is not part of the chain; Graph.lookup consults it when the whole chain
// came back empty.
func (g *Graph) resolvers() []Resolver {
	return []Resolver{
		localResolver{g},
		classResolver{g},
		multibindingResolver{g},
		wrapperResolver{g},
		membersInjectorResolver{g},
		dependencyResolver{g},
		childFactoryResolver{g},
		selfResolver{g},
	}
}

func single(n binding.Node, ok bool) []binding.Node {
	if !ok {
		return nil
	}
	return []binding.Node{n}
}

type localResolver struct{ g *Graph }

func (localResolver) Name() string { return "local" }

func (r localResolver) Resolve(k key.Key) ([]binding.Node, error) {
	n, ok := r.g.locals[k.ID()]
	return single(n, ok), nil
}

// classResolver resolves annotated classes from the catalog. Qualified keys
// never resolve to a class. A scoped class resolves only in a graph of the
// same scope, so it ends up owned by the nearest such component.
type classResolver struct{ g *Graph }

func (classResolver) Name() string { return "class" }

func (r classResolver) Resolve(k key.Key) ([]binding.Node, error) {
	if len(k.Qualifiers()) > 0 {
		return nil, nil
	}

	t := k.Type()
	if cl, ok := r.g.catalog.Lookup(t); ok {
		if cl.Assisted() {
			// Only reachable through its factory key.
			return nil, nil
		}
		if cl.Scope != "" && cl.Scope != r.g.scope {
			return nil, nil
		}
		n := binding.NewProvision(k, r.g.id, cl.At, cl.Producer, cl.Params, cl.Scope != "")
		n.Members = cl.Members
		return []binding.Node{n}, nil
	}

	if !t.IsFunc() {
		return nil, nil
	}
	cl, ok := r.g.catalog.Lookup(t.Result())
	if !ok || !cl.Assisted() || !cl.Key().Equal(k) {
		return nil, nil
	}
	if cl.Scope != "" {
		return nil, &decl.InvalidDeclarationError{
			Reason: fmt.Sprintf("assisted class %v cannot be scoped to %q", cl.Type, cl.Scope),
			At:     cl.At,
		}
	}
	return []binding.Node{
		binding.NewAssistedProvision(key.New(cl.Type), r.g.id, cl.At, cl.Producer, cl.Params),
	}, nil
}

// multibindingResolver resolves the plain, Provider and Lazy views of the
// collections the graph declares itself. Undeclared collections fall back
// to the parent, which owns them.
type multibindingResolver struct{ g *Graph }

func (multibindingResolver) Name() string { return "multibinding" }

func (r multibindingResolver) Resolve(k key.Key) ([]binding.Node, error) {
	plain, f, ok := key.UnwrapCollection(k)
	if !ok {
		return nil, nil
	}
	c, ok := r.g.collections[plain.ID()]
	if !ok {
		return nil, nil
	}
	return []binding.Node{c.View(f)}, nil
}

type wrapperResolver struct{ g *Graph }

func (wrapperResolver) Name() string { return "wrapper" }

func (r wrapperResolver) Resolve(k key.Key) ([]binding.Node, error) {
	req, ok := key.Unwrap(k)
	if !ok {
		return nil, nil
	}
	switch req.Flavor {
	case key.Provider:
		return []binding.Node{binding.NewProvider(r.g.id, req.Key)}, nil
	case key.Lazy:
		return []binding.Node{binding.NewLazy(r.g.id, req.Key)}, nil
	}
	return nil, nil
}

type membersInjectorResolver struct{ g *Graph }

func (membersInjectorResolver) Name() string { return "members-injector" }

func (r membersInjectorResolver) Resolve(k key.Key) ([]binding.Node, error) {
	t := k.Type()
	if t.Name != key.MembersInjectorName || len(t.Args) != 1 || len(k.Qualifiers()) > 0 {
		return nil, nil
	}
	cl, ok := r.g.catalog.Lookup(t.Args[0])
	if !ok {
		return nil, nil
	}
	return []binding.Node{
		binding.NewMembersInjector(k, r.g.id, cl.At, cl.Type, cl.Members),
	}, nil
}

// dependencyResolver resolves dependency component instances and the
// accessors they expose.
type dependencyResolver struct{ g *Graph }

func (dependencyResolver) Name() string { return "dependency" }

func (r dependencyResolver) Resolve(k key.Key) ([]binding.Node, error) {
	n, ok := r.g.dependencies[k.ID()]
	return single(n, ok), nil
}

type childFactoryResolver struct{ g *Graph }

func (childFactoryResolver) Name() string { return "child-factory" }

func (r childFactoryResolver) Resolve(k key.Key) ([]binding.Node, error) {
	n, ok := r.g.children[k.ID()]
	return single(n, ok), nil
}

type selfResolver struct{ g *Graph }

func (selfResolver) Name() string { return "self" }

func (r selfResolver) Resolve(k key.Key) ([]binding.Node, error) {
	return single(r.g.self, k.Equal(r.g.self.Key())), nil
}
